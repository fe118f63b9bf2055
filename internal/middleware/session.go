package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the shopper's session id. Carts, checkout progress
// and the display language are kept per session.
const SessionHeader = "X-Session-ID"

// Session reads the session id from SessionHeader, issuing a new one when it
// is missing or malformed. The id is echoed back in the response header.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("sessionID", id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	id, _ := c.Get("sessionID")
	s, _ := id.(string)
	return s
}
