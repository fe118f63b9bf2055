package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/middleware"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/service"
)

type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) GetLanguage(c *gin.Context) {
	lang, err := h.sessions.Language(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LanguageResponse{Language: lang})
}

func (h *SessionHandler) SetLanguage(c *gin.Context) {
	var req dto.LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.sessions.SetLanguage(c.Request.Context(), middleware.GetSessionID(c), req.Language); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LanguageResponse{Language: req.Language})
}

// language resolves the display language: a valid ?lang= query wins, then the
// session's saved choice, then Haitian Creole.
func language(c *gin.Context, sessions *service.SessionService) model.Language {
	if lang := model.Language(c.Query("lang")); lang.Valid() {
		return lang
	}
	lang, err := sessions.Language(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil || !lang.Valid() {
		return model.LanguageHT
	}
	return lang
}
