package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

// Check reports whether one backing service is reachable.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

func PostgresCheck(pool *pgxpool.Pool) Check {
	return Check{Name: "postgres", Probe: pool.Ping}
}

func RedisCheck(client *redis.Client) Check {
	return Check{Name: "redis", Probe: func(ctx context.Context) error { return client.Ping(ctx).Err() }}
}

func RabbitMQCheck(conn *amqp.Connection) Check {
	return Check{Name: "rabbitmq", Probe: func(context.Context) error {
		if conn.IsClosed() {
			return errors.New("connection closed")
		}
		return nil
	}}
}

type HealthHandler struct {
	checks []Check
}

func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	body := gin.H{"status": "ok"}
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", check.Name: "unavailable"})
			return
		}
		body[check.Name] = "connected"
	}
	c.JSON(http.StatusOK, body)
}
