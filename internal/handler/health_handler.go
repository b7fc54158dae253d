package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seatforge/seatmap-service/pkg/database"
	"github.com/seatforge/seatmap-service/pkg/redis"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "seatmap-service",
	})
}

// Ready checks if the service is ready to accept traffic
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not_ready",
			"service":  "seatmap-service",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	cache := "disabled"
	if h.redis != nil {
		cache = "connected"
		if err := h.redis.Ping(c.Request.Context()); err != nil {
			cache = "disconnected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"service":  "seatmap-service",
		"database": "connected",
		"cache":    cache,
	})
}
