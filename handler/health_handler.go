package handler

import (
	"context"
	"time"

	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store       Pinger
	environment string
	version     string
	now         func() time.Time
}

func NewHealthHandler(store Pinger, environment, version string) *HealthHandler {
	return &HealthHandler{
		store:       store,
		environment: environment,
		version:     version,
		now:         time.Now,
	}
}

// Health always answers 200; a failed store ping shows up as
// database=down.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "up"
	if err := h.store.Ping(c.Request.Context()); err != nil {
		database = "down"
		utils.TrackError("health", "database_down")
	}

	utils.Success(c, gin.H{
		"status":      "OK",
		"message":     "Server is running",
		"timestamp":   h.now().UTC().Format(time.RFC3339Nano),
		"environment": h.environment,
		"database":    database,
	})
}

func (h *HealthHandler) Info(c *gin.Context) {
	utils.Success(c, gin.H{
		"message": "Notes App API",
		"version": h.version,
		"endpoints": gin.H{
			"auth":    "/auth",
			"notes":   "/notes",
			"health":  "/health",
			"metrics": "/metrics",
		},
	})
}
