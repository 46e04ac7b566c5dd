package handlers

import (
	"context"
	"net/http"

	"taskmanager/internal/http/middleware"
	"taskmanager/internal/logger"
	"taskmanager/internal/seed"

	"github.com/gin-gonic/gin"
)

// Seeder is implemented by *seed.Seeder.
type Seeder interface {
	Import(ctx context.Context) (seed.Summary, error)
	Destroy(ctx context.Context) error
}

// DevHandler serves the sample data endpoints. Only mounted when dev
// endpoints are enabled.
type DevHandler struct {
	seeder Seeder
}

func NewDevHandler(s Seeder) *DevHandler {
	return &DevHandler{seeder: s}
}

func (h *DevHandler) SeedDB(c *gin.Context) {
	sum, err := h.seeder.Import(c.Request.Context())
	if err != nil {
		devFailure(c, "Failed to seed database", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Database seeded successfully!",
		"users":   sum.Users,
		"tasks":   sum.Tasks,
		"skipped": sum.Skipped,
	})
}

func (h *DevHandler) DestroyDB(c *gin.Context) {
	if err := h.seeder.Destroy(c.Request.Context()); err != nil {
		devFailure(c, "Failed to destroy database", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database destroyed successfully!"})
}

func devFailure(c *gin.Context, msg string, err error) {
	logger.WithContext(c.Request.Context()).Error(msg, "error", err)
	body := gin.H{"message": msg}
	if middleware.ErrorDetail() {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
