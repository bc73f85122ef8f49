package handlers

import (
	"context"
	"net/http"
	"time"

	"gposync/internal/db"
	"gposync/internal/gpodder"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(gdb *gorm.DB) *HealthHandler {
	return &HealthHandler{db: gdb}
}

// Check pings the database.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := db.Ping(ctx, h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gpodder.Unavailable("database unavailable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
