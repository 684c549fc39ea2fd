package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	historyStatus := "disabled"
	if h.db != nil {
		historyStatus = "enabled"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
			historyStatus = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"history_storage": gin.H{
			"status": historyStatus,
		},
	})
}
