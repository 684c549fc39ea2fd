package handlers

import (
	"net/http"
	"strconv"

	"github.com/codetone-labs/codetone-api/internal/api/middleware"
	"github.com/codetone-labs/codetone-api/internal/logger"
	"github.com/codetone-labs/codetone-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100
)

type HistoryHandler struct {
	db *gorm.DB
}

func NewHistoryHandler(db *gorm.DB) *HistoryHandler {
	return &HistoryHandler{db: db}
}

// List returns recent sonification records, newest first. When the caller
// is identified by the gateway, only their own records are returned.
func (h *HistoryHandler) List(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "History storage is not enabled on this server",
		})
		return
	}

	limit := defaultHistoryPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxHistoryPageSize {
		limit = maxHistoryPageSize
	}

	query := h.db.Order("created_at DESC").Limit(limit)
	if userID, ok := middleware.GetUserID(c); ok && userID != "anonymous" {
		query = query.Where("user_id = ?", userID)
	}

	var records []models.SonificationRecord
	if err := query.Find(&records).Error; err != nil {
		logger.Error("Failed to load sonification history", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}
