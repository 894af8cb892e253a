package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/csu-scheduler/staffing-api-go/pkg/database"
)

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	var usage []database.APIUsage
	if err := h.DB.Where("key_id = ?", apiKey.ID).Order("date desc").Limit(30).Find(&usage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalSessions, totalStaff int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalSessions += int64(u.TotalSessions)
		totalStaff += int64(u.TotalStaff)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
			"sessions": totalSessions,
			"staff":    totalStaff,
		},
	})
}

// ListRuns returns the most recent schedule runs with their shortfall
// summaries, newest first.
func (h *Handler) ListRuns(c *gin.Context) {
	var runs []database.ScheduleRun
	if err := h.DB.Order("created_at desc").Limit(50).Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch run history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
