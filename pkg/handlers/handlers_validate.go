package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
	"github.com/csu-scheduler/staffing-api-go/pkg/scheduler"
)

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Staff) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one staff member is required",
		})
		return
	}

	if len(input.Sessions) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one session is required",
		})
		return
	}

	// Same structural checks the engine runs before allocating
	if err := scheduler.New(input.Sessions, input.Staff).Validate(); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"staff_count":   len(input.Staff),
			"session_count": len(input.Sessions),
		},
	})
}
