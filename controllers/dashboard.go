package controllers

import (
	"net/http"
	"time"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type DueSoonEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	DueStr   string `json:"dueStr"`
	DiffDays int    `json:"diffDays"`
	Status   string `json:"status"`
}

// GetDashboardOverview summarizes the membership: totals, status breakdown,
// who is due within the next three days, who is overdue, and the latest
// reminder activity.
func GetDashboardOverview(c *gin.Context) {
	var members []models.Member
	if err := config.DB.Find(&members).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	today := time.Now()
	statusCounts := make(map[string]int)
	frozenCount := 0
	var dueSoon, overdue []DueSoonEntry

	for _, m := range members {
		view := m.Project(today)
		statusCounts[view.ViewStatus]++
		if m.Freeze {
			frozenCount++
		}

		entry := DueSoonEntry{
			ID:       m.ID.String(),
			Name:     m.Name,
			Mobile:   m.Mobile,
			DueStr:   view.DueStr,
			DiffDays: view.DiffDays,
			Status:   view.ViewStatus,
		}
		switch {
		case view.DueStr == "-":
			// unknown due date, not actionable
		case view.DiffDays >= 0 && view.DiffDays <= 3:
			dueSoon = append(dueSoon, entry)
		case view.DiffDays < 0:
			overdue = append(overdue, entry)
		}
	}

	var recentLogs []models.ReminderLog
	config.DB.Order("sent_at desc").Limit(5).Find(&recentLogs)

	c.JSON(http.StatusOK, gin.H{
		"totalMembers":    len(members),
		"frozenMembers":   frozenCount,
		"statusBreakdown": statusCounts,
		"dueSoon":         dueSoon,
		"overdue":         overdue,
		"recentReminders": recentLogs,
	})
}
