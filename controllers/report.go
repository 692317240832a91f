// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// RevenueSummary represents the revenue and enrollment report
type RevenueSummary struct {
	RevenueByCategory map[string]float64 `json:"revenueByCategory"`
	TotalRevenue      float64            `json:"totalRevenue"`
	NewEnrollments    int                `json:"newEnrollments"`
	Renewals          int                `json:"renewals"`
	StatusBreakdown   map[string]int     `json:"statusBreakdown"`
}

// GetReportAnalytics aggregates fees by category and splits members into new
// enrollments (original date unchanged) versus renewals.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	var members []models.Member
	if err := config.DB.Find(&members).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	today := time.Now()
	summary := RevenueSummary{
		RevenueByCategory: make(map[string]float64),
		StatusBreakdown:   make(map[string]int),
	}

	for _, m := range members {
		summary.RevenueByCategory[m.Category] += m.Fees
		summary.TotalRevenue += m.Fees

		// A member still on their first period counts as a new enrollment.
		if m.OriginalDate == m.RenewalDate {
			summary.NewEnrollments++
		} else {
			summary.Renewals++
		}

		view := m.Project(today)
		summary.StatusBreakdown[view.ViewStatus]++
	}

	c.JSON(http.StatusOK, summary)
}
