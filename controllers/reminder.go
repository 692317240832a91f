// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/services"
	"yogadesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderController exposes the interactive send paths over the dispatch
// service.
type ReminderController struct {
	Svc *services.ReminderService
}

type BulkSendInput struct {
	MemberIDs []string `json:"memberIds" binding:"required,min=1"`
}

// SendReminder dispatches one reminder to one member and returns the log
// entry, sent or failed.
func (rc *ReminderController) SendReminder(c *gin.Context) {
	memberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	var member models.Member
	if err := config.DB.First(&member, "id = ?", memberUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	entry := rc.Svc.Send(member.Project(time.Now()))
	c.JSON(http.StatusOK, entry)
}

// SendBulkReminders queues a sequential paced dispatch over the selected
// members. The sends run in the background; pacing lives in the service.
func (rc *ReminderController) SendBulkReminders(c *gin.Context) {
	var input BulkSendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(input.MemberIDs))
	for _, raw := range input.MemberIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID: "+raw)
			return
		}
		ids = append(ids, id)
	}

	var members []models.Member
	if err := config.DB.Where("id IN ?", ids).Find(&members).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	today := time.Now()
	views := make([]models.MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, m.Project(today))
	}

	go rc.Svc.SendBulk(views)

	c.JSON(http.StatusAccepted, gin.H{"queued": len(views)})
}

// GetReminderLogs returns the most recent 50 log entries.
func (rc *ReminderController) GetReminderLogs(c *gin.Context) {
	var logs []models.ReminderLog
	if err := config.DB.Order("sent_at desc").Limit(50).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
