// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog is append-only: exactly one row per dispatch attempt, sent or
// failed. Mobile holds the resolved recipient, which may be the paidBy
// contact rather than the member's own number.
type ReminderLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MemberID uuid.UUID `gorm:"type:uuid;index" json:"memberId"`
	Name     string    `json:"name"`
	Mobile   string    `json:"mobile"`
	DiffDays int       `json:"diffDays"`
	Message  string    `gorm:"type:text" json:"message"`
	Status   string    `gorm:"type:varchar(20)" json:"status"` // Sent, Failed
	Error    string    `gorm:"type:text" json:"error,omitempty"`
	Channel  string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt   time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
