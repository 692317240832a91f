// models/settings.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is a JSONB-backed ordered list of option strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// TemplateMap maps a string-encoded day offset ("3", "0", "-1") to a message
// template with {name}, {dueDate} and {diffDays} placeholders.
type TemplateMap map[string]string

func (t TemplateMap) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *TemplateMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return errors.New("unsupported type for TemplateMap")
	}
}

// Settings is a singleton row holding the studio's option lists and the
// reminder configuration. It is seeded once and updated wholesale.
type Settings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	BatchOptions      StringList `gorm:"type:jsonb;default:'[]'" json:"batchOptions"`
	CategoryOptions   StringList `gorm:"type:jsonb;default:'[]'" json:"categoryOptions"`
	PeriodOptions     StringList `gorm:"type:jsonb;default:'[]'" json:"periodOptions"`
	LeadSourceOptions StringList `gorm:"type:jsonb;default:'[]'" json:"leadSourceOptions"`
	SourceOptions     StringList `gorm:"type:jsonb;default:'[]'" json:"sourceOptions"`

	MessageTemplates TemplateMap `gorm:"type:jsonb;default:'{}'" json:"messageTemplates"`
	MessageInterval  int         `gorm:"default:5" json:"messageInterval"` // seconds between bulk sends
	WhatsappAPIURL   string      `json:"whatsappApiUrl"`

	gorm.Model `json:"-"`
}

func (s *Settings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// DefaultSettings seeds the singleton on first boot.
func DefaultSettings() Settings {
	return Settings{
		BatchOptions:      StringList{"Morning 6 AM", "Morning 7 AM", "Evening 6 PM", "Evening 7 PM"},
		CategoryOptions:   StringList{"General", "Therapy", "Online", "Kids"},
		PeriodOptions:     StringList{"1 month", "3 month", "6 month", "12 month", "10 day"},
		LeadSourceOptions: StringList{"Walk-in", "Referral", "Instagram", "Google"},
		SourceOptions:     StringList{"Main Center", "Branch"},
		MessageTemplates: TemplateMap{
			"3":  "Reminder: Hi {name}, your yoga subscription is due on {dueDate} (in {diffDays} days). Please renew on time.",
			"2":  "Reminder: Hi {name}, your yoga subscription is due on {dueDate} (in {diffDays} days). Please renew on time.",
			"0":  "Friendly reminder: Hi {name}, your yoga subscription is due today ({dueDate}). Kindly renew.",
			"-1": "Hi {name}, your yoga subscription was due on {dueDate} and is now overdue. Please renew.",
			"-2": "Hi {name}, your yoga subscription is overdue by 2 days (due {dueDate}). Please renew immediately.",
		},
		MessageInterval: 5,
	}
}
