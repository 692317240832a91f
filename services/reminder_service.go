// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"yogadesk-backend/models"
	"yogadesk-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Day offsets the daily sweep is allowed to message on. The interactive
// bulk path is not restricted by this set.
var sweepOffsets = map[int]bool{3: true, 2: true, 0: true, -1: true, -2: true}

type ReminderService struct {
	db     *gorm.DB
	http   *http.Client
	twilio *twilio.RestClient
	now    func() time.Time
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db:   db,
		http: &http.Client{Timeout: 15 * time.Second},
		twilio: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		now: time.Now,
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	if _, err := c.AddFunc("0 8 * * *", s.SweepDue); err != nil {
		log.Printf("Failed to schedule daily sweep: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

// Send composes and dispatches one reminder, then appends exactly one log
// row regardless of outcome. Transport errors are captured into the log
// entry, never returned. Duplicate sends are allowed: calling twice sends
// and logs twice.
func (s *ReminderService) Send(m models.MemberView) models.ReminderLog {
	var settings models.Settings
	if err := s.db.First(&settings).Error; err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	msg := utils.ComposeMessage(settings.MessageTemplates, m.Name, m.DueStr, m.DiffDays)
	to := utils.Recipient(m.PaidBy, m.Mobile)

	status := "Sent"
	errMsg := ""
	channel := "whatsapp"

	switch {
	case to == "":
		status = "Failed"
		errMsg = "no recipient mobile"
	case settings.WhatsappAPIURL != "":
		if err := s.sendWhatsApp(settings.WhatsappAPIURL, to, msg); err != nil {
			log.Printf("WhatsApp send to %s failed: %v", to, err)
			status = "Failed"
			errMsg = err.Error()
		}
	default:
		// No gateway configured: fall back to SMS via Twilio.
		channel = "sms"
		if err := s.sendSMS(to, msg); err != nil {
			log.Printf("SMS send to %s failed: %v", to, err)
			status = "Failed"
			errMsg = err.Error()
		}
	}

	entry := models.ReminderLog{
		MemberID: m.ID,
		Name:     m.Name,
		Mobile:   to,
		DiffDays: m.DiffDays,
		Message:  msg,
		Status:   status,
		Error:    errMsg,
		Channel:  channel,
		SentAt:   s.now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for member %s: %v", m.ID, err)
	}

	// Write the last-known reminder state back onto the member.
	reminderStatus := fmt.Sprintf("%s (%+dd)", status, m.DiffDays)
	if err := s.db.Model(&models.Member{}).Where("id = ?", m.ID).
		Update("reminder_status", reminderStatus).Error; err != nil {
		log.Printf("Failed to update reminder status for member %s: %v", m.ID, err)
	}

	return entry
}

// SendBulk dispatches strictly sequentially, pausing MessageInterval seconds
// between dispatch starts. One member's failure never halts the rest.
func (s *ReminderService) SendBulk(views []models.MemberView) {
	var settings models.Settings
	if err := s.db.First(&settings).Error; err != nil {
		log.Printf("Failed to load settings: %v", err)
	}
	interval := time.Duration(settings.MessageInterval) * time.Second

	for i, v := range views {
		if i > 0 && interval > 0 {
			time.Sleep(interval)
		}
		s.Send(v)
	}
	log.Printf("Bulk send completed for %d members", len(views))
}

// SweepDue is the daily pass: every member is projected against today and
// messaged only when their day offset is one of {3, 2, 0, -1, -2}. Members
// with no reachable number are skipped before any attempt is made.
func (s *ReminderService) SweepDue() {
	log.Println("Starting daily reminder sweep...")

	var members []models.Member
	if err := s.db.Find(&members).Error; err != nil {
		log.Printf("Sweep: failed to fetch members: %v", err)
		return
	}

	today := utils.BeginningOfDay(s.now())
	var due []models.MemberView
	for _, m := range members {
		v := m.Project(today)
		if v.DueStr == "-" || !sweepOffsets[v.DiffDays] {
			continue
		}
		if utils.Recipient(v.PaidBy, v.Mobile) == "" {
			continue
		}
		due = append(due, v)
	}

	s.SendBulk(due)
	log.Printf("Daily reminder sweep completed, %d reminders dispatched", len(due))
}

func (s *ReminderService) sendWhatsApp(apiURL, to, msg string) error {
	u, err := url.Parse(apiURL)
	if err != nil {
		return err
	}
	// Keep any query baked into the configured gateway URL.
	q := u.Query()
	q.Set("mobile", to)
	q.Set("msg", msg)
	u.RawQuery = q.Encode()

	resp, err := s.http.Get(u.String())
	if err != nil {
		return err
	}
	// Fire-and-forget: the response body is unused.
	resp.Body.Close()
	return nil
}

func (s *ReminderService) sendSMS(to, msg string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("+" + to)
	params.SetBody(msg)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	_, err := s.twilio.Api.CreateMessage(params)
	return err
}
