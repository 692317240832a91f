package models

import (
	"sort"
	"strings"
	"time"
	"yogadesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a studio member with their current subscription period.
// RenewalDate and OriginalDate are kept as strings in whatever format they
// arrived in (ISO or slash form); DueDate and Status are persisted snapshots
// only and are recomputed on every read via Project.
type Member struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name       string `gorm:"not null" json:"name"`
	Mobile     string `gorm:"not null;index" json:"mobile"`
	Email      string `json:"email"`
	PaidBy     string `json:"paidBy"`
	Batch      string `json:"batch"`
	Category   string `json:"category"`
	LeadSource string `json:"leadSource"`
	Source     string `json:"source"`

	RenewalDate  string  `json:"renewalDate"`
	OriginalDate string  `json:"originalDate"` // renewalDate at first creation, never mutated
	Period       string  `json:"period"`       // e.g. "3 month", "10 day"
	Fees         float64 `gorm:"type:decimal(10,2);default:0.0" json:"fees"`

	DueDate string `json:"dueDate"` // cache, ISO form
	Status  string `json:"status"`  // cache, snapshot at last write

	Freeze         bool   `gorm:"default:false" json:"freeze"`
	ReminderStatus string `json:"reminderStatus"`

	// Reserved for the mobile-number transfer workflow.
	TransferTo    string `json:"transferTo"`
	UpdatedMobile string `json:"updatedMobile"`

	gorm.Model `json:"-"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// MemberView is a Member with its display and decision fields derived for a
// given day. Persisted Status/DueDate are never trusted across time; every
// read goes through Project.
type MemberView struct {
	Member
	RenewalStr string `json:"renewalStr"`
	DueStr     string `json:"dueStr"`
	ViewStatus string `json:"status"`
	DiffDays   int    `json:"diffDays"`
}

// Project derives the view for the given day.
func (m Member) Project(today time.Time) MemberView {
	due := utils.CalcDueDate(m.RenewalDate, m.Period)
	return MemberView{
		Member:     m,
		RenewalStr: utils.FormatDate(utils.ParseDate(m.RenewalDate)),
		DueStr:     utils.FormatDate(due),
		ViewStatus: utils.CalcStatus(due, today),
		DiffDays:   utils.DiffDays(due, today),
	}
}

// MemberQuery is the operator's explicit view state: search text, status
// filter and sort key, applied over projected views.
type MemberQuery struct {
	Search    string
	Status    string // "" or "All" means no filter
	SortBy    string // name, mobile, batch, category, fees, status, dueDate, renewalDate
	Ascending bool
}

// Apply filters and sorts a projected member list.
func (q MemberQuery) Apply(views []MemberView) []MemberView {
	out := make([]MemberView, 0, len(views))
	search := strings.ToLower(q.Search)
	for _, v := range views {
		if q.Status != "" && q.Status != "All" && v.ViewStatus != q.Status {
			continue
		}
		if search != "" {
			hay := strings.ToLower(v.Name + " " + v.Mobile + " " + v.Email)
			if !strings.Contains(hay, search) {
				continue
			}
		}
		out = append(out, v)
	}

	if q.SortBy == "" {
		return out
	}
	less := func(a, b MemberView) bool {
		switch q.SortBy {
		case "name":
			return a.Name < b.Name
		case "mobile":
			return a.Mobile < b.Mobile
		case "batch":
			return a.Batch < b.Batch
		case "category":
			return a.Category < b.Category
		case "fees":
			return a.Fees < b.Fees
		case "status":
			return a.ViewStatus < b.ViewStatus
		case "dueDate":
			return a.DiffDays < b.DiffDays
		case "renewalDate":
			return a.RenewalDate < b.RenewalDate
		default:
			return false
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}
