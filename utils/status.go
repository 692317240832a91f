// utils/status.go
package utils

import "time"

// Billing statuses derived from the due date.
const (
	StatusNA       = "N/A"
	StatusNotDue   = "Not Due"
	StatusFollowUp = "Follow up"
	StatusOverdue  = "Overdue"
	StatusOnHold   = "On Hold"
)

// AllStatuses in display order, for filter dropdowns.
var AllStatuses = []string{StatusNotDue, StatusFollowUp, StatusOverdue, StatusOnHold, StatusNA}

// DiffDays is the signed day count between today and the due date, positive
// when the due date is in the future. Unknown due dates count as 0.
func DiffDays(due *time.Time, today time.Time) int {
	if due == nil {
		return 0
	}
	return DaysBetween(today, *due)
}

// CalcStatus classifies a due date against today. Both dates are normalized
// to midnight before comparison, so the result only moves when the calendar
// day does.
func CalcStatus(due *time.Time, today time.Time) string {
	if due == nil {
		return StatusNA
	}
	diff := DaysBetween(today, *due)
	switch {
	case diff > 0:
		return StatusNotDue
	case diff == 0:
		return StatusFollowUp
	case diff >= -2:
		return StatusOverdue
	default:
		return StatusOnHold
	}
}
