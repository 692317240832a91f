// utils/dates.go
package utils

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried in order for ISO-style inputs.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats that show up in member records: ISO-8601
// strings and slash-delimited A/B/C strings. For the slash form the first
// component decides the order: > 12 means DD/MM/YYYY, otherwise MM/DD/YYYY.
// Returns nil for empty or unparseable input.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range isoLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return &d
		}
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return nil
	}
	a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
	b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
	c, errC := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errA != nil || errB != nil || errC != nil {
		return nil
	}

	var d time.Time
	if a > 12 {
		d = time.Date(c, time.Month(b), a, 0, 0, 0, 0, time.UTC)
	} else {
		d = time.Date(c, time.Month(a), b, 0, 0, 0, 0, time.UTC)
	}
	return &d
}

// CalcDueDate advances a renewal date by a subscription period of the form
// "<n> month(s)" or "<n> day(s)". A non-numeric count counts as 0 and an
// unrecognized unit leaves the date unchanged. Returns nil if either input
// is missing or the renewal date does not parse.
func CalcDueDate(renewal, period string) *time.Time {
	base := ParseDate(renewal)
	if base == nil || period == "" {
		return nil
	}

	parts := strings.SplitN(period, " ", 2)
	n, _ := strconv.Atoi(parts[0]) // Atoi error -> 0
	unit := ""
	if len(parts) > 1 {
		unit = parts[1]
	}

	due := *base
	switch {
	case strings.HasPrefix(unit, "month"):
		// AddDate normalizes overflow: Jan 31 + 1 month lands in early March.
		due = due.AddDate(0, n, 0)
	case strings.HasPrefix(unit, "day"):
		due = due.AddDate(0, 0, n)
	}
	return &due
}

// FormatDate renders DD/MM/YYYY, or "-" when there is no date.
func FormatDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Format("02/01/2006")
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from start to end. Both operands are
// reduced to their own calendar date and rebuilt in UTC, so mixed-zone inputs
// and DST transitions still yield an exact day count.
func DaysBetween(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
