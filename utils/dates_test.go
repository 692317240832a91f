package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateISO(t *testing.T) {
	d := ParseDate("2024-01-13")
	require.NotNil(t, d)
	assert.Equal(t, date(2024, time.January, 13), *d)

	d = ParseDate("2024-01-13T10:30:00Z")
	require.NotNil(t, d)
	assert.Equal(t, 13, d.Day())
}

func TestParseDateSlashForm(t *testing.T) {
	// First component > 12 means DD/MM/YYYY.
	d := ParseDate("13/01/2024")
	require.NotNil(t, d)
	assert.Equal(t, 13, d.Day())
	assert.Equal(t, time.January, d.Month())

	// Otherwise MM/DD/YYYY: here month=1, day=13 again.
	d = ParseDate("01/13/2024")
	require.NotNil(t, d)
	assert.Equal(t, 13, d.Day())
	assert.Equal(t, time.January, d.Month())

	d = ParseDate("05/03/2024")
	require.NotNil(t, d)
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 3, d.Day())
}

func TestParseDateUnparseable(t *testing.T) {
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("   "))
	assert.Nil(t, ParseDate("not a date"))
	assert.Nil(t, ParseDate("13/01"))
	assert.Nil(t, ParseDate("aa/bb/cccc"))
}

func TestCalcDueDateMonths(t *testing.T) {
	due := CalcDueDate("2024-01-01", "3 month")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.April, 1), *due)

	// Day-of-month preserved when valid for the target month.
	due = CalcDueDate("2024-03-15", "1 month")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.April, 15), *due)
}

func TestCalcDueDateMonthRollover(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month to Feb 31 = Mar 2 (2024 is a leap
	// year, February has 29 days).
	due := CalcDueDate("2024-01-31", "1 month")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.March, 2), *due)
}

func TestCalcDueDateDays(t *testing.T) {
	due := CalcDueDate("2023-12-25", "10 day")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.January, 4), *due)
}

func TestCalcDueDatePluralUnits(t *testing.T) {
	due := CalcDueDate("2024-01-01", "2 months")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.March, 1), *due)

	due = CalcDueDate("2024-01-01", "5 days")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.January, 6), *due)
}

func TestCalcDueDateUnknownUnitIsNoOp(t *testing.T) {
	due := CalcDueDate("2024-01-01", "2 week")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.January, 1), *due)
}

func TestCalcDueDateNonNumericCount(t *testing.T) {
	// Non-numeric count is treated as 0.
	due := CalcDueDate("2024-01-01", "abc month")
	require.NotNil(t, due)
	assert.Equal(t, date(2024, time.January, 1), *due)
}

func TestCalcDueDateMissingInputs(t *testing.T) {
	assert.Nil(t, CalcDueDate("", "1 month"))
	assert.Nil(t, CalcDueDate("2024-01-01", ""))
	assert.Nil(t, CalcDueDate("garbage", "1 month"))
}

func TestFormatDate(t *testing.T) {
	d := date(2024, time.March, 5)
	assert.Equal(t, "05/03/2024", FormatDate(&d))
	assert.Equal(t, "-", FormatDate(nil))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, d := range []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 29),
		date(2023, time.December, 31),
		date(2025, time.July, 4),
	} {
		parsed := ParseDate(FormatDate(&d))
		require.NotNil(t, parsed)
		assert.Equal(t, FormatDate(&d), FormatDate(parsed))
		assert.Equal(t, d, *parsed)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, time.February, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 4, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(start, end))
	assert.Equal(t, -3, DaysBetween(end, start))
}

func TestDaysBetweenMixedZones(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	// Parsed dates carry UTC; "today" carries the server's local zone.
	// The count must still be exact whole days.
	due := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.February, 4, 0, 0, 0, 0, ist)
	assert.Equal(t, -3, DaysBetween(today, due))
	assert.Equal(t, 3, DaysBetween(due, today))

	// Same calendar day in both zones is zero days apart.
	sameDay := time.Date(2024, time.February, 1, 9, 0, 0, 0, ist)
	assert.Equal(t, 0, DaysBetween(sameDay, due))
}

func TestDaysBetweenAcrossDSTTransition(t *testing.T) {
	// US spring-forward: the night of 2024-03-10 is 23 hours long. A
	// duration-based count would see less than a full day.
	est := time.FixedZone("EST", -5*3600)
	edt := time.FixedZone("EDT", -4*3600)
	before := time.Date(2024, time.March, 10, 8, 0, 0, 0, est)
	after := time.Date(2024, time.March, 11, 8, 0, 0, 0, edt)
	assert.Equal(t, 1, DaysBetween(before, after))
	assert.Equal(t, -1, DaysBetween(after, before))
}
