package shared

import (
	"fmt"
	"time"
)

// DateLayout is the wire format used by the schedule service.
const DateLayout = "2006-01-02"

// MinArchiveYear is the earliest season available in the MLB.tv archive.
const MinArchiveYear = 2022

var gameDateLayouts = []string{DateLayout, "01-02-2006", "01/02/2006"}

// ParseGameDate accepts YYYY-MM-DD, MM-DD-YYYY or MM/DD/YYYY and returns the date at midnight UTC.
func ParseGameDate(s string) (time.Time, error) {
	for _, layout := range gameDateLayouts {
		d, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if d.Year() < MinArchiveYear {
			return time.Time{}, fmt.Errorf("%w: archives only go back to the start of %d", ErrInvalidDate, MinArchiveYear)
		}
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q; expected YYYY-MM-DD", ErrInvalidDate, s)
}

// CalendarDate drops the clock and zone from t, keeping the local calendar day.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRange returns the ordered bounds between today and today+days.
//
// Negative days look back from today.
func DayRange(today time.Time, days int) (start, end time.Time) {
	today = CalendarDate(today)
	offset := today.AddDate(0, 0, days)
	if offset.Before(today) {
		return offset, today
	}
	return today, offset
}
