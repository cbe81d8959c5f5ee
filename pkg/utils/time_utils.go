package utils

import (
	"strings"
	"time"
)

// ISODateLayout is the calendar-date format shared by prompt building,
// extraction, and forecast lookups.
const ISODateLayout = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD date. Returns false when the text is not a
// usable calendar date so callers can decide how to degrade.
func ParseISODate(s string) (time.Time, bool) {
	t, err := time.Parse(ISODateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// NextDay advances a date cursor by one calendar day. Day arithmetic stays in
// calendar space; no timezone conversion is applied.
func NextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// TodayISO is the anchor offered to the model when the user names no date.
func TodayISO() string {
	return time.Now().Format(ISODateLayout)
}
