// Package dateutil provides date parsing and weekday utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the storage and input format for dates.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Contains returns true if t falls on a day within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := FormatDate(t)
	return day >= FormatDate(r.Start) && day <= FormatDate(r.End)
}

// ParseDate parses a date string in YYYY-MM-DD format as local midnight.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay returns true if a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return FormatDate(a) == FormatDate(b)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseWeek resolves a week reference to the Monday of that week:
//   - Empty string or "this-week": the week of relativeTo
//   - "next-week" / "last-week": one week after / before
//   - Absolute date: "2025-01-15" (YYYY-MM-DD), any day of the wanted week
//
// All inputs are case-insensitive.
func ParseWeek(s string, relativeTo time.Time) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(s))

	var ref time.Time
	switch input {
	case "", "this-week":
		ref = relativeTo
	case "next-week":
		ref = relativeTo.AddDate(0, 0, 7)
	case "last-week":
		ref = relativeTo.AddDate(0, 0, -7)
	default:
		d, err := ParseDate(input)
		if err != nil {
			return time.Time{}, err
		}
		ref = d
	}

	monday, _ := WeekRange(ref)
	return monday, nil
}

// DayName returns the lowercase English weekday name of t.
func DayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsWeekday returns true if name is an English weekday name (any case).
func IsWeekday(name string) bool {
	_, ok := weekdayMap[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// DateOfWeekday returns the date of the named weekday within the ISO week of t.
func DateOfWeekday(t time.Time, name string) (time.Time, bool) {
	wd, ok := weekdayMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Time{}, false
	}
	monday, _ := WeekRange(t)
	offset := int(wd) - 1
	if wd == time.Sunday {
		offset = 6
	}
	return monday.AddDate(0, 0, offset), true
}
