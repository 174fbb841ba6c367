package timetable

import (
	"fmt"
	"time"
)

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 24 * 60

// ValidTime returns true if s is a valid "HH:MM" clock time.
func ValidTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TimesOverlap returns true if two time ranges overlap.
// Two time ranges overlap if: start1 < end2 AND start2 < end1
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// EndTime returns start plus the given number of hours as "HH:MM".
// Hours are wall-clock hours, independent of any grid slot width.
func EndTime(start string, hours int) (string, error) {
	if hours <= 0 {
		return "", ErrInvalidDuration
	}
	if !ValidTime(start) {
		return "", ErrInvalidTimeFormat
	}
	end := TimeToMinutes(start) + hours*60
	if end >= MinutesPerDay {
		return "", fmt.Errorf("%w: %s + %dh", ErrEndPastMidnight, start, hours)
	}
	return MinutesToTime(end), nil
}
