// Package grid lays timetable entries out on a (day, slot) grid.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/horario/internal/timetable"
)

// Axis errors.
var (
	ErrNoDays       = errors.New("axis needs at least one day")
	ErrNoSlots      = errors.New("axis needs at least one slot")
	ErrDuplicateDay = errors.New("duplicate day on axis")
	ErrInvalidSlot  = errors.New("slot must be HH:MM-HH:MM with start before end")
	ErrSlotsOverlap = errors.New("slots must be ordered and must not overlap")
	ErrUnevenSlots  = errors.New("slots must all have the same width")
)

// Slot is one time interval of the slot axis.
type Slot struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// ParseSlot parses a "HH:MM-HH:MM" label.
func ParseSlot(label string) (Slot, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(label), "-")
	if !ok {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	s := Slot{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
	if err := s.validate(); err != nil {
		return Slot{}, err
	}
	return s, nil
}

// Label returns the slot as "HH:MM-HH:MM".
func (s Slot) Label() string {
	return s.Start + "-" + s.End
}

// Minutes returns the slot width in minutes.
func (s Slot) Minutes() int {
	return timetable.TimeToMinutes(s.End) - timetable.TimeToMinutes(s.Start)
}

func (s Slot) validate() error {
	if !timetable.ValidTime(s.Start) || !timetable.ValidTime(s.End) || s.Minutes() <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, s.Label())
	}
	return nil
}

// Axis is the immutable pair of a day axis and a slot axis.
type Axis struct {
	days  []string
	slots []Slot
}

// NewAxis validates days and slots and builds an Axis.
// Days keep their given spelling; lookups ignore case.
func NewAxis(days []string, slots []Slot) (Axis, error) {
	if len(days) == 0 {
		return Axis{}, ErrNoDays
	}
	if len(slots) == 0 {
		return Axis{}, ErrNoSlots
	}

	seen := make(map[string]bool, len(days))
	ds := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.TrimSpace(d)
		key := strings.ToLower(d)
		if key == "" || seen[key] {
			return Axis{}, fmt.Errorf("%w: %q", ErrDuplicateDay, d)
		}
		seen[key] = true
		ds = append(ds, d)
	}

	width := slots[0].Minutes()
	for i, s := range slots {
		if err := s.validate(); err != nil {
			return Axis{}, err
		}
		if s.Minutes() != width {
			return Axis{}, fmt.Errorf("%w: %s is %d minutes, expected %d", ErrUnevenSlots, s.Label(), s.Minutes(), width)
		}
		if i > 0 && timetable.TimeToMinutes(s.Start) < timetable.TimeToMinutes(slots[i-1].End) {
			return Axis{}, fmt.Errorf("%w: %s after %s", ErrSlotsOverlap, s.Label(), slots[i-1].Label())
		}
	}

	return Axis{days: ds, slots: append([]Slot(nil), slots...)}, nil
}

// ParseAxis builds an Axis from day names and "HH:MM-HH:MM" labels.
func ParseAxis(days, labels []string) (Axis, error) {
	slots := make([]Slot, 0, len(labels))
	for _, l := range labels {
		s, err := ParseSlot(l)
		if err != nil {
			return Axis{}, err
		}
		slots = append(slots, s)
	}
	return NewAxis(days, slots)
}

// MustParseAxis is ParseAxis for static axes; it panics on error.
func MustParseAxis(days, labels []string) Axis {
	a, err := ParseAxis(days, labels)
	if err != nil {
		panic(err)
	}
	return a
}

// Days returns a copy of the day axis.
func (a Axis) Days() []string { return append([]string(nil), a.days...) }

// Slots returns a copy of the slot axis.
func (a Axis) Slots() []Slot { return append([]Slot(nil), a.slots...) }

// NumDays returns the number of days.
func (a Axis) NumDays() int { return len(a.days) }

// NumSlots returns the number of slots per day.
func (a Axis) NumSlots() int { return len(a.slots) }

// SlotWidth returns the width of every slot in minutes.
func (a Axis) SlotWidth() int {
	if len(a.slots) == 0 {
		return 0
	}
	return a.slots[0].Minutes()
}

// SlotIndex returns the index of the slot starting exactly at start.
func (a Axis) SlotIndex(start string) (int, bool) {
	start = strings.TrimSpace(start)
	for i, s := range a.slots {
		if s.Start == start {
			return i, true
		}
	}
	return -1, false
}

// DayIndex returns the index of the named day, ignoring case.
func (a Axis) DayIndex(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, d := range a.days {
		if strings.EqualFold(d, name) {
			return i, true
		}
	}
	return -1, false
}

// Slot returns the slot at index i.
func (a Axis) Slot(i int) Slot { return a.slots[i] }

// Day returns the day at index i.
func (a Axis) Day(i int) string { return a.days[i] }

// contiguous reports whether slots [from, from+n) follow each other without gaps.
func (a Axis) contiguous(from, n int) bool {
	for i := from + 1; i < from+n; i++ {
		if a.slots[i].Start != a.slots[i-1].End {
			return false
		}
	}
	return true
}
