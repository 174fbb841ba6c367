package grid

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/horario/internal/timetable"
)

// Placement errors. Every Place failure wraps ErrUnplaceable and one reason.
var (
	ErrUnplaceable    = errors.New("entry cannot be placed on the grid")
	ErrUnknownDay     = errors.New("day is not on the axis")
	ErrSlotMisaligned = errors.New("start time does not match a slot boundary")
	ErrSpanMisaligned = errors.New("duration is not a whole number of slots")
	ErrOverrunsDay    = errors.New("entry runs past the last slot of the day")
	ErrSpansBreak     = errors.New("entry spans a break between slots")
	ErrUnknownEntry   = errors.New("unknown entry type")
)

// Coord is a (day, slot) grid coordinate.
type Coord struct {
	Day  int
	Slot int
}

// Placement is the origin and span of a placed entry.
type Placement struct {
	Origin Coord
	Span   int
}

// Cells returns every coordinate the placement consumes, origin first.
func (p Placement) Cells() []Coord {
	cells := make([]Coord, p.Span)
	for i := range cells {
		cells[i] = Coord{Day: p.Origin.Day, Slot: p.Origin.Slot + i}
	}
	return cells
}

// Place resolves e to a placement on a.
func Place(e timetable.Entry, a Axis) (Placement, error) {
	if e == nil {
		return Placement{}, unplaceable(ErrUnknownEntry)
	}

	day, ok := a.DayIndex(e.DayName())
	if !ok {
		return Placement{}, unplaceable(fmt.Errorf("%w: %q", ErrUnknownDay, e.DayName()))
	}
	slot, ok := a.SlotIndex(e.StartTime())
	if !ok {
		return Placement{}, unplaceable(fmt.Errorf("%w: %q", ErrSlotMisaligned, e.StartTime()))
	}

	span, err := spanOf(e, a)
	if err != nil {
		return Placement{}, unplaceable(err)
	}

	if slot+span-1 >= a.NumSlots() {
		return Placement{}, unplaceable(fmt.Errorf("%w: %d slots from %s", ErrOverrunsDay, span, e.StartTime()))
	}
	if !a.contiguous(slot, span) {
		return Placement{}, unplaceable(ErrSpansBreak)
	}

	return Placement{Origin: Coord{Day: day, Slot: slot}, Span: span}, nil
}

func spanOf(e timetable.Entry, a Axis) (int, error) {
	switch v := e.(type) {
	case timetable.Lesson, *timetable.Lesson:
		return 1, nil
	case timetable.Evaluation:
		return evaluationSpan(v.Duration, a.SlotWidth())
	case *timetable.Evaluation:
		return evaluationSpan(v.Duration, a.SlotWidth())
	}
	return 0, fmt.Errorf("%w: %T", ErrUnknownEntry, e)
}

// evaluationSpan converts a duration in hours to a slot count.
func evaluationSpan(hours, slotWidth int) (int, error) {
	if hours <= 0 {
		return 0, timetable.ErrInvalidDuration
	}
	minutes := hours * 60
	if slotWidth <= 0 || minutes%slotWidth != 0 {
		return 0, fmt.Errorf("%w: %dh on %d-minute slots", ErrSpanMisaligned, hours, slotWidth)
	}
	return minutes / slotWidth, nil
}

func unplaceable(reason error) error {
	return fmt.Errorf("%w: %w", ErrUnplaceable, reason)
}
