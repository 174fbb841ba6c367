// Package timetable defines the entries placed on school timetables.
package timetable

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/horario/internal/dateutil"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidDuration   = errors.New("duration must be a positive number of hours")
	ErrDurationTooLong   = errors.New("evaluations last at most 4 hours")
	ErrEndPastMidnight   = errors.New("end time runs past midnight")
	ErrInvalidDay        = errors.New("day must be a weekday name")
	ErrMissingReference  = errors.New("class, subject and teacher are required")
	ErrTitleTooLong      = errors.New("title is too long")
	ErrRoomTooLong       = errors.New("room is too long")
)

// Domain errors.
var (
	ErrSlotConflict  = errors.New("slot conflicts with an existing entry")
	ErrEntryNotFound = errors.New("entry not found")
)

// Evaluation duration bounds, in hours.
const (
	MinEvaluationHours = 1
	MaxEvaluationHours = 4
)

// Kind tells the two entry shapes apart.
type Kind string

const (
	KindLesson     Kind = "lesson"
	KindEvaluation Kind = "evaluation"
)

// Refs holds the catalog identifiers an entry points at.
type Refs struct {
	ClassID   int64
	SubjectID int64
	TeacherID int64
	Room      string
}

// Entry is implemented by Lesson and Evaluation only.
type Entry interface {
	Kind() Kind
	Key() int64
	References() Refs
	DayName() string   // lowercase weekday, e.g. "monday"
	StartTime() string // "HH:MM"
	entry()
}

// Lesson is a weekly recurring course slot of one class.
type Lesson struct {
	ID        int64     `json:"id"`
	ClassID   int64     `json:"class_id"`
	SubjectID int64     `json:"subject_id"`
	TeacherID int64     `json:"teacher_id"`
	Room      string    `json:"room,omitempty"`
	Day       string    `json:"day"`   // lowercase weekday name
	Start     string    `json:"start"` // "HH:MM"
	CreatedAt time.Time `json:"created_at"`
}

func (Lesson) entry() {}

// Kind returns KindLesson.
func (Lesson) Kind() Kind { return KindLesson }

// Key returns the lesson ID.
func (l Lesson) Key() int64 { return l.ID }

// DayName returns the weekday the lesson recurs on.
func (l Lesson) DayName() string { return strings.ToLower(l.Day) }

// StartTime returns the lesson start.
func (l Lesson) StartTime() string { return l.Start }

// References returns the catalog identifiers of the lesson.
func (l Lesson) References() Refs {
	return Refs{ClassID: l.ClassID, SubjectID: l.SubjectID, TeacherID: l.TeacherID, Room: l.Room}
}

// ConflictsWith returns true if both lessons sit on the same cell and share
// a class, a teacher or a room.
func (l Lesson) ConflictsWith(other Lesson) bool {
	if l.ID != 0 && l.ID == other.ID {
		return false
	}
	if l.DayName() != other.DayName() || l.Start != other.Start {
		return false
	}
	return sharesResource(l.References(), other.References())
}

// Evaluation is a one-off dated assessment lasting whole hours.
type Evaluation struct {
	ID        int64     `json:"id"`
	ClassID   int64     `json:"class_id"`
	SubjectID int64     `json:"subject_id"`
	TeacherID int64     `json:"teacher_id"`
	Title     string    `json:"title,omitempty"`
	Date      time.Time `json:"date"`
	Start     string    `json:"start"`    // "HH:MM"
	Duration  int       `json:"duration"` // hours
	CreatedAt time.Time `json:"created_at"`
}

func (Evaluation) entry() {}

// Kind returns KindEvaluation.
func (Evaluation) Kind() Kind { return KindEvaluation }

// Key returns the evaluation ID.
func (e Evaluation) Key() int64 { return e.ID }

// DayName returns the weekday of the evaluation date.
func (e Evaluation) DayName() string { return dateutil.DayName(e.Date) }

// StartTime returns the evaluation start.
func (e Evaluation) StartTime() string { return e.Start }

// References returns the catalog identifiers of the evaluation.
func (e Evaluation) References() Refs {
	return Refs{ClassID: e.ClassID, SubjectID: e.SubjectID, TeacherID: e.TeacherID}
}

// End returns the end time derived from Start and Duration.
// It is empty when the pair does not form a valid range.
func (e Evaluation) End() string {
	end, err := EndTime(e.Start, e.Duration)
	if err != nil {
		return ""
	}
	return end
}

// ConflictsWith returns true if both evaluations overlap on the same date
// and share a class or a teacher.
func (e Evaluation) ConflictsWith(other Evaluation) bool {
	if e.ID != 0 && e.ID == other.ID {
		return false
	}
	if !dateutil.SameDay(e.Date, other.Date) {
		return false
	}
	end, otherEnd := e.End(), other.End()
	if end == "" || otherEnd == "" {
		return false
	}
	if !TimesOverlap(e.Start, end, other.Start, otherEnd) {
		return false
	}
	a, b := e.References(), other.References()
	return a.ClassID == b.ClassID || a.TeacherID == b.TeacherID
}

func sharesResource(a, b Refs) bool {
	if a.ClassID == b.ClassID || a.TeacherID == b.TeacherID {
		return true
	}
	return a.Room != "" && strings.EqualFold(a.Room, b.Room)
}
