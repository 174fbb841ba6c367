package catalog

import (
	"strings"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/timetable"
)

// Fallback labels used when a reference is missing.
const (
	UnknownSubject    = "unknown subject"
	UnassignedTeacher = "unassigned teacher"
	UnknownClass      = "unknown class"
	NoRoom            = "no room"
	UnknownCode       = "?"
	FallbackColor     = "#9ca3af"
)

// Card is a self-contained display record for one entry.
// Every label is non-empty.
type Card struct {
	Entry       timetable.Entry
	Kind        timetable.Kind
	ID          int64
	Title       string
	Subject     string
	SubjectCode string
	Color       string
	Teacher     string
	Class       string
	Room        string
	Day         string // lowercase weekday
	Date        string // YYYY-MM-DD, evaluations only
	Start       string
	End         string
}

// Label returns the short text drawn in a grid cell.
func (c Card) Label() string {
	if c.Kind == timetable.KindEvaluation {
		return c.SubjectCode + " (eval)"
	}
	return c.SubjectCode
}

// Enrich resolves the references of e into a Card. It never fails:
// missing references resolve to fallback labels.
func (c *Catalogs) Enrich(e timetable.Entry) Card {
	refs := e.References()
	card := Card{
		Entry:       e,
		Kind:        e.Kind(),
		ID:          e.Key(),
		Subject:     UnknownSubject,
		SubjectCode: UnknownCode,
		Color:       FallbackColor,
		Teacher:     UnassignedTeacher,
		Class:       UnknownClass,
		Room:        NoRoom,
		Day:         e.DayName(),
		Start:       e.StartTime(),
	}

	if s, ok := c.Subject(refs.SubjectID); ok {
		if s.Name != "" {
			card.Subject = s.Name
		}
		if s.Code != "" {
			card.SubjectCode = s.Code
		}
		if ValidColor(s.Color) {
			card.Color = s.Color
		}
	}
	if t, ok := c.Teacher(refs.TeacherID); ok && t.FullName() != "" {
		card.Teacher = t.FullName()
	}
	if cl, ok := c.Class(refs.ClassID); ok && cl.Name != "" {
		card.Class = cl.Name
	}
	if room := strings.TrimSpace(refs.Room); room != "" {
		card.Room = room
		if r, ok := c.Room(room); ok && r.Name != "" {
			card.Room = r.Name
		}
	}

	card.Title = card.Subject
	switch v := e.(type) {
	case timetable.Evaluation:
		card.fillEvaluation(v)
	case *timetable.Evaluation:
		card.fillEvaluation(*v)
	}
	return card
}

// fillEvaluation sets the fields only an evaluation carries. The lesson end
// depends on the axis and is filled in at placement.
func (c *Card) fillEvaluation(e timetable.Evaluation) {
	c.End = e.End()
	c.Date = dateutil.FormatDate(e.Date)
	if t := strings.TrimSpace(e.Title); t != "" {
		c.Title = t
	}
}

// EnrichAll enriches entries, keeping their order.
func EnrichAll[E timetable.Entry](c *Catalogs, entries []E) []Card {
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, c.Enrich(e))
	}
	return cards
}

// ValidColor reports whether s is a "#rrggbb" hex colour.
func ValidColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
