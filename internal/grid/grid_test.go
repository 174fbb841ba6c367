package grid

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/timetable"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// hourly returns one-hour slots from 08:00 to 18:00.
func hourly() Axis {
	return MustParseAxis(weekdays, []string{
		"08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00", "12:00-13:00",
		"13:00-14:00", "14:00-15:00", "15:00-16:00", "16:00-17:00", "17:00-18:00",
	})
}

// withLunch returns one-hour slots with a break between 12:00 and 14:00.
func withLunch() Axis {
	return MustParseAxis(weekdays[:5], []string{
		"08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00",
		"14:00-15:00", "15:00-16:00", "16:00-17:00", "17:00-18:00",
	})
}

var testCatalogs = catalog.New(catalog.Data{
	Subjects: []catalog.Subject{{ID: 1, Name: "Mathematics", Code: "MAT", Color: "#2563eb"}},
	Teachers: []catalog.Teacher{{ID: 1, FirstName: "Ada", LastName: "Lovelace"}},
	Classes:  []catalog.Class{{ID: 1, Name: "1A"}},
})

// monday 2025-01-13
var monday = time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)

func lesson(id int64, day, start string) catalog.Card {
	return testCatalogs.Enrich(timetable.Lesson{ID: id, ClassID: 1, SubjectID: 1, TeacherID: 1, Day: day, Start: start})
}

func evaluation(id int64, date time.Time, start string, hours int) catalog.Card {
	return testCatalogs.Enrich(timetable.Evaluation{ID: id, ClassID: 1, SubjectID: 1, TeacherID: 1, Date: date, Start: start, Duration: hours})
}

// dayString renders one day column: a letter per origin (A = ID 1),
// "+" per continuation, "-" per empty cell.
func dayString(g *Grid, day int) string {
	var b strings.Builder
	for slot := 0; slot < g.Axis().NumSlots(); slot++ {
		c := g.At(day, slot)
		switch c.Kind {
		case CellOrigin:
			b.WriteRune(rune('A' + c.Card.ID - 1))
		case CellContinuation:
			b.WriteByte('+')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

func TestBuild_LessonOccupiesOneCell(t *testing.T) {
	g, report := Build(hourly(), []catalog.Card{lesson(1, "monday", "08:00")})

	if !report.Empty() {
		t.Fatalf("unexpected report: %+v", report)
	}
	c := g.At(0, 0)
	if c.Kind != CellOrigin || c.Span != 1 {
		t.Fatalf("got kind %v span %d, want origin span 1", c.Kind, c.Span)
	}
	if got := g.Count(CellOrigin) + g.Count(CellContinuation); got != 1 {
		t.Errorf("got %d occupied cells, want 1", got)
	}
	if c.Card.End != "09:00" {
		t.Errorf("got lesson end %q, want %q", c.Card.End, "09:00")
	}
}

func TestBuild_EvaluationSpansThreeSlots(t *testing.T) {
	g, report := Build(hourly(), []catalog.Card{evaluation(1, monday, "10:00", 3)})

	if !report.Empty() {
		t.Fatalf("unexpected report: %+v", report)
	}
	if got, want := dayString(g, 0), "--A++-----"; got != want {
		t.Errorf("monday = %s, want %s", got, want)
	}
	origin := g.At(0, 2)
	if origin.Span != 3 {
		t.Errorf("got span %d, want 3", origin.Span)
	}
	if origin.Card.Subject != "Mathematics" || origin.Card.Teacher != "Ada Lovelace" {
		t.Errorf("got labels %q / %q", origin.Card.Subject, origin.Card.Teacher)
	}
	for _, slot := range []int{3, 4} {
		c := g.At(0, slot)
		if c.Card != nil {
			t.Errorf("continuation at slot %d carries a card", slot)
		}
		if c.Origin != (Coord{Day: 0, Slot: 2}) {
			t.Errorf("continuation at slot %d points at %+v", slot, c.Origin)
		}
	}
}

func TestBuild_FirstOriginWins(t *testing.T) {
	first := lesson(1, "monday", "10:00")
	second := lesson(2, "monday", "10:00")
	g, report := Build(hourly(), []catalog.Card{first, second})

	if got := g.At(0, 2).Card.ID; got != 1 {
		t.Errorf("origin held by %d, want 1", got)
	}
	for _, c := range g.Placed() {
		if c.ID == 2 {
			t.Error("second entry is present in the grid")
		}
	}
	if len(report.Collisions) != 1 {
		t.Fatalf("got %d collisions, want 1", len(report.Collisions))
	}
	col := report.Collisions[0]
	if col.Card.ID != 2 || col.Holder == nil || col.Holder.ID != 1 {
		t.Errorf("got collision %d held by %v, want 2 held by 1", col.Card.ID, col.Holder)
	}
	if !errors.Is(col.Err, ErrCellTaken) {
		t.Errorf("got error %v, want %v", col.Err, ErrCellTaken)
	}
}

func TestBuild_UnknownClassStillPlaced(t *testing.T) {
	card := testCatalogs.Enrich(timetable.Lesson{ID: 1, ClassID: 999, SubjectID: 1, TeacherID: 1, Day: "tuesday", Start: "09:00"})
	g, report := Build(hourly(), []catalog.Card{card})

	if !report.Empty() {
		t.Fatalf("unexpected report: %+v", report)
	}
	c := g.At(1, 1)
	if c.Kind != CellOrigin {
		t.Fatalf("got kind %v, want origin", c.Kind)
	}
	if c.Card.Class != catalog.UnknownClass {
		t.Errorf("got class %q, want %q", c.Card.Class, catalog.UnknownClass)
	}
}

func TestBuild_MisalignedStartExcluded(t *testing.T) {
	g, report := Build(hourly(), []catalog.Card{lesson(1, "monday", "07:30")})

	if n := g.Count(CellEmpty); n != g.Axis().NumDays()*g.Axis().NumSlots() {
		t.Errorf("got %d empty cells, want every cell empty", n)
	}
	if len(report.Unplaceable) != 1 {
		t.Fatalf("got %d unplaceable, want 1", len(report.Unplaceable))
	}
	err := report.Unplaceable[0].Err
	if !errors.Is(err, ErrUnplaceable) || !errors.Is(err, ErrSlotMisaligned) {
		t.Errorf("got error %v, want %v and %v", err, ErrUnplaceable, ErrSlotMisaligned)
	}
}

func TestPlace_Errors(t *testing.T) {
	tests := []struct {
		name    string
		axis    Axis
		entry   timetable.Entry
		wantErr error
	}{
		{name: "unknown day", axis: hourly(), entry: timetable.Lesson{Day: "sunday", Start: "08:00"}, wantErr: ErrUnknownDay},
		{name: "misaligned start", axis: hourly(), entry: timetable.Lesson{Day: "monday", Start: "08:30"}, wantErr: ErrSlotMisaligned},
		{name: "overruns day", axis: hourly(), entry: timetable.Evaluation{Date: monday, Start: "16:00", Duration: 3}, wantErr: ErrOverrunsDay},
		{name: "last slot overrun by one", axis: hourly(), entry: &timetable.Evaluation{Date: monday, Start: "17:00", Duration: 2}, wantErr: ErrOverrunsDay},
		{name: "spans lunch break", axis: withLunch(), entry: timetable.Evaluation{Date: monday, Start: "11:00", Duration: 2}, wantErr: ErrSpansBreak},
		{name: "zero duration", axis: hourly(), entry: timetable.Evaluation{Date: monday, Start: "10:00"}, wantErr: timetable.ErrInvalidDuration},
		{
			name:    "duration not a whole number of slots",
			axis:    MustParseAxis(weekdays, []string{"08:00-10:00", "10:00-12:00", "12:00-14:00"}),
			entry:   timetable.Evaluation{Date: monday, Start: "08:00", Duration: 3},
			wantErr: ErrSpanMisaligned,
		},
		{name: "nil entry", axis: hourly(), entry: nil, wantErr: ErrUnknownEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Place(tt.entry, tt.axis)
			if !errors.Is(err, ErrUnplaceable) {
				t.Errorf("got error %v, want %v", err, ErrUnplaceable)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlace_Spans(t *testing.T) {
	tests := []struct {
		name  string
		axis  Axis
		entry timetable.Entry
		want  Placement
	}{
		{name: "lesson", axis: hourly(), entry: &timetable.Lesson{Day: "Friday", Start: "09:00"}, want: Placement{Origin: Coord{Day: 4, Slot: 1}, Span: 1}},
		{name: "evaluation to the last slot", axis: hourly(), entry: timetable.Evaluation{Date: monday, Start: "14:00", Duration: 4}, want: Placement{Origin: Coord{Day: 0, Slot: 6}, Span: 4}},
		{name: "after lunch", axis: withLunch(), entry: timetable.Evaluation{Date: monday, Start: "14:00", Duration: 2}, want: Placement{Origin: Coord{Day: 0, Slot: 4}, Span: 2}},
		{
			name:  "half-hour slots double the span",
			axis:  MustParseAxis(weekdays, []string{"08:00-08:30", "08:30-09:00", "09:00-09:30", "09:30-10:00"}),
			entry: timetable.Evaluation{Date: monday, Start: "08:00", Duration: 2},
			want:  Placement{Origin: Coord{Day: 0, Slot: 0}, Span: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Place(tt.entry, tt.axis)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuild_OverrunLeavesGridUntouched(t *testing.T) {
	g, report := Build(hourly(), []catalog.Card{evaluation(1, monday, "16:00", 3)})
	if got, want := dayString(g, 0), "----------"; got != want {
		t.Errorf("monday = %s, want %s", got, want)
	}
	if len(report.Unplaceable) != 1 {
		t.Errorf("got %d unplaceable, want 1", len(report.Unplaceable))
	}
}

func TestBuild_Layouts(t *testing.T) {
	tests := []struct {
		name       string
		cards      []catalog.Card
		want       string
		collisions int
	}{
		{
			name:  "back to back evaluations",
			cards: []catalog.Card{evaluation(1, monday, "08:00", 2), evaluation(2, monday, "10:00", 1)},
			want:  "A+B-------",
		},
		{
			name:       "lesson inside an earlier span",
			cards:      []catalog.Card{evaluation(1, monday, "08:00", 3), lesson(2, "monday", "09:00")},
			want:       "A++-------",
			collisions: 1,
		},
		{
			name:       "span reaching an earlier origin",
			cards:      []catalog.Card{lesson(1, "monday", "09:00"), evaluation(2, monday, "08:00", 2)},
			want:       "-A--------",
			collisions: 1,
		},
		{
			name:       "order decides the winner",
			cards:      []catalog.Card{lesson(2, "monday", "09:00"), evaluation(1, monday, "08:00", 2)},
			want:       "-B--------",
			collisions: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, report := Build(hourly(), tt.cards)
			if got := dayString(g, 0); got != tt.want {
				t.Errorf("monday = %s, want %s", got, tt.want)
			}
			if len(report.Collisions) != tt.collisions {
				t.Errorf("got %d collisions, want %d", len(report.Collisions), tt.collisions)
			}
		})
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	cards := []catalog.Card{lesson(1, "monday", "08:00")}
	Build(hourly(), cards)
	if cards[0].End != "" {
		t.Errorf("input card was modified: End = %q", cards[0].End)
	}
}

func TestBuild_Invariants(t *testing.T) {
	axis := hourly()
	rng := rand.New(rand.NewSource(42))
	starts := []string{"07:30", "08:00", "09:00", "10:00", "12:00", "15:00", "16:00", "17:00"}

	for round := 0; round < 50; round++ {
		var cards []catalog.Card
		for i := 0; i < 30; i++ {
			id := int64(len(cards) + 1)
			start := starts[rng.Intn(len(starts))]
			if rng.Intn(2) == 0 {
				day := weekdays[rng.Intn(len(weekdays))]
				if rng.Intn(10) == 0 {
					day = "sunday"
				}
				cards = append(cards, lesson(id, day, start))
				continue
			}
			date := monday.AddDate(0, 0, rng.Intn(7))
			cards = append(cards, evaluation(id, date, start, 1+rng.Intn(4)))
		}

		g, report := Build(axis, cards)

		if total := len(g.Placed()) + len(report.Unplaceable) + len(report.Collisions); total != len(cards) {
			t.Fatalf("round %d: %d cards accounted for, want %d", round, total, len(cards))
		}

		owned := make(map[int64]int)
		origins := make(map[int64]int)
		for slot, row := range g.Rows() {
			for day, c := range row {
				switch c.Kind {
				case CellOrigin:
					origins[c.Card.ID]++
					owned[c.Card.ID]++
					if c.Origin != (Coord{Day: day, Slot: slot}) {
						t.Fatalf("round %d: origin cell points elsewhere", round)
					}
				case CellContinuation:
					holder := g.At(c.Origin.Day, c.Origin.Slot)
					if holder.Kind != CellOrigin || c.Origin.Day != day || c.Origin.Slot >= slot {
						t.Fatalf("round %d: continuation at (%d,%d) has bad origin %+v", round, day, slot, c.Origin)
					}
					owned[holder.Card.ID]++
				case CellEmpty:
					if c.Card != nil {
						t.Fatalf("round %d: empty cell carries a card", round)
					}
				}
			}
		}

		for _, card := range g.Placed() {
			p, err := Place(card.Entry, axis)
			if err != nil {
				t.Fatalf("round %d: placed card %d is unplaceable: %v", round, card.ID, err)
			}
			if origins[card.ID] != 1 {
				t.Errorf("round %d: card %d has %d origins, want 1", round, card.ID, origins[card.ID])
			}
			if owned[card.ID] != p.Span {
				t.Errorf("round %d: card %d owns %d cells, want %d", round, card.ID, owned[card.ID], p.Span)
			}
		}
	}
}

func TestOccupancy_Claim(t *testing.T) {
	occ := NewOccupancy()
	a := lesson(1, "monday", "08:00")
	b := lesson(2, "monday", "09:00")

	if _, err := occ.Claim(&a, Placement{Origin: Coord{0, 0}, Span: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	holder, err := occ.Claim(&b, Placement{Origin: Coord{0, 2}, Span: 2})
	if !errors.Is(err, ErrCellTaken) {
		t.Fatalf("got error %v, want %v", err, ErrCellTaken)
	}
	if holder.ID != 1 {
		t.Errorf("got holder %d, want 1", holder.ID)
	}
	if _, ok := occ.Holder(Coord{0, 3}); ok {
		t.Error("rejected claim marked a cell")
	}
}

func TestGrid_AtOutOfRange(t *testing.T) {
	g, _ := Build(hourly(), nil)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {6, 0}, {0, 10}} {
		if got := g.At(c.Day, c.Slot); got.Kind != CellEmpty {
			t.Errorf("At(%d, %d) = %v, want empty", c.Day, c.Slot, got.Kind)
		}
	}
}
