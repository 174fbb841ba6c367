package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/horario/internal/timetable"
)

func testCatalogs() *Catalogs {
	return New(Data{
		Subjects: []Subject{
			{ID: 1, Name: "Mathematics", Code: "MAT", Color: "#2563eb"},
			{ID: 2, Name: "History", Code: "HIS", Color: "not-a-colour"},
		},
		Teachers: []Teacher{{ID: 1, FirstName: "Ada", LastName: "Lovelace"}},
		Classes:  []Class{{ID: 1, Name: "1A", Level: "first"}},
		Rooms:    []Room{{Code: "B12", Name: "Biology lab", Capacity: 24}},
		Students: []Student{{ID: 1, FirstName: "Lin", LastName: "Ma", ClassID: 1}},
		Parents:  []Parent{{ID: 1, FirstName: "Ana", LastName: "Ma", ChildIDs: []int64{1}}},
	})
}

func TestEnrich_Lesson(t *testing.T) {
	c := testCatalogs()
	card := c.Enrich(timetable.Lesson{ID: 7, ClassID: 1, SubjectID: 1, TeacherID: 1, Room: "b12", Day: "monday", Start: "08:00"})

	checks := []struct {
		field, got, want string
	}{
		{"Subject", card.Subject, "Mathematics"},
		{"SubjectCode", card.SubjectCode, "MAT"},
		{"Color", card.Color, "#2563eb"},
		{"Teacher", card.Teacher, "Ada Lovelace"},
		{"Class", card.Class, "1A"},
		{"Room", card.Room, "Biology lab"},
		{"Day", card.Day, "monday"},
		{"Start", card.Start, "08:00"},
		{"Title", card.Title, "Mathematics"},
	}
	for _, ch := range checks {
		if ch.got != ch.want {
			t.Errorf("%s = %q, want %q", ch.field, ch.got, ch.want)
		}
	}
	if card.ID != 7 || card.Kind != timetable.KindLesson {
		t.Errorf("got id %d kind %q, want 7 lesson", card.ID, card.Kind)
	}
}

func TestEnrich_Evaluation(t *testing.T) {
	c := testCatalogs()
	e := &timetable.Evaluation{
		ID: 3, ClassID: 1, SubjectID: 1, TeacherID: 1, Title: "Midterm",
		Date: time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local), Start: "10:00", Duration: 3,
	}
	card := c.Enrich(e)

	if card.Title != "Midterm" {
		t.Errorf("Title = %q, want %q", card.Title, "Midterm")
	}
	if card.End != "13:00" {
		t.Errorf("End = %q, want %q", card.End, "13:00")
	}
	if card.Date != "2025-01-13" {
		t.Errorf("Date = %q, want %q", card.Date, "2025-01-13")
	}
	if card.Day != "monday" {
		t.Errorf("Day = %q, want %q", card.Day, "monday")
	}
	if card.Room != NoRoom {
		t.Errorf("Room = %q, want %q", card.Room, NoRoom)
	}
	if card.Label() != "MAT (eval)" {
		t.Errorf("Label = %q, want %q", card.Label(), "MAT (eval)")
	}
}

func TestEnrich_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		cat  *Catalogs
	}{
		{name: "missing ids", cat: testCatalogs()},
		{name: "empty catalogs", cat: New(Data{})},
		{name: "nil catalogs", cat: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := tt.cat.Enrich(timetable.Lesson{ClassID: 999, SubjectID: 999, TeacherID: 999, Day: "monday", Start: "08:00"})
			if card.Class != UnknownClass {
				t.Errorf("Class = %q, want %q", card.Class, UnknownClass)
			}
			if card.Subject != UnknownSubject {
				t.Errorf("Subject = %q, want %q", card.Subject, UnknownSubject)
			}
			if card.SubjectCode != UnknownCode {
				t.Errorf("SubjectCode = %q, want %q", card.SubjectCode, UnknownCode)
			}
			if card.Teacher != UnassignedTeacher {
				t.Errorf("Teacher = %q, want %q", card.Teacher, UnassignedTeacher)
			}
			if card.Room != NoRoom {
				t.Errorf("Room = %q, want %q", card.Room, NoRoom)
			}
			if card.Color != FallbackColor {
				t.Errorf("Color = %q, want %q", card.Color, FallbackColor)
			}
			if card.Title == "" {
				t.Error("Title is empty")
			}
		})
	}
}

func TestEnrich_UnknownRoomShownVerbatim(t *testing.T) {
	card := testCatalogs().Enrich(timetable.Lesson{ClassID: 1, SubjectID: 1, TeacherID: 1, Room: "Gym", Day: "friday", Start: "09:00"})
	if card.Room != "Gym" {
		t.Errorf("Room = %q, want %q", card.Room, "Gym")
	}
}

func TestEnrich_InvalidColorFallsBack(t *testing.T) {
	card := testCatalogs().Enrich(timetable.Lesson{ClassID: 1, SubjectID: 2, TeacherID: 1, Day: "friday", Start: "09:00"})
	if card.Subject != "History" {
		t.Errorf("Subject = %q, want %q", card.Subject, "History")
	}
	if card.Color != FallbackColor {
		t.Errorf("Color = %q, want %q", card.Color, FallbackColor)
	}
}

func TestParent_HasChild(t *testing.T) {
	p, ok := testCatalogs().Parent(1)
	if !ok {
		t.Fatal("parent 1 not found")
	}
	if !p.HasChild(1) {
		t.Error("HasChild(1) = false, want true")
	}
	if p.HasChild(2) {
		t.Error("HasChild(2) = true, want false")
	}
}

func TestNew_LaterRecordsWin(t *testing.T) {
	c := New(Data{Subjects: []Subject{{ID: 1, Name: "Old"}, {ID: 1, Name: "New"}}})
	s, _ := c.Subject(1)
	if s.Name != "New" {
		t.Errorf("got %q, want %q", s.Name, "New")
	}
	if n := len(c.Data().Subjects); n != 1 {
		t.Errorf("got %d subjects, want 1", n)
	}
}

func TestValidColor(t *testing.T) {
	for _, s := range []string{"#000000", "#A1b2C3"} {
		if !ValidColor(s) {
			t.Errorf("ValidColor(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "000000", "#12345", "#12345g"} {
		if ValidColor(s) {
			t.Errorf("ValidColor(%q) = true, want false", s)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  any
		wantErr error
	}{
		{name: "subject", record: Subject{ID: 1, Name: "Maths", Color: "#ffffff"}},
		{name: "subject bad colour", record: Subject{ID: 1, Name: "Maths", Color: "blue"}, wantErr: ErrInvalidColor},
		{name: "subject bad colour is an invalid record", record: &Subject{ID: 1, Name: "Maths", Color: "#12345"}, wantErr: ErrInvalidRecord},
		{name: "subject without name", record: &Subject{ID: 1}, wantErr: ErrInvalidRecord},
		{name: "teacher zero id", record: Teacher{LastName: "Noether"}, wantErr: ErrInvalidRecord},
		{name: "teacher bad email", record: Teacher{ID: 1, LastName: "Noether", Email: "nope"}, wantErr: ErrInvalidRecord},
		{name: "class", record: Class{ID: 1, Name: "1A"}},
		{name: "room without code", record: Room{Name: "Gym"}, wantErr: ErrInvalidRecord},
		{name: "student without class", record: Student{ID: 1, LastName: "Ma"}, wantErr: ErrInvalidRecord},
		{name: "parent", record: Parent{ID: 1, LastName: "Ma"}},
		{name: "unsupported", record: 42, wantErr: ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}
