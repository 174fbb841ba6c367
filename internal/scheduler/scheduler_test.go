package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/db"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/logger"
	"github.com/javiermolinar/horario/internal/timetable"
)

var (
	lessonAxis = grid.MustParseAxis(
		[]string{"monday", "tuesday"},
		[]string{"08:00-09:00", "09:00-10:00", "11:00-12:00"},
	)
	evaluationAxis = grid.MustParseAxis(
		[]string{"monday", "tuesday"},
		[]string{"08:00-09:00", "09:00-10:00", "10:00-11:00"},
	)
)

func newTestScheduler(t *testing.T) (*Scheduler, *db.SQLite) {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return New(repo, lessonAxis, evaluationAxis, logger.Nop()), repo
}

func lessonSpec(day, start string) timetable.LessonSpec {
	return timetable.LessonSpec{ClassID: 1, SubjectID: 1, TeacherID: 1, Day: day, Start: start}
}

func evalSpec(date, start string, hours int) timetable.EvaluationSpec {
	return timetable.EvaluationSpec{ClassID: 1, SubjectID: 1, TeacherID: 1, Date: date, Start: start, Duration: hours}
}

func TestAddLesson(t *testing.T) {
	tests := []struct {
		name    string
		spec    timetable.LessonSpec
		wantErr error
	}{
		{name: "on the grid", spec: lessonSpec("monday", "08:00")},
		{name: "invalid day", spec: lessonSpec("someday", "08:00"), wantErr: timetable.ErrInvalidDay},
		{name: "day off the grid", spec: lessonSpec("friday", "08:00"), wantErr: grid.ErrUnknownDay},
		{name: "start between slots", spec: lessonSpec("monday", "10:00"), wantErr: grid.ErrSlotMisaligned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestScheduler(t)
			l, err := s.AddLesson(context.Background(), tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}

			lessons, _ := repo.ListLessons(context.Background())
			if tt.wantErr != nil {
				if len(lessons) != 0 {
					t.Errorf("got %d stored lessons, want 0", len(lessons))
				}
				return
			}
			if l.ID == 0 || len(lessons) != 1 {
				t.Errorf("got id %d and %d stored lessons", l.ID, len(lessons))
			}
		})
	}
}

func TestAddLesson_Conflict(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	if _, err := s.AddLesson(ctx, lessonSpec("monday", "08:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.AddLesson(ctx, lessonSpec("monday", "08:00")); !errors.Is(err, timetable.ErrSlotConflict) {
		t.Errorf("got error %v, want %v", err, timetable.ErrSlotConflict)
	}
}

func TestEditLesson(t *testing.T) {
	s, repo := newTestScheduler(t)
	ctx := context.Background()

	l, err := s.AddLesson(ctx, lessonSpec("monday", "08:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.EditLesson(ctx, l.ID, lessonSpec("tuesday", "11:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetLesson(ctx, l.ID)
	if got.Day != "tuesday" || got.Start != "11:00" {
		t.Errorf("got %s %s, want tuesday 11:00", got.Day, got.Start)
	}

	if _, err := s.EditLesson(ctx, l.ID, lessonSpec("tuesday", "12:00")); !errors.Is(err, grid.ErrUnplaceable) {
		t.Errorf("got error %v, want %v", err, grid.ErrUnplaceable)
	}
	if _, err := s.EditLesson(ctx, 999, lessonSpec("tuesday", "08:00")); !errors.Is(err, timetable.ErrEntryNotFound) {
		t.Errorf("got error %v, want %v", err, timetable.ErrEntryNotFound)
	}

	if err := s.RemoveLesson(ctx, l.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RemoveLesson(ctx, l.ID); !errors.Is(err, timetable.ErrEntryNotFound) {
		t.Errorf("got error %v, want %v", err, timetable.ErrEntryNotFound)
	}
}

func TestAddEvaluation(t *testing.T) {
	// 2025-01-13 is a Monday, 2025-01-15 a Wednesday.
	tests := []struct {
		name    string
		spec    timetable.EvaluationSpec
		wantErr error
	}{
		{name: "fits", spec: evalSpec("2025-01-13", "08:00", 3)},
		{name: "overruns the day", spec: evalSpec("2025-01-13", "09:00", 3), wantErr: grid.ErrOverrunsDay},
		{name: "weekday off the grid", spec: evalSpec("2025-01-15", "08:00", 1), wantErr: grid.ErrUnknownDay},
		{name: "too long", spec: evalSpec("2025-01-13", "08:00", 5), wantErr: timetable.ErrDurationTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestScheduler(t)
			_, err := s.AddEvaluation(context.Background(), tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEditEvaluation(t *testing.T) {
	s, repo := newTestScheduler(t)
	ctx := context.Background()

	e, err := s.AddEvaluation(ctx, evalSpec("2025-01-13", "08:00", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.EditEvaluation(ctx, e.ID, evalSpec("2025-01-14", "09:00", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetEvaluation(ctx, e.ID)
	if got.Start != "09:00" || got.Duration != 2 || got.Date.Day() != 14 {
		t.Errorf("got %+v", got)
	}

	if err := s.RemoveEvaluation(ctx, e.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetEvaluation(ctx, e.ID); !errors.Is(err, timetable.ErrEntryNotFound) {
		t.Errorf("got error %v, want %v", err, timetable.ErrEntryNotFound)
	}
}

func TestImport_StopsAtFirstFailure(t *testing.T) {
	s, repo := newTestScheduler(t)
	ctx := context.Background()

	ok, _ := timetable.NewLesson(lessonSpec("monday", "08:00"))
	dup, _ := timetable.NewLesson(lessonSpec("monday", "08:00"))
	later, _ := timetable.NewLesson(lessonSpec("tuesday", "08:00"))

	n, err := s.Import(ctx, []*timetable.Lesson{ok, dup, later}, nil)
	if !errors.Is(err, timetable.ErrSlotConflict) {
		t.Fatalf("got error %v, want %v", err, timetable.ErrSlotConflict)
	}
	if n != 1 {
		t.Errorf("got %d imported, want 1", n)
	}
	lessons, _ := repo.ListLessons(ctx)
	if len(lessons) != 1 {
		t.Errorf("got %d stored lessons, want 1", len(lessons))
	}
}

func TestFreeSlots(t *testing.T) {
	cards := []catalog.Card{
		catalog.New(catalog.Data{}).Enrich(timetable.Lesson{ID: 1, Day: "monday", Start: "09:00"}),
	}
	g, _ := grid.Build(lessonAxis, cards)

	free, err := FreeSlots(g, "Monday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(free) != 2 || free[0].Start != "08:00" || free[1].Start != "11:00" {
		t.Errorf("got free slots %v, want 08:00 and 11:00", free)
	}

	if _, err := FreeSlots(g, "sunday"); !errors.Is(err, grid.ErrUnknownDay) {
		t.Errorf("got error %v, want %v", err, grid.ErrUnknownDay)
	}
}
