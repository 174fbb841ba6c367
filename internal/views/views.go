// Package views builds the five timetable screens from a read-only snapshot.
package views

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/timetable"
)

// Lookup errors.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrParentNotFound  = errors.New("parent not found")
	ErrNotParentOf     = errors.New("student is not a child of this parent")
)

// Snapshot is the input of one render: entries and catalogs are read only.
type Snapshot struct {
	Lessons     []timetable.Lesson
	Evaluations []timetable.Evaluation
	Catalogs    *catalog.Catalogs
}

// View is a rendered screen.
type View struct {
	Title  string
	Grid   *grid.Grid
	Report grid.Report
}

// ClassTimetable is the admin timetable of one class.
func ClassTimetable(s Snapshot, a grid.Axis, classID int64) View {
	lessons := filterLessons(s.Lessons, func(l timetable.Lesson) bool { return l.ClassID == classID })
	return build(s, a, "Timetable of "+className(s.Catalogs, classID), lessons)
}

// TeacherTimetable lists the lessons taught by one teacher.
func TeacherTimetable(s Snapshot, a grid.Axis, teacherID int64) View {
	name := catalog.UnassignedTeacher
	if t, ok := s.Catalogs.Teacher(teacherID); ok && t.FullName() != "" {
		name = t.FullName()
	}
	lessons := filterLessons(s.Lessons, func(l timetable.Lesson) bool { return l.TeacherID == teacherID })
	return build(s, a, "Timetable of "+name, lessons)
}

// StudentTimetable is the timetable of the student's class.
func StudentTimetable(s Snapshot, a grid.Axis, studentID int64) (View, error) {
	st, ok := s.Catalogs.Student(studentID)
	if !ok {
		return View{}, fmt.Errorf("%w: %d", ErrStudentNotFound, studentID)
	}
	v := ClassTimetable(s, a, st.ClassID)
	v.Title = "Timetable of " + st.FullName()
	return v, nil
}

// ParentTimetable is the timetable of one of the parent's children.
func ParentTimetable(s Snapshot, a grid.Axis, parentID, childID int64) (View, error) {
	p, ok := s.Catalogs.Parent(parentID)
	if !ok {
		return View{}, fmt.Errorf("%w: %d", ErrParentNotFound, parentID)
	}
	if !p.HasChild(childID) {
		return View{}, fmt.Errorf("%w: %d", ErrNotParentOf, childID)
	}
	return StudentTimetable(s, a, childID)
}

// EvaluationPlanner lays out the evaluations of the ISO week containing
// week. classID 0 keeps every class.
func EvaluationPlanner(s Snapshot, a grid.Axis, week time.Time, classID int64) View {
	monday, sunday := dateutil.WeekRange(week)
	r := dateutil.DateRange{Start: monday, End: sunday}

	var evals []timetable.Evaluation
	for _, e := range s.Evaluations {
		if !r.Contains(e.Date) {
			continue
		}
		if classID != 0 && e.ClassID != classID {
			continue
		}
		evals = append(evals, e)
	}

	title := "Evaluations, week of " + dateutil.FormatDate(monday)
	if classID != 0 {
		title += ", " + className(s.Catalogs, classID)
	}
	return build(s, a, title, evals)
}

// className falls back like catalog.Catalogs.Enrich does.
func className(c *catalog.Catalogs, id int64) string {
	if cl, ok := c.Class(id); ok && cl.Name != "" {
		return cl.Name
	}
	return catalog.UnknownClass
}

func build[E timetable.Entry](s Snapshot, a grid.Axis, title string, entries []E) View {
	g, report := grid.Build(a, catalog.EnrichAll(s.Catalogs, entries))
	return View{Title: title, Grid: g, Report: report}
}

func filterLessons(lessons []timetable.Lesson, keep func(timetable.Lesson) bool) []timetable.Lesson {
	var out []timetable.Lesson
	for _, l := range lessons {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Source provides the data a Snapshot is built from.
type Source interface {
	ListLessons(ctx context.Context) ([]*timetable.Lesson, error)
	ListEvaluationsByDateRange(ctx context.Context, start, end time.Time) ([]*timetable.Evaluation, error)
	LoadCatalogs(ctx context.Context) (*catalog.Catalogs, error)
}

// LoadSnapshot reads every lesson, the evaluations between from and to,
// and the catalogs.
func LoadSnapshot(ctx context.Context, src Source, from, to time.Time) (Snapshot, error) {
	lessons, err := src.ListLessons(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing lessons: %w", err)
	}
	evals, err := src.ListEvaluationsByDateRange(ctx, from, to)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing evaluations: %w", err)
	}
	cats, err := src.LoadCatalogs(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading catalogs: %w", err)
	}

	s := Snapshot{Catalogs: cats}
	for _, l := range lessons {
		s.Lessons = append(s.Lessons, *l)
	}
	for _, e := range evals {
		s.Evaluations = append(s.Evaluations, *e)
	}
	return s, nil
}
