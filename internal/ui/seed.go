package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/csvio"
	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/timetable"
)

// errNotEmpty is returned when seeding a database that already has lessons.
var errNotEmpty = errors.New("database already has lessons")

func (a *App) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty database with a demo school",
		Long: `Fill an empty database with a demo school: two classes, their
subjects, teachers, rooms, students and parents, a week of lessons
and three evaluations in the current week.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			n, err := a.seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %d records\n", formatOK("Seeded"), n)
			return nil
		},
	}
}

func demoCatalogs() catalog.Data {
	return catalog.Data{
		Subjects: []catalog.Subject{
			{ID: 1, Name: "Mathematics", Code: "MAT", Color: "#89b4fa"},
			{ID: 2, Name: "Physics", Code: "PHY", Color: "#f38ba8"},
			{ID: 3, Name: "Literature", Code: "LIT", Color: "#a6e3a1"},
			{ID: 4, Name: "History", Code: "HIS", Color: "#fab387"},
			{ID: 5, Name: "English", Code: "ENG", Color: "#cba6f7"},
		},
		Teachers: []catalog.Teacher{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@school.example"},
			{ID: 2, FirstName: "Marie", LastName: "Curie", Email: "marie@school.example"},
			{ID: 3, FirstName: "Rosalía", LastName: "de Castro", Email: "rosalia@school.example"},
			{ID: 4, FirstName: "Mary", LastName: "Beard", Email: "mary@school.example"},
		},
		Classes: []catalog.Class{
			{ID: 1, Name: "1A", Level: "first"},
			{ID: 2, Name: "1B", Level: "first"},
		},
		Rooms: []catalog.Room{
			{Code: "A1", Name: "Room A1", Capacity: 30},
			{Code: "A2", Name: "Room A2", Capacity: 30},
			{Code: "LAB", Name: "Laboratory", Capacity: 20},
		},
		Students: []catalog.Student{
			{ID: 1, FirstName: "Lin", LastName: "Ma", ClassID: 1},
			{ID: 2, FirstName: "Noa", LastName: "Ruiz", ClassID: 1},
			{ID: 3, FirstName: "Iker", LastName: "Ruiz", ClassID: 2},
		},
		Parents: []catalog.Parent{
			{ID: 1, FirstName: "Wei", LastName: "Ma", ChildIDs: []int64{1}},
			{ID: 2, FirstName: "Eva", LastName: "Ruiz", ChildIDs: []int64{2, 3}},
		},
	}
}

func demoLessons() []timetable.LessonSpec {
	return []timetable.LessonSpec{
		{ClassID: 1, SubjectID: 1, TeacherID: 1, Room: "A1", Day: "monday", Start: "08:00"},
		{ClassID: 1, SubjectID: 2, TeacherID: 2, Room: "LAB", Day: "monday", Start: "09:00"},
		{ClassID: 1, SubjectID: 3, TeacherID: 3, Room: "A1", Day: "tuesday", Start: "10:00"},
		{ClassID: 1, SubjectID: 4, TeacherID: 4, Room: "A1", Day: "wednesday", Start: "08:00"},
		{ClassID: 1, SubjectID: 5, TeacherID: 3, Room: "A1", Day: "thursday", Start: "14:00"},
		{ClassID: 1, SubjectID: 1, TeacherID: 1, Room: "A1", Day: "friday", Start: "11:00"},
		{ClassID: 2, SubjectID: 1, TeacherID: 1, Room: "A2", Day: "monday", Start: "09:00"},
		{ClassID: 2, SubjectID: 2, TeacherID: 2, Room: "LAB", Day: "tuesday", Start: "08:00"},
		{ClassID: 2, SubjectID: 3, TeacherID: 3, Room: "A2", Day: "wednesday", Start: "09:00"},
		{ClassID: 2, SubjectID: 4, TeacherID: 4, Day: "thursday", Start: "15:00"},
		{ClassID: 2, SubjectID: 5, TeacherID: 3, Room: "A2", Day: "friday", Start: "08:00"},
	}
}

// demoEvaluations places evaluations on days of the current week, given
// as offsets from its Monday.
func (a *App) demoEvaluations() []timetable.EvaluationSpec {
	monday, _ := dateutil.WeekRange(a.now())
	day := func(offset int) string {
		return dateutil.FormatDate(monday.AddDate(0, 0, offset))
	}
	return []timetable.EvaluationSpec{
		{ClassID: 1, SubjectID: 1, TeacherID: 1, Title: "Algebra midterm", Date: day(1), Start: "08:00", Duration: 2},
		{ClassID: 2, SubjectID: 2, TeacherID: 2, Title: "Optics lab", Date: day(2), Start: "10:00", Duration: 3},
		{ClassID: 1, SubjectID: 5, TeacherID: 3, Date: day(4), Start: "12:00", Duration: 1},
	}
}

// seed writes the demo school and returns how many records it wrote.
func (a *App) seed(ctx context.Context) (int, error) {
	existing, err := a.repo.ListLessons(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, errNotEmpty
	}

	n, err := csvio.SaveCatalog(ctx, a.repo, demoCatalogs())
	if err != nil {
		return n, fmt.Errorf("saving catalogs: %w", err)
	}

	sched := a.scheduler()
	for _, spec := range demoLessons() {
		if _, err := sched.AddLesson(ctx, spec); err != nil {
			return n, fmt.Errorf("adding lesson %s %s: %w", spec.Day, spec.Start, err)
		}
		n++
	}
	for _, spec := range a.demoEvaluations() {
		if _, err := sched.AddEvaluation(ctx, spec); err != nil {
			return n, fmt.Errorf("adding evaluation %s %s: %w", spec.Date, spec.Start, err)
		}
		n++
	}
	return n, nil
}
