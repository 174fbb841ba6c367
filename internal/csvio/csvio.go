// Package csvio imports catalogs and entries from CSV and exports rendered grids.
package csvio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/timetable"
)

// ErrUnknownKind is returned for an unsupported import kind.
var ErrUnknownKind = errors.New("unknown import kind")

// Kind names a CSV file layout.
type Kind string

const (
	KindSubjects    Kind = "subjects"
	KindTeachers    Kind = "teachers"
	KindClasses     Kind = "classes"
	KindRooms       Kind = "rooms"
	KindStudents    Kind = "students"
	KindParents     Kind = "parents"
	KindLessons     Kind = "lessons"
	KindEvaluations Kind = "evaluations"
)

// CatalogKinds lists the kinds ReadCatalog accepts.
var CatalogKinds = []Kind{KindSubjects, KindTeachers, KindClasses, KindRooms, KindStudents, KindParents}

// ParentRow is the CSV layout of a parent. Children holds student IDs
// separated by ";".
type ParentRow struct {
	ID        int64  `csv:"id"`
	FirstName string `csv:"first_name"`
	LastName  string `csv:"last_name"`
	Children  string `csv:"children"`
}

// LessonRow is the CSV layout of a lesson.
type LessonRow struct {
	ClassID   int64  `csv:"class_id"`
	SubjectID int64  `csv:"subject_id"`
	TeacherID int64  `csv:"teacher_id"`
	Room      string `csv:"room"`
	Day       string `csv:"day"`
	Start     string `csv:"start"`
}

// EvaluationRow is the CSV layout of an evaluation.
type EvaluationRow struct {
	ClassID   int64  `csv:"class_id"`
	SubjectID int64  `csv:"subject_id"`
	TeacherID int64  `csv:"teacher_id"`
	Title     string `csv:"title"`
	Date      string `csv:"date"`
	Start     string `csv:"start"`
	Duration  int    `csv:"duration"`
}

// RowError locates a failing CSV line. Line 2 is the first data row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

func unmarshal[T any](r io.Reader) ([]T, error) {
	var rows []T
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return rows, nil
}

// ReadCatalog parses catalog records of the given kind into d.
// Every record is validated; the first invalid one aborts the read.
func ReadCatalog(kind Kind, r io.Reader, d *catalog.Data) error {
	switch kind {
	case KindSubjects:
		rows, err := unmarshal[catalog.Subject](r)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].Name = strings.TrimSpace(rows[i].Name)
			rows[i].Code = strings.TrimSpace(rows[i].Code)
			rows[i].Color = strings.TrimSpace(rows[i].Color)
		}
		if err := validateAll(rows); err != nil {
			return err
		}
		d.Subjects = append(d.Subjects, rows...)
		return nil
	case KindTeachers:
		rows, err := unmarshal[catalog.Teacher](r)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].FirstName = strings.TrimSpace(rows[i].FirstName)
			rows[i].LastName = strings.TrimSpace(rows[i].LastName)
			rows[i].Email = strings.TrimSpace(rows[i].Email)
		}
		if err := validateAll(rows); err != nil {
			return err
		}
		d.Teachers = append(d.Teachers, rows...)
		return nil
	case KindClasses:
		rows, err := unmarshal[catalog.Class](r)
		if err != nil {
			return err
		}
		if err := validateAll(rows); err != nil {
			return err
		}
		d.Classes = append(d.Classes, rows...)
		return nil
	case KindRooms:
		rows, err := unmarshal[catalog.Room](r)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].Code = strings.TrimSpace(rows[i].Code)
		}
		if err := validateAll(rows); err != nil {
			return err
		}
		d.Rooms = append(d.Rooms, rows...)
		return nil
	case KindStudents:
		rows, err := unmarshal[catalog.Student](r)
		if err != nil {
			return err
		}
		if err := validateAll(rows); err != nil {
			return err
		}
		d.Students = append(d.Students, rows...)
		return nil
	case KindParents:
		rows, err := unmarshal[ParentRow](r)
		if err != nil {
			return err
		}
		parents := make([]catalog.Parent, 0, len(rows))
		for i, row := range rows {
			children, err := parseIDs(row.Children)
			if err != nil {
				return &RowError{Line: i + 2, Err: err}
			}
			parents = append(parents, catalog.Parent{
				ID:        row.ID,
				FirstName: strings.TrimSpace(row.FirstName),
				LastName:  strings.TrimSpace(row.LastName),
				ChildIDs:  children,
			})
		}
		if err := validateAll(parents); err != nil {
			return err
		}
		d.Parents = append(d.Parents, parents...)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func validateAll[T any](records []T) error {
	for i, rec := range records {
		if err := catalog.Validate(rec); err != nil {
			return &RowError{Line: i + 2, Err: err}
		}
	}
	return nil
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid child id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SaveCatalog writes every record of d to store.
func SaveCatalog(ctx context.Context, store catalog.Store, d catalog.Data) (int, error) {
	n := 0
	for i := range d.Subjects {
		if err := store.SaveSubject(ctx, &d.Subjects[i]); err != nil {
			return n, err
		}
		n++
	}
	for i := range d.Teachers {
		if err := store.SaveTeacher(ctx, &d.Teachers[i]); err != nil {
			return n, err
		}
		n++
	}
	for i := range d.Classes {
		if err := store.SaveClass(ctx, &d.Classes[i]); err != nil {
			return n, err
		}
		n++
	}
	for i := range d.Rooms {
		if err := store.SaveRoom(ctx, &d.Rooms[i]); err != nil {
			return n, err
		}
		n++
	}
	for i := range d.Students {
		if err := store.SaveStudent(ctx, &d.Students[i]); err != nil {
			return n, err
		}
		n++
	}
	for i := range d.Parents {
		if err := store.SaveParent(ctx, &d.Parents[i]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ReadLessons parses and validates lessons.
func ReadLessons(r io.Reader) ([]*timetable.Lesson, error) {
	rows, err := unmarshal[LessonRow](r)
	if err != nil {
		return nil, err
	}
	lessons := make([]*timetable.Lesson, 0, len(rows))
	for i, row := range rows {
		l, err := timetable.NewLesson(timetable.LessonSpec{
			ClassID:   row.ClassID,
			SubjectID: row.SubjectID,
			TeacherID: row.TeacherID,
			Room:      row.Room,
			Day:       row.Day,
			Start:     strings.TrimSpace(row.Start),
		})
		if err != nil {
			return nil, &RowError{Line: i + 2, Err: err}
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}

// ReadEvaluations parses and validates evaluations.
func ReadEvaluations(r io.Reader) ([]*timetable.Evaluation, error) {
	rows, err := unmarshal[EvaluationRow](r)
	if err != nil {
		return nil, err
	}
	evals := make([]*timetable.Evaluation, 0, len(rows))
	for i, row := range rows {
		e, err := timetable.NewEvaluation(timetable.EvaluationSpec{
			ClassID:   row.ClassID,
			SubjectID: row.SubjectID,
			TeacherID: row.TeacherID,
			Title:     row.Title,
			Date:      strings.TrimSpace(row.Date),
			Start:     strings.TrimSpace(row.Start),
			Duration:  row.Duration,
		})
		if err != nil {
			return nil, &RowError{Line: i + 2, Err: err}
		}
		evals = append(evals, e)
	}
	return evals, nil
}
