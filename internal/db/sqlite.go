// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/timetable"
)

// SQLite implements timetable.Repository and catalog.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const lessonColumns = `id, class_id, subject_id, teacher_id, room, day, start_time, created_at`

func scanLesson(r rowScanner) (*timetable.Lesson, error) {
	var (
		l         timetable.Lesson
		createdAt string
	)
	if err := r.Scan(&l.ID, &l.ClassID, &l.SubjectID, &l.TeacherID, &l.Room, &l.Day, &l.Start, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseDate(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	l.CreatedAt = t
	return &l, nil
}

// CreateLesson adds a new lesson.
// Returns ErrSlotConflict if the class, teacher or room already has a lesson in that cell.
func (s *SQLite) CreateLesson(ctx context.Context, l *timetable.Lesson) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkLessonConflictTx(ctx, tx, l); err != nil {
		return err
	}

	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO lessons (class_id, subject_id, teacher_id, room, day, start_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		l.ClassID,
		l.SubjectID,
		l.TeacherID,
		l.Room,
		l.DayName(),
		l.Start,
		l.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	l.ID = id
	return nil
}

// UpdateLesson replaces a lesson's fields, with the same conflict rules as CreateLesson.
func (s *SQLite) UpdateLesson(ctx context.Context, l *timetable.Lesson) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkLessonConflictTx(ctx, tx, l); err != nil {
		return err
	}

	query := `
		UPDATE lessons
		SET class_id = ?, subject_id = ?, teacher_id = ?, room = ?, day = ?, start_time = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query, l.ClassID, l.SubjectID, l.TeacherID, l.Room, l.DayName(), l.Start, l.ID)
	if err != nil {
		return fmt.Errorf("updating lesson: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("lesson %d: %w", l.ID, timetable.ErrEntryNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteLesson removes a lesson.
func (s *SQLite) DeleteLesson(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lesson: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("lesson %d: %w", id, timetable.ErrEntryNotFound)
	}
	return nil
}

// GetLesson retrieves a lesson by ID.
func (s *SQLite) GetLesson(ctx context.Context, id int64) (*timetable.Lesson, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = ?`, id)
	l, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson %d: %w", id, timetable.ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying lesson: %w", err)
	}
	return l, nil
}

// ListLessons returns every lesson in creation order.
func (s *SQLite) ListLessons(ctx context.Context) ([]*timetable.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+lessonColumns+` FROM lessons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lessons []*timetable.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lessons: %w", err)
	}
	return lessons, nil
}

// checkLessonConflictTx returns ErrSlotConflict if another lesson in the same
// cell shares the class, the teacher or the room of l.
func checkLessonConflictTx(ctx context.Context, tx *sql.Tx, l *timetable.Lesson) error {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE day = ? AND start_time = ? AND id <> ?`
	rows, err := tx.QueryContext(ctx, query, l.DayName(), l.Start, l.ID)
	if err != nil {
		return fmt.Errorf("checking conflicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		other, err := scanLesson(rows)
		if err != nil {
			return fmt.Errorf("scanning lesson: %w", err)
		}
		if l.ConflictsWith(*other) {
			return fmt.Errorf("%w: lesson #%d (class %d, teacher %d, room %q) on %s %s",
				timetable.ErrSlotConflict, other.ID, other.ClassID, other.TeacherID, other.Room, other.Day, other.Start)
		}
	}
	return rows.Err()
}

const evaluationColumns = `id, class_id, subject_id, teacher_id, title, eval_date, start_time, duration, created_at`

func scanEvaluation(r rowScanner) (*timetable.Evaluation, error) {
	var (
		e         timetable.Evaluation
		evalDate  string
		createdAt string
	)
	if err := r.Scan(&e.ID, &e.ClassID, &e.SubjectID, &e.TeacherID, &e.Title, &evalDate, &e.Start, &e.Duration, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if e.Date, err = parseDate(evalDate); err != nil {
		return nil, fmt.Errorf("parsing evaluation date: %w", err)
	}
	if e.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &e, nil
}

// CreateEvaluation adds a new evaluation.
// Returns ErrSlotConflict if the class or teacher already has an overlapping evaluation.
func (s *SQLite) CreateEvaluation(ctx context.Context, e *timetable.Evaluation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkEvaluationConflictTx(ctx, tx, e); err != nil {
		return err
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO evaluations (class_id, subject_id, teacher_id, title, eval_date, start_time, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		e.ClassID,
		e.SubjectID,
		e.TeacherID,
		e.Title,
		dateutil.FormatDate(e.Date),
		e.Start,
		e.Duration,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting evaluation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	e.ID = id
	return nil
}

// UpdateEvaluation replaces an evaluation's fields, with the same conflict rules as CreateEvaluation.
func (s *SQLite) UpdateEvaluation(ctx context.Context, e *timetable.Evaluation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkEvaluationConflictTx(ctx, tx, e); err != nil {
		return err
	}

	query := `
		UPDATE evaluations
		SET class_id = ?, subject_id = ?, teacher_id = ?, title = ?, eval_date = ?, start_time = ?, duration = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		e.ClassID, e.SubjectID, e.TeacherID, e.Title, dateutil.FormatDate(e.Date), e.Start, e.Duration, e.ID)
	if err != nil {
		return fmt.Errorf("updating evaluation: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("evaluation %d: %w", e.ID, timetable.ErrEntryNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteEvaluation removes an evaluation.
func (s *SQLite) DeleteEvaluation(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting evaluation: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("evaluation %d: %w", id, timetable.ErrEntryNotFound)
	}
	return nil
}

// GetEvaluation retrieves an evaluation by ID.
func (s *SQLite) GetEvaluation(ctx context.Context, id int64) (*timetable.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+evaluationColumns+` FROM evaluations WHERE id = ?`, id)
	e, err := scanEvaluation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("evaluation %d: %w", id, timetable.ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying evaluation: %w", err)
	}
	return e, nil
}

// ListEvaluationsByDateRange returns evaluations within the date range (inclusive),
// ordered by date, then start time, then creation.
func (s *SQLite) ListEvaluationsByDateRange(ctx context.Context, start, end time.Time) ([]*timetable.Evaluation, error) {
	query := `
		SELECT ` + evaluationColumns + `
		FROM evaluations
		WHERE eval_date >= ? AND eval_date <= ?
		ORDER BY eval_date, start_time, id
	`
	rows, err := s.db.QueryContext(ctx, query, dateutil.FormatDate(start), dateutil.FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var evals []*timetable.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning evaluation: %w", err)
		}
		evals = append(evals, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evaluations: %w", err)
	}
	return evals, nil
}

// checkEvaluationConflictTx returns ErrSlotConflict if e overlaps another
// evaluation of the same class or teacher on the same date.
func checkEvaluationConflictTx(ctx context.Context, tx *sql.Tx, e *timetable.Evaluation) error {
	query := `
		SELECT ` + evaluationColumns + `
		FROM evaluations
		WHERE eval_date = ?
		  AND (class_id = ? OR teacher_id = ?)
		  AND id <> ?
	`
	rows, err := tx.QueryContext(ctx, query, dateutil.FormatDate(e.Date), e.ClassID, e.TeacherID, e.ID)
	if err != nil {
		return fmt.Errorf("checking conflicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		other, err := scanEvaluation(rows)
		if err != nil {
			return fmt.Errorf("scanning evaluation: %w", err)
		}
		if e.ConflictsWith(*other) {
			return fmt.Errorf("%w: evaluation #%d %q (%s-%s)",
				timetable.ErrSlotConflict, other.ID, other.Title, other.Start, other.End())
		}
	}
	return rows.Err()
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateutil.DateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; treat as local midnight
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' && s[11:19] == "00:00:00" {
		if t, err := time.ParseInLocation(dateutil.DateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
