package timetable

import (
	"context"
	"time"
)

// Repository defines the storage interface for timetable entries.
type Repository interface {
	// CreateLesson adds a lesson.
	// Returns ErrSlotConflict if the class, teacher or room is already busy.
	CreateLesson(ctx context.Context, l *Lesson) error

	// UpdateLesson replaces a lesson in place, with the same conflict rules.
	UpdateLesson(ctx context.Context, l *Lesson) error

	// DeleteLesson removes a lesson by ID.
	DeleteLesson(ctx context.Context, id int64) error

	// GetLesson retrieves a lesson by ID.
	GetLesson(ctx context.Context, id int64) (*Lesson, error)

	// ListLessons returns every lesson in creation order.
	ListLessons(ctx context.Context) ([]*Lesson, error)

	// CreateEvaluation adds an evaluation.
	// Returns ErrSlotConflict if the class or teacher is already evaluated at that time.
	CreateEvaluation(ctx context.Context, e *Evaluation) error

	// UpdateEvaluation replaces an evaluation in place, with the same conflict rules.
	UpdateEvaluation(ctx context.Context, e *Evaluation) error

	// DeleteEvaluation removes an evaluation by ID.
	DeleteEvaluation(ctx context.Context, id int64) error

	// GetEvaluation retrieves an evaluation by ID.
	GetEvaluation(ctx context.Context, id int64) (*Evaluation, error)

	// ListEvaluationsByDateRange returns evaluations within the date range (inclusive).
	ListEvaluationsByDateRange(ctx context.Context, start, end time.Time) ([]*Evaluation, error)

	// Close releases any resources held by the repository.
	Close() error
}
