// Package scheduler adds, edits and removes timetable entries, refusing the
// ones the configured grids cannot place.
package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/timetable"
)

// Scheduler validates entries against the grid axes before storing them.
type Scheduler struct {
	repo        timetable.Repository
	lessons     grid.Axis
	evaluations grid.Axis
	log         zerolog.Logger
}

// New creates a Scheduler. Lessons are checked against lessons, evaluations
// against evaluations.
func New(repo timetable.Repository, lessons, evaluations grid.Axis, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		repo:        repo,
		lessons:     lessons,
		evaluations: evaluations,
		log:         log,
	}
}

// Axis returns the axis entries of kind k are placed on.
func (s *Scheduler) Axis(k timetable.Kind) grid.Axis {
	if k == timetable.KindEvaluation {
		return s.evaluations
	}
	return s.lessons
}

// CanPlace reports why e cannot be placed on its axis, or nil.
func (s *Scheduler) CanPlace(e timetable.Entry) error {
	_, err := grid.Place(e, s.Axis(e.Kind()))
	return err
}

// AddLesson validates spec, checks placement and stores the lesson.
func (s *Scheduler) AddLesson(ctx context.Context, spec timetable.LessonSpec) (*timetable.Lesson, error) {
	l, err := timetable.NewLesson(spec)
	if err != nil {
		return nil, err
	}
	if err := s.CanPlace(l); err != nil {
		return nil, err
	}
	if err := s.repo.CreateLesson(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", l.ID).Str("day", l.Day).Str("start", l.Start).Msg("lesson added")
	return l, nil
}

// EditLesson replaces lesson id with spec.
func (s *Scheduler) EditLesson(ctx context.Context, id int64, spec timetable.LessonSpec) (*timetable.Lesson, error) {
	old, err := s.repo.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	l, err := timetable.NewLesson(spec)
	if err != nil {
		return nil, err
	}
	l.ID, l.CreatedAt = old.ID, old.CreatedAt
	if err := s.CanPlace(l); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLesson(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", l.ID).Msg("lesson updated")
	return l, nil
}

// RemoveLesson deletes lesson id.
func (s *Scheduler) RemoveLesson(ctx context.Context, id int64) error {
	if err := s.repo.DeleteLesson(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("id", id).Msg("lesson removed")
	return nil
}

// AddEvaluation validates spec, checks placement and stores the evaluation.
func (s *Scheduler) AddEvaluation(ctx context.Context, spec timetable.EvaluationSpec) (*timetable.Evaluation, error) {
	e, err := timetable.NewEvaluation(spec)
	if err != nil {
		return nil, err
	}
	if err := s.CanPlace(e); err != nil {
		return nil, err
	}
	if err := s.repo.CreateEvaluation(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", e.ID).Time("date", e.Date).Str("start", e.Start).Int("hours", e.Duration).Msg("evaluation added")
	return e, nil
}

// EditEvaluation replaces evaluation id with spec.
func (s *Scheduler) EditEvaluation(ctx context.Context, id int64, spec timetable.EvaluationSpec) (*timetable.Evaluation, error) {
	old, err := s.repo.GetEvaluation(ctx, id)
	if err != nil {
		return nil, err
	}
	e, err := timetable.NewEvaluation(spec)
	if err != nil {
		return nil, err
	}
	e.ID, e.CreatedAt = old.ID, old.CreatedAt
	if err := s.CanPlace(e); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEvaluation(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", e.ID).Msg("evaluation updated")
	return e, nil
}

// RemoveEvaluation deletes evaluation id.
func (s *Scheduler) RemoveEvaluation(ctx context.Context, id int64) error {
	if err := s.repo.DeleteEvaluation(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("id", id).Msg("evaluation removed")
	return nil
}

// FreeSlots lists the empty slots of day in g.
func FreeSlots(g *grid.Grid, day string) ([]grid.Slot, error) {
	a := g.Axis()
	d, ok := a.DayIndex(day)
	if !ok {
		return nil, fmt.Errorf("%w: %q", grid.ErrUnknownDay, day)
	}
	var free []grid.Slot
	for i := 0; i < a.NumSlots(); i++ {
		if g.At(d, i).Kind == grid.CellEmpty {
			free = append(free, a.Slot(i))
		}
	}
	return free, nil
}

// Import stores lessons then evaluations in order. The first entry that
// fails stops the import; it returns how many were stored.
func (s *Scheduler) Import(ctx context.Context, lessons []*timetable.Lesson, evals []*timetable.Evaluation) (int, error) {
	n := 0
	for _, l := range lessons {
		if err := s.CanPlace(l); err != nil {
			return n, fmt.Errorf("lesson on %s at %s: %w", l.Day, l.Start, err)
		}
		if err := s.repo.CreateLesson(ctx, l); err != nil {
			return n, fmt.Errorf("lesson on %s at %s: %w", l.Day, l.Start, err)
		}
		n++
	}
	for _, e := range evals {
		if err := s.CanPlace(e); err != nil {
			return n, fmt.Errorf("evaluation on %s at %s: %w", e.Date.Format("2006-01-02"), e.Start, err)
		}
		if err := s.repo.CreateEvaluation(ctx, e); err != nil {
			return n, fmt.Errorf("evaluation on %s at %s: %w", e.Date.Format("2006-01-02"), e.Start, err)
		}
		n++
	}
	s.log.Info().Int("count", n).Msg("entries imported")
	return n, nil
}
