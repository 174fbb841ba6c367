package timetable

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/javiermolinar/horario/internal/dateutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return ValidTime(fl.Field().String())
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return dateutil.IsWeekday(fl.Field().String())
	})
	return v
}

// LessonSpec is the user input for a recurring lesson.
type LessonSpec struct {
	ClassID   int64  `validate:"gt=0"`
	SubjectID int64  `validate:"gt=0"`
	TeacherID int64  `validate:"gt=0"`
	Room      string `validate:"max=32"`
	Day       string `validate:"required,weekday"`
	Start     string `validate:"required,hhmm"`
}

// NewLesson validates spec and builds a Lesson.
func NewLesson(spec LessonSpec) (*Lesson, error) {
	spec.Day = strings.ToLower(strings.TrimSpace(spec.Day))
	spec.Room = strings.TrimSpace(spec.Room)
	if err := validate.Struct(spec); err != nil {
		return nil, specError(err)
	}
	return &Lesson{
		ClassID:   spec.ClassID,
		SubjectID: spec.SubjectID,
		TeacherID: spec.TeacherID,
		Room:      spec.Room,
		Day:       spec.Day,
		Start:     spec.Start,
		CreatedAt: time.Now(),
	}, nil
}

// EvaluationSpec is the user input for a dated evaluation.
// Date must be in YYYY-MM-DD format.
type EvaluationSpec struct {
	ClassID   int64  `validate:"gt=0"`
	SubjectID int64  `validate:"gt=0"`
	TeacherID int64  `validate:"gt=0"`
	Title     string `validate:"max=120"`
	Date      string `validate:"required"`
	Start     string `validate:"required,hhmm"`
	Duration  int    `validate:"min=1,max=4"`
}

// NewEvaluation validates spec and builds an Evaluation.
func NewEvaluation(spec EvaluationSpec) (*Evaluation, error) {
	spec.Title = strings.TrimSpace(spec.Title)
	if err := validate.Struct(spec); err != nil {
		return nil, specError(err)
	}
	date, err := dateutil.ParseDate(spec.Date)
	if err != nil {
		return nil, err
	}
	if _, err := EndTime(spec.Start, spec.Duration); err != nil {
		return nil, err
	}
	return &Evaluation{
		ClassID:   spec.ClassID,
		SubjectID: spec.SubjectID,
		TeacherID: spec.TeacherID,
		Title:     spec.Title,
		Date:      date,
		Start:     spec.Start,
		Duration:  spec.Duration,
		CreatedAt: time.Now(),
	}, nil
}

// specError maps the first validator failure to a package error.
func specError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	switch fe.Field() {
	case "ClassID", "SubjectID", "TeacherID":
		return ErrMissingReference
	case "Day":
		return ErrInvalidDay
	case "Start":
		return fmt.Errorf("start time: %w", ErrInvalidTimeFormat)
	case "Date":
		return dateutil.ErrInvalidDateFormat
	case "Duration":
		if fe.Tag() == "max" {
			return ErrDurationTooLong
		}
		return ErrInvalidDuration
	case "Title":
		return ErrTitleTooLong
	case "Room":
		return ErrRoomTooLong
	}
	return fmt.Errorf("invalid %s: failed %q", fe.Field(), fe.Tag())
}
