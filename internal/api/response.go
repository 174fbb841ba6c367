package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/views"
)

const contextKeyRequestID = "request_id"

// Response is the envelope of every reply.
type Response struct {
	Data     any        `json:"data"`
	Error    *ErrorBody `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata carries request tracing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Error codes.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeForbidden   = "FORBIDDEN"
	CodeConflict    = "SLOT_CONFLICT"
	CodeUnplaceable = "UNPLACEABLE"
	CodeInternal    = "INTERNAL_ERROR"
)

func success(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Data: data, Metadata: metadata(c)})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Error:    &ErrorBody{Code: code, Message: message},
		Metadata: metadata(c),
	})
}

// failErr maps a domain error to a status and writes it.
func failErr(c *gin.Context, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		fail(c, status, code, "internal error")
		return
	}
	fail(c, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, timetable.ErrEntryNotFound),
		errors.Is(err, views.ErrStudentNotFound),
		errors.Is(err, views.ErrParentNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, views.ErrNotParentOf):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, timetable.ErrSlotConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, grid.ErrUnplaceable):
		return http.StatusUnprocessableEntity, CodeUnplaceable
	case isValidation(err):
		return http.StatusBadRequest, CodeValidation
	}
	return http.StatusInternalServerError, CodeInternal
}

var validationErrors = []error{
	timetable.ErrInvalidTimeFormat,
	timetable.ErrInvalidDuration,
	timetable.ErrDurationTooLong,
	timetable.ErrEndPastMidnight,
	timetable.ErrInvalidDay,
	timetable.ErrMissingReference,
	timetable.ErrTitleTooLong,
	timetable.ErrRoomTooLong,
	dateutil.ErrInvalidDateFormat,
}

func isValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func metadata(c *gin.Context) Metadata {
	id := c.GetString(contextKeyRequestID)
	if id == "" {
		id = uuid.New().String()
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// requestID tags every request with an X-Request-ID, reusing the caller's.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(contextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
