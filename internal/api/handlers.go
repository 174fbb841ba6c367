package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/views"
)

// LessonRequest is the body of lesson create and update calls.
type LessonRequest struct {
	ClassID   int64  `json:"class_id" binding:"required,gt=0"`
	SubjectID int64  `json:"subject_id" binding:"required,gt=0"`
	TeacherID int64  `json:"teacher_id" binding:"required,gt=0"`
	Room      string `json:"room" binding:"max=32"`
	Day       string `json:"day" binding:"required"`
	Start     string `json:"start" binding:"required"`
}

func (r LessonRequest) spec() timetable.LessonSpec {
	return timetable.LessonSpec{
		ClassID:   r.ClassID,
		SubjectID: r.SubjectID,
		TeacherID: r.TeacherID,
		Room:      r.Room,
		Day:       r.Day,
		Start:     r.Start,
	}
}

// EvaluationRequest is the body of evaluation create and update calls.
type EvaluationRequest struct {
	ClassID   int64  `json:"class_id" binding:"required,gt=0"`
	SubjectID int64  `json:"subject_id" binding:"required,gt=0"`
	TeacherID int64  `json:"teacher_id" binding:"required,gt=0"`
	Title     string `json:"title" binding:"max=120"`
	Date      string `json:"date" binding:"required"`
	Start     string `json:"start" binding:"required"`
	Duration  int    `json:"duration" binding:"required"`
}

func (r EvaluationRequest) spec() timetable.EvaluationSpec {
	return timetable.EvaluationSpec{
		ClassID:   r.ClassID,
		SubjectID: r.SubjectID,
		TeacherID: r.TeacherID,
		Title:     r.Title,
		Date:      r.Date,
		Start:     r.Start,
		Duration:  r.Duration,
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, CodeValidation, "invalid "+name)
		return 0, false
	}
	return id, true
}

// snapshot loads lessons, the evaluations of the current week and the catalogs.
func (s *Server) snapshot(c *gin.Context) (views.Snapshot, bool) {
	monday, sunday := dateutil.WeekRange(s.now())
	snap, err := views.LoadSnapshot(c.Request.Context(), s.src, monday, sunday)
	if err != nil {
		failErr(c, err)
		return views.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) render(c *gin.Context, v views.View) {
	if !v.Report.Empty() {
		s.log.Warn().
			Str("view", v.Title).
			Int("unplaceable", len(v.Report.Unplaceable)).
			Int("collisions", len(v.Report.Collisions)).
			Msg("entries left off the grid")
	}
	success(c, http.StatusOK, newViewResponse(v))
}

func (s *Server) lessonAxis() grid.Axis {
	return s.sched.Axis(timetable.KindLesson)
}

func (s *Server) getCatalogs(c *gin.Context) {
	cats, err := s.src.LoadCatalogs(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, http.StatusOK, cats.Data())
}

func (s *Server) getClassTimetable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	s.render(c, views.ClassTimetable(snap, s.lessonAxis(), id))
}

func (s *Server) getTeacherTimetable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	s.render(c, views.TeacherTimetable(snap, s.lessonAxis(), id))
}

func (s *Server) getStudentTimetable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	v, err := views.StudentTimetable(snap, s.lessonAxis(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	s.render(c, v)
}

func (s *Server) getParentTimetable(c *gin.Context) {
	parentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	childID, ok := paramID(c, "child")
	if !ok {
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	v, err := views.ParentTimetable(snap, s.lessonAxis(), parentID, childID)
	if err != nil {
		failErr(c, err)
		return
	}
	s.render(c, v)
}

// getEvaluationPlanner serves GET /api/evaluations?week=&class=.
func (s *Server) getEvaluationPlanner(c *gin.Context) {
	week, err := dateutil.ParseWeek(c.Query("week"), s.now())
	if err != nil {
		failErr(c, err)
		return
	}
	var classID int64
	if q := c.Query("class"); q != "" {
		classID, err = strconv.ParseInt(q, 10, 64)
		if err != nil || classID < 0 {
			fail(c, http.StatusBadRequest, CodeValidation, "invalid class")
			return
		}
	}

	monday, sunday := dateutil.WeekRange(week)
	snap, err := views.LoadSnapshot(c.Request.Context(), s.src, monday, sunday)
	if err != nil {
		failErr(c, err)
		return
	}
	s.render(c, views.EvaluationPlanner(snap, s.sched.Axis(timetable.KindEvaluation), week, classID))
}

func (s *Server) createLesson(c *gin.Context) {
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	l, err := s.sched.AddLesson(c.Request.Context(), req.spec())
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, http.StatusCreated, l)
}

func (s *Server) updateLesson(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	l, err := s.sched.EditLesson(c.Request.Context(), id, req.spec())
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, http.StatusOK, l)
}

func (s *Server) deleteLesson(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := s.sched.RemoveLesson(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createEvaluation(c *gin.Context) {
	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	e, err := s.sched.AddEvaluation(c.Request.Context(), req.spec())
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, http.StatusCreated, e)
}

func (s *Server) updateEvaluation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	e, err := s.sched.EditEvaluation(c.Request.Context(), id, req.spec())
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, http.StatusOK, e)
}

func (s *Server) deleteEvaluation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := s.sched.RemoveEvaluation(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
