// Package api serves the timetable views and entry editing over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/horario/internal/scheduler"
	"github.com/javiermolinar/horario/internal/views"
)

// Options configures the HTTP server.
type Options struct {
	AllowOrigins []string
	Now          func() time.Time
}

// Server routes requests to the views and the scheduler.
type Server struct {
	src    views.Source
	sched  *scheduler.Scheduler
	log    zerolog.Logger
	now    func() time.Time
	engine *gin.Engine
}

// New builds the router.
func New(src views.Source, sched *scheduler.Scheduler, opts Options, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{src: src, sched: sched, log: log, now: opts.Now}
	if s.now == nil {
		s.now = time.Now
	}

	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.Use(requestID())
	r.Use(s.accessLog())

	r.GET("/health", func(c *gin.Context) {
		success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/catalogs", s.getCatalogs)

		tt := api.Group("/timetables")
		tt.GET("/class/:id", s.getClassTimetable)
		tt.GET("/teacher/:id", s.getTeacherTimetable)
		tt.GET("/student/:id", s.getStudentTimetable)
		tt.GET("/parent/:id/child/:child", s.getParentTimetable)

		api.GET("/evaluations", s.getEvaluationPlanner)

		api.POST("/lessons", s.createLesson)
		api.PUT("/lessons/:id", s.updateLesson)
		api.DELETE("/lessons/:id", s.deleteLesson)

		api.POST("/evaluations", s.createEvaluation)
		api.PUT("/evaluations/:id", s.updateEvaluation)
		api.DELETE("/evaluations/:id", s.deleteEvaluation)
	}

	s.engine = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := s.log.Info()
		switch {
		case status >= 500:
			ev = s.log.Error()
			if last := c.Errors.Last(); last != nil {
				ev = ev.Err(last.Err)
			}
		case status >= 400:
			ev = s.log.Warn()
		}
		ev.Str("request_id", c.GetString(contextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
