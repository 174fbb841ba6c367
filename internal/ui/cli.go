// Package ui implements the horario command line.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/config"
	"github.com/javiermolinar/horario/internal/db"
	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/logger"
	"github.com/javiermolinar/horario/internal/scheduler"
	"github.com/javiermolinar/horario/internal/tui"
	"github.com/javiermolinar/horario/internal/tui/theme"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   *db.SQLite
	config *config.Config
	log    zerolog.Logger
	root   *cobra.Command
	out    io.Writer
	now    func() time.Time
	debug  bool // Enable debug logging
	color  string
}

// NewApp creates a new CLI application. A nil repo is opened from the
// configured path on first use.
func NewApp(repo *db.SQLite, cfg *config.Config) *App {
	a := &App{
		repo:   repo,
		config: cfg,
		log:    logger.Nop(),
		out:    os.Stdout,
		now:    time.Now,
	}

	a.root = &cobra.Command{
		Use:   "horario",
		Short: "School timetables in the terminal",
		Long: `Horario keeps the weekly lessons and the dated evaluations of a school.

It renders class, teacher, student and parent timetables, plans
evaluations week by week, imports catalogs from CSV and serves
everything over a small HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setColorMode(a.color); err != nil {
				return err
			}
			a.setupLogger(cmd == a.root)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context(), tui.ScreenClass)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().StringVar(&a.color, "color", colorAuto, "Colored output: auto, always or never")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.timetableCmd())
	a.root.AddCommand(a.evaluationsCmd())
	a.root.AddCommand(a.lessonCmd())
	a.root.AddCommand(a.evalCmd())
	a.root.AddCommand(a.catalogCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.seedCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "horario %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setupLogger writes logs to stderr, or to a temp file while the TUI
// owns the terminal.
func (a *App) setupLogger(tuiMode bool) {
	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	if !tuiMode {
		a.log = logger.Setup(level, a.config.Log.Format, os.Stderr)
		return
	}
	if !a.debug {
		a.log = logger.Nop()
		return
	}
	f, err := os.OpenFile(filepath.Join(os.TempDir(), "horario-debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		a.log = logger.Nop()
		return
	}
	a.log = logger.Setup(level, "json", f)
}

// ensureRepo opens the configured database when none was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if path == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	return nil
}

func (a *App) scheduler() *scheduler.Scheduler {
	return scheduler.New(a.repo, a.config.TimetableAxis(), a.config.EvaluationAxis(), a.log)
}

// newReviewer connects to the configured LLM provider.
func (a *App) newReviewer() (*llm.Reviewer, error) {
	client, err := llm.NewClient(a.config.LLM.Settings())
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return llm.NewReviewer(client), nil
}

func (a *App) runTUI(ctx context.Context, screen tui.Screen) error {
	if err := a.ensureRepo(); err != nil {
		return err
	}
	th, err := theme.Load(a.config.UI.Theme)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return tui.Run(ctx, tui.Deps{
		Source:      a.repo,
		Lessons:     a.config.TimetableAxis(),
		Evaluations: a.config.EvaluationAxis(),
		Reviewer:    a.newReviewer,
		Theme:       th,
		Log:         a.log,
		Now:         a.now,
		Screen:      screen,
	})
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// Close releases the database.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
