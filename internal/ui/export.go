package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/csvio"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/views"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		classID     int64
		teacherID   int64
		evaluations bool
		week        string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a timetable as CSV",
		Long: `Export the entries of a timetable as CSV, one row per entry.

Examples:
  horario export --class 1 -o 1a.csv
  horario export --teacher 3
  horario export --evaluations --week next-week --class 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			snap, monday, err := a.loadSnapshot(cmd.Context(), week)
			if err != nil {
				return err
			}

			var v views.View
			switch {
			case evaluations:
				v = views.EvaluationPlanner(snap, a.config.EvaluationAxis(), monday, classID)
			case cmd.Flags().Changed("teacher"):
				v = views.TeacherTimetable(snap, a.config.TimetableAxis(), teacherID)
			case cmd.Flags().Changed("class"):
				v = views.ClassTimetable(snap, a.config.TimetableAxis(), classID)
			default:
				return fmt.Errorf("one of --class, --teacher or --evaluations is required")
			}

			var w io.Writer = a.out
			if output != "" && output != "-" {
				path, err := resolvePath(output)
				if err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := csvio.WriteGrid(w, v.Grid); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}
			a.log.Debug().Str("view", v.Title).Int("entries", v.Grid.Count(grid.CellOrigin)).Msg("exported")
			return nil
		},
	}

	cmd.Flags().Int64Var(&classID, "class", 0, "Class ID (filters evaluations with --evaluations)")
	cmd.Flags().Int64Var(&teacherID, "teacher", 0, "Teacher ID")
	cmd.Flags().BoolVar(&evaluations, "evaluations", false, "Export the evaluation planner")
	cmd.Flags().StringVar(&week, "week", "", "Week of the evaluation planner (default: this week)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.MarkFlagsMutuallyExclusive("teacher", "evaluations")
	cmd.MarkFlagsMutuallyExclusive("teacher", "class")

	return cmd
}
