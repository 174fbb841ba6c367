package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/timetable"
)

func (a *App) evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "eval",
		Aliases: []string{"evaluation"},
		Short:   "Add, edit or remove dated evaluations",
	}
	cmd.AddCommand(a.evalAddCmd())
	cmd.AddCommand(a.evalEditCmd())
	cmd.AddCommand(a.evalRmCmd())
	cmd.AddCommand(a.evalListCmd())
	return cmd
}

func registerEvaluationFlags(cmd *cobra.Command, spec *timetable.EvaluationSpec) {
	cmd.Flags().Int64Var(&spec.ClassID, "class", 0, "Class ID (required)")
	cmd.Flags().Int64Var(&spec.SubjectID, "subject", 0, "Subject ID (required)")
	cmd.Flags().Int64Var(&spec.TeacherID, "teacher", 0, "Teacher ID (required)")
	cmd.Flags().StringVar(&spec.Title, "title", "", "Title, defaults to the subject name")
	cmd.Flags().StringVar(&spec.Date, "date", "", "Date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&spec.Start, "start", "", "Start time HH:MM, on a slot boundary (required)")
	cmd.Flags().IntVar(&spec.Duration, "duration", 1, "Length in slots, 1 to 4")

	for _, name := range []string{"class", "subject", "teacher", "date", "start"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (a *App) evalAddCmd() *cobra.Command {
	var spec timetable.EvaluationSpec

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an evaluation",
		Long: `Add a dated evaluation spanning one or more consecutive slots.

Example:
  horario eval add --class 1 --subject 2 --teacher 3 --title "Midterm" --date 2025-01-15 --start 10:00 --duration 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			e, err := a.scheduler().AddEvaluation(cmd.Context(), spec)
			if err != nil {
				return fmt.Errorf("adding evaluation: %w", err)
			}
			fmt.Fprintf(a.out, "%s evaluation #%d: %s %s-%s\n",
				formatOK("Created"), e.ID, dateutil.FormatDate(e.Date), e.Start, e.End())
			return nil
		},
	}
	registerEvaluationFlags(cmd, &spec)
	return cmd
}

func (a *App) evalEditCmd() *cobra.Command {
	var spec timetable.EvaluationSpec

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Replace an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			e, err := a.scheduler().EditEvaluation(cmd.Context(), id, spec)
			if err != nil {
				return fmt.Errorf("editing evaluation: %w", err)
			}
			fmt.Fprintf(a.out, "%s evaluation #%d: %s %s-%s\n",
				formatOK("Updated"), e.ID, dateutil.FormatDate(e.Date), e.Start, e.End())
			return nil
		},
	}
	registerEvaluationFlags(cmd, &spec)
	return cmd
}

func (a *App) evalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an evaluation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.scheduler().RemoveEvaluation(cmd.Context(), id); err != nil {
				return fmt.Errorf("removing evaluation: %w", err)
			}
			fmt.Fprintf(a.out, "%s evaluation #%d\n", formatOK("Removed"), id)
			return nil
		},
	}
}

func (a *App) evalListCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List evaluations between two dates",
		Long: `List the evaluations dated between --from and --to, both inclusive.
--from defaults to today and --to to --from.

Example:
  horario eval list --from 2025-01-13 --to 2025-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(from) == "" {
				from = dateutil.FormatDate(a.now())
			}
			r, err := dateutil.NewDateRange(from, to)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			evals, err := a.repo.ListEvaluationsByDateRange(cmd.Context(), r.Start, r.End)
			if err != nil {
				return fmt.Errorf("listing evaluations: %w", err)
			}
			cats, err := a.repo.LoadCatalogs(cmd.Context())
			if err != nil {
				return err
			}
			printEvaluationList(a, cats, evals)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last date YYYY-MM-DD")
	return cmd
}

func printEvaluationList(a *App, cats *catalog.Catalogs, evals []*timetable.Evaluation) {
	if len(evals) == 0 {
		fmt.Fprintln(a.out, formatMuted("No evaluations"))
		return
	}
	for _, e := range evals {
		c := cats.Enrich(*e)
		fmt.Fprintf(a.out, "#%-4d %s %s-%s  %s  %s  %s\n",
			c.ID, c.Date, c.Start, c.End, formatEvaluation(c.Title), c.Class, formatMuted(c.Teacher))
	}
}
