package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/tui"
	"github.com/javiermolinar/horario/internal/tui/view"
	"github.com/javiermolinar/horario/internal/views"
)

// outputOptions are the flags shared by the commands that print a grid.
type outputOptions struct {
	copy    bool
	review  bool
	loads   bool
	details bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the timetable to the clipboard as plain text")
	cmd.Flags().BoolVar(&o.review, "insight", false, "Ask the configured LLM to review the timetable")
	cmd.Flags().BoolVar(&o.loads, "loads", false, "Print busy and free slots per day")
	cmd.Flags().BoolVar(&o.details, "details", false, "Print every placed entry below the grid")
}

func (a *App) timetableCmd() *cobra.Command {
	var (
		classID   int64
		teacherID int64
		studentID int64
		parentID  int64
		childID   int64
		out       outputOptions
	)

	cmd := &cobra.Command{
		Use:   "timetable",
		Short: "Show the weekly timetable of a class, teacher, student or parent",
		Long: `Show a weekly lesson timetable.

Exactly one of --class, --teacher, --student or --parent is required.
Parents also pass --child, one of their own children.

Examples:
  horario timetable --class 1
  horario timetable --teacher 3 --copy
  horario timetable --parent 20 --child 10 --insight`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			snap, _, err := a.loadSnapshot(cmd.Context(), "")
			if err != nil {
				return err
			}

			axis := a.config.TimetableAxis()
			var v views.View
			switch {
			case cmd.Flags().Changed("class"):
				v = views.ClassTimetable(snap, axis, classID)
			case cmd.Flags().Changed("teacher"):
				v = views.TeacherTimetable(snap, axis, teacherID)
			case cmd.Flags().Changed("student"):
				v, err = views.StudentTimetable(snap, axis, studentID)
			default:
				v, err = views.ParentTimetable(snap, axis, parentID, childID)
			}
			if err != nil {
				return err
			}
			return a.output(cmd.Context(), v, time.Time{}, out)
		},
	}

	cmd.Flags().Int64Var(&classID, "class", 0, "Class ID")
	cmd.Flags().Int64Var(&teacherID, "teacher", 0, "Teacher ID")
	cmd.Flags().Int64Var(&studentID, "student", 0, "Student ID")
	cmd.Flags().Int64Var(&parentID, "parent", 0, "Parent ID")
	cmd.Flags().Int64Var(&childID, "child", 0, "Child (student) ID, with --parent")
	out.register(cmd)

	cmd.MarkFlagsOneRequired("class", "teacher", "student", "parent")
	cmd.MarkFlagsMutuallyExclusive("class", "teacher", "student", "parent")
	cmd.MarkFlagsRequiredTogether("parent", "child")

	return cmd
}

func (a *App) evaluationsCmd() *cobra.Command {
	var (
		week    string
		classID int64
		tuiMode bool
		out     outputOptions
	)

	cmd := &cobra.Command{
		Use:   "evaluations",
		Short: "Show the evaluations of a week",
		Long: `Show the evaluation planner of one week, optionally for one class.

--week accepts this-week, next-week, last-week or any date of the
wanted week (YYYY-MM-DD).

Examples:
  horario evaluations
  horario evaluations --week next-week --class 2
  horario evaluations --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tuiMode {
				return a.runTUI(cmd.Context(), tui.ScreenEvaluations)
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			snap, monday, err := a.loadSnapshot(cmd.Context(), week)
			if err != nil {
				return err
			}
			v := views.EvaluationPlanner(snap, a.config.EvaluationAxis(), monday, classID)
			return a.output(cmd.Context(), v, monday, out)
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week to show (default: this week)")
	cmd.Flags().Int64Var(&classID, "class", 0, "Only show this class")
	cmd.Flags().BoolVar(&tuiMode, "tui", false, "Open the planner in the interactive browser")
	out.register(cmd)

	return cmd
}

// loadSnapshot loads the data of the week named by weekRef.
func (a *App) loadSnapshot(ctx context.Context, weekRef string) (views.Snapshot, time.Time, error) {
	monday, err := dateutil.ParseWeek(weekRef, a.now())
	if err != nil {
		return views.Snapshot{}, time.Time{}, fmt.Errorf("invalid week: %w", err)
	}
	_, sunday := dateutil.WeekRange(monday)
	snap, err := views.LoadSnapshot(ctx, a.repo, monday, sunday)
	if err != nil {
		return views.Snapshot{}, time.Time{}, err
	}
	return snap, monday, nil
}

// output prints v and runs the optional copy, loads and review steps.
func (a *App) output(ctx context.Context, v views.View, week time.Time, opts outputOptions) error {
	if !v.Report.Empty() {
		a.log.Warn().
			Int("unplaceable", len(v.Report.Unplaceable)).
			Int("collisions", len(v.Report.Collisions)).
			Str("view", v.Title).
			Msg("entries left off the grid")
	}

	printView(a.out, v, week, a.now(), termWidth())

	if opts.details {
		for _, c := range v.Grid.Placed() {
			fmt.Fprintln(a.out)
			printCard(a.out, c)
		}
	}

	if opts.loads {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, formatHeader("Load"))
		printLoads(a.out, v.Grid)
	}

	if opts.copy {
		if err := clipboard.WriteAll(view.PlainText(v)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(a.out, formatOK("Copied to clipboard"))
	}

	if opts.review {
		reviewer, err := a.newReviewer()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, formatMuted("Reviewing..."))
		review, err := reviewer.Review(ctx, v)
		if err != nil {
			return fmt.Errorf("reviewing timetable: %w", err)
		}
		fmt.Fprintln(a.out)
		printReview(a.out, review)
	}
	return nil
}
