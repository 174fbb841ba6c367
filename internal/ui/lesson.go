package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/scheduler"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/views"
)

func (a *App) lessonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Add, edit or remove weekly lessons",
	}
	cmd.AddCommand(a.lessonAddCmd())
	cmd.AddCommand(a.lessonEditCmd())
	cmd.AddCommand(a.lessonRmCmd())
	cmd.AddCommand(a.lessonFreeCmd())
	return cmd
}

func registerLessonFlags(cmd *cobra.Command, spec *timetable.LessonSpec) {
	cmd.Flags().Int64Var(&spec.ClassID, "class", 0, "Class ID (required)")
	cmd.Flags().Int64Var(&spec.SubjectID, "subject", 0, "Subject ID (required)")
	cmd.Flags().Int64Var(&spec.TeacherID, "teacher", 0, "Teacher ID (required)")
	cmd.Flags().StringVar(&spec.Room, "room", "", "Room code")
	cmd.Flags().StringVar(&spec.Day, "day", "", "Weekday, e.g. monday (required)")
	cmd.Flags().StringVar(&spec.Start, "start", "", "Start time HH:MM, on a slot boundary (required)")

	for _, name := range []string{"class", "subject", "teacher", "day", "start"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (a *App) lessonAddCmd() *cobra.Command {
	var spec timetable.LessonSpec

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a weekly lesson",
		Long: `Add a weekly lesson. The start must fall on a slot of the timetable
and the class, teacher and room must be free at that time.

Example:
  horario lesson add --class 1 --subject 2 --teacher 3 --room B12 --day monday --start 09:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			l, err := a.scheduler().AddLesson(cmd.Context(), spec)
			if err != nil {
				return fmt.Errorf("adding lesson: %w", err)
			}
			fmt.Fprintf(a.out, "%s lesson #%d: %s %s\n", formatOK("Created"), l.ID, l.Day, l.Start)
			return nil
		},
	}
	registerLessonFlags(cmd, &spec)
	return cmd
}

func (a *App) lessonEditCmd() *cobra.Command {
	var spec timetable.LessonSpec

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Replace a weekly lesson",
		Long: `Replace every field of a lesson. The same placement rules as add apply.

Example:
  horario lesson edit 7 --class 1 --subject 2 --teacher 3 --day tuesday --start 10:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			l, err := a.scheduler().EditLesson(cmd.Context(), id, spec)
			if err != nil {
				return fmt.Errorf("editing lesson: %w", err)
			}
			fmt.Fprintf(a.out, "%s lesson #%d: %s %s\n", formatOK("Updated"), l.ID, l.Day, l.Start)
			return nil
		},
	}
	registerLessonFlags(cmd, &spec)
	return cmd
}

func (a *App) lessonRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a weekly lesson",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.scheduler().RemoveLesson(cmd.Context(), id); err != nil {
				return fmt.Errorf("removing lesson: %w", err)
			}
			fmt.Fprintf(a.out, "%s lesson #%d\n", formatOK("Removed"), id)
			return nil
		},
	}
}

func (a *App) lessonFreeCmd() *cobra.Command {
	var (
		classID int64
		day     string
	)

	cmd := &cobra.Command{
		Use:     "free",
		Short:   "List the free slots of a class on one day",
		Example: `  horario lesson free --class 1 --day wednesday`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			snap, _, err := a.loadSnapshot(cmd.Context(), "")
			if err != nil {
				return err
			}
			v := views.ClassTimetable(snap, a.config.TimetableAxis(), classID)
			slots, err := scheduler.FreeSlots(v.Grid, day)
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintf(a.out, "No free slots on %s\n", strings.ToLower(day))
				return nil
			}
			fmt.Fprintln(a.out, formatHeader(fmt.Sprintf("Free slots, %s", strings.ToLower(day))))
			for _, s := range slots {
				fmt.Fprintf(a.out, "  %s\n", s.Label())
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&classID, "class", 0, "Class ID (required)")
	cmd.Flags().StringVar(&day, "day", "", "Weekday (required)")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("day")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}
