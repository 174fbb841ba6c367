package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/csvio"
)

func (a *App) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Import and list subjects, teachers, classes, rooms, students and parents",
	}
	cmd.AddCommand(a.catalogImportCmd())
	cmd.AddCommand(a.catalogListCmd())
	return cmd
}

func kindNames(kinds []csvio.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (a *App) catalogImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [kind] [file.csv]",
		Short: "Import records from a CSV file",
		Long: fmt.Sprintf(`Import records of one kind from a CSV file with a header row.

Kinds: %s, lessons, evaluations.

Catalog records are inserted or replaced by ID. Lessons and evaluations
are placed like "lesson add" and "eval add"; the import stops at the
first one that does not fit.

Examples:
  horario catalog import teachers teachers.csv
  horario catalog import lessons lessons.csv`, kindNames(csvio.CatalogKinds)),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := csvio.Kind(strings.ToLower(args[0]))
			path, err := resolvePath(args[1])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			if err := a.ensureRepo(); err != nil {
				return err
			}

			var n int
			switch kind {
			case csvio.KindLessons:
				lessons, err := csvio.ReadLessons(f)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				n, err = a.scheduler().Import(cmd.Context(), lessons, nil)
				if err != nil {
					return fmt.Errorf("imported %d lessons, then: %w", n, err)
				}
			case csvio.KindEvaluations:
				evals, err := csvio.ReadEvaluations(f)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				n, err = a.scheduler().Import(cmd.Context(), nil, evals)
				if err != nil {
					return fmt.Errorf("imported %d evaluations, then: %w", n, err)
				}
			default:
				var d catalog.Data
				if err := csvio.ReadCatalog(kind, f, &d); err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				n, err = csvio.SaveCatalog(cmd.Context(), a.repo, d)
				if err != nil {
					return fmt.Errorf("saving %s: %w", kind, err)
				}
			}

			a.log.Info().Str("kind", string(kind)).Str("file", path).Int("records", n).Msg("import finished")
			fmt.Fprintf(a.out, "%s %d %s from %s\n", formatOK("Imported"), n, kind, path)
			return nil
		},
	}
}

func (a *App) catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind]",
		Short: "List the records of one catalog",
		Long: fmt.Sprintf(`List the records of one catalog.

Kinds: %s.`, kindNames(csvio.CatalogKinds)),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			cats, err := a.repo.LoadCatalogs(cmd.Context())
			if err != nil {
				return err
			}
			headers, rows, err := catalogRows(csvio.Kind(strings.ToLower(args[0])), cats.Data())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintf(a.out, "No %s\n", strings.ToLower(args[0]))
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderRow(false).
				Headers(headers...).
				Rows(rows...)
			fmt.Fprintln(a.out, t.Render())
			return nil
		},
	}
}

// catalogRows flattens one catalog into table rows.
func catalogRows(kind csvio.Kind, d catalog.Data) ([]string, [][]string, error) {
	id := func(v int64) string { return strconv.FormatInt(v, 10) }

	var rows [][]string
	switch kind {
	case csvio.KindSubjects:
		for _, s := range d.Subjects {
			rows = append(rows, []string{id(s.ID), s.Code, s.Name, s.Color})
		}
		return []string{"ID", "CODE", "NAME", "COLOR"}, rows, nil
	case csvio.KindTeachers:
		for _, t := range d.Teachers {
			rows = append(rows, []string{id(t.ID), t.FullName(), t.Email})
		}
		return []string{"ID", "NAME", "EMAIL"}, rows, nil
	case csvio.KindClasses:
		for _, c := range d.Classes {
			rows = append(rows, []string{id(c.ID), c.Name, c.Level})
		}
		return []string{"ID", "NAME", "LEVEL"}, rows, nil
	case csvio.KindRooms:
		for _, r := range d.Rooms {
			rows = append(rows, []string{r.Code, r.Name, strconv.Itoa(r.Capacity)})
		}
		return []string{"CODE", "NAME", "CAPACITY"}, rows, nil
	case csvio.KindStudents:
		for _, s := range d.Students {
			rows = append(rows, []string{id(s.ID), s.FullName(), id(s.ClassID)})
		}
		return []string{"ID", "NAME", "CLASS"}, rows, nil
	case csvio.KindParents:
		for _, p := range d.Parents {
			children := make([]string, len(p.ChildIDs))
			for i, c := range p.ChildIDs {
				children[i] = id(c)
			}
			rows = append(rows, []string{id(p.ID), p.FullName(), strings.Join(children, ", ")})
		}
		return []string{"ID", "NAME", "CHILDREN"}, rows, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", csvio.ErrUnknownKind, kind)
}
