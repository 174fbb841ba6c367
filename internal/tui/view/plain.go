package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/javiermolinar/horario/internal/views"
)

// PlainText renders v as an unstyled table, for the clipboard and pipes.
func PlainText(v views.View) string {
	a := v.Grid.Axis()
	headers := append([]string{""}, a.Days()...)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...).
		Rows(GridRows(v.Grid, 0)...)

	var sb strings.Builder
	sb.WriteString(v.Title)
	sb.WriteString("\n")
	sb.WriteString(t.Render())
	sb.WriteString("\n")
	for _, line := range ReportLines(v) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ReportLines describes the entries left off the grid, one per line.
func ReportLines(v views.View) []string {
	var lines []string
	for _, r := range v.Report.Unplaceable {
		lines = append(lines, fmt.Sprintf("not shown: %s %s %s (%v)", r.Card.Label(), r.Card.Day, r.Card.Start, r.Err))
	}
	for _, r := range v.Report.Collisions {
		holder := "?"
		if r.Holder != nil {
			holder = r.Holder.Label()
		}
		lines = append(lines, fmt.Sprintf("not shown: %s %s %s overlaps %s", r.Card.Label(), r.Card.Day, r.Card.Start, holder))
	}
	return lines
}
