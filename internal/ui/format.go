package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/tui/view"
	"github.com/javiermolinar/horario/internal/views"
)

const slotColumnWidth = 11

// cellWidth fits the days of a into width columns.
func cellWidth(a grid.Axis, width int) int {
	days := a.NumDays()
	if days == 0 {
		return 0
	}
	return max((width-slotColumnWidth-days-2)/days, 6)
}

// printView writes v as a table sized to width, with colored cards.
func printView(w io.Writer, v views.View, week, today time.Time, width int) {
	a := v.Grid.Axis()
	headers, _ := view.HeaderLabels(a, week, today)
	rows := view.GridRows(v.Grid, cellWidth(a, width))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(w, formatHeader(v.Title))
	fmt.Fprintln(w, colorCards(t.Render(), v.Grid))
	for _, line := range view.ReportLines(v) {
		fmt.Fprintln(w, formatWarn(line))
	}
}

// colorCards colors card labels in rendered. Coloring after layout keeps
// escape codes out of the width computations.
func colorCards(rendered string, g *grid.Grid) string {
	seen := make(map[string]bool)
	var cards []*catalog.Card
	for _, c := range g.Placed() {
		if !seen[c.Label()] {
			seen[c.Label()] = true
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		return rendered
	}
	// Longer labels first so "MAT (eval)" is not split by "MAT".
	sort.SliceStable(cards, func(i, j int) bool {
		return len(cards[i].Label()) > len(cards[j].Label())
	})

	pairs := make([]string, 0, 2*len(cards))
	for _, c := range cards {
		colored := formatLesson(c.Label())
		if c.Kind == timetable.KindEvaluation {
			colored = formatEvaluation(c.Label())
		}
		pairs = append(pairs, c.Label(), colored)
	}
	return strings.NewReplacer(pairs...).Replace(rendered)
}

func printCard(w io.Writer, c *catalog.Card) {
	label := formatLesson(c.Label())
	if c.Kind == timetable.KindEvaluation {
		label = formatEvaluation(c.Label())
	}
	fmt.Fprintf(w, "#%d %s %s\n", c.ID, label, formatMuted(c.Title))
	for _, kv := range view.DetailLines(c) {
		fmt.Fprintf(w, "  %-8s %s\n", kv[0]+":", kv[1])
	}
}

func printReview(w io.Writer, r *llm.Review) {
	fmt.Fprintln(w, formatHeader("Review"))
	fmt.Fprintln(w, formatInsight(r.Summary))
	for _, warning := range r.Warnings {
		fmt.Fprintln(w, formatWarn("  ! "+warning))
	}
	for _, s := range r.Suggestions {
		fmt.Fprintln(w, "  > "+s)
	}
}

func printLoads(w io.Writer, g *grid.Grid) {
	for _, l := range llm.Loads(g) {
		fmt.Fprintf(w, "  %-10s %d busy, %d free, longest run %d, %d evaluations\n",
			l.Day, l.Busy, l.Free, l.LongestRun, l.Evaluations)
	}
}
