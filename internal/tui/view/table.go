package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/grid"
)

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds data needed to render a timetable grid.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	VAlign       lipgloss.Position
	Bg           lipgloss.Color
	Render       bool
}

// RenderTable draws the timetable: slot labels down the left, one column
// per day, no row separators.
func RenderTable(state TableViewState) string {
	if !state.Render || state.GridH <= 0 {
		return ""
	}

	t := table.New().
		Headers(state.Headers...).
		Rows(state.Content.Rows...).
		Width(max(state.InnerW-2, 0)).
		Height(state.GridH).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(state.BorderStyle).
		BorderRow(false).
		StyleFunc(state.styleAt)

	return PlaceBox(state.InnerW, state.GridH, state.VAlign, t.Render(), state.Bg)
}

func (state TableViewState) styleAt(row, col int) lipgloss.Style {
	if col < 0 {
		return lipgloss.NewStyle()
	}
	if row == table.HeaderRow {
		return styleOr(state.HeaderStyles, col)
	}
	if row < 0 || row >= len(state.Content.CellStyles) {
		return lipgloss.NewStyle()
	}
	return styleOr(state.Content.CellStyles[row], col)
}

func styleOr(styles []lipgloss.Style, i int) lipgloss.Style {
	if i < len(styles) {
		return styles[i]
	}
	return lipgloss.NewStyle()
}

// ContinuationMark fills the cells an entry spans below its first slot.
const ContinuationMark = "┆"

// CellText returns the text drawn in c, cut to width columns.
// width <= 0 leaves the text whole.
func CellText(g *grid.Grid, c grid.Cell, width int) string {
	var s string
	switch c.Kind {
	case grid.CellOrigin:
		s = cardText(c.Card)
	case grid.CellContinuation:
		s = ContinuationMark
	}
	if width > 0 && ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	return s
}

func cardText(c *catalog.Card) string {
	s := c.Label()
	if c.Room != catalog.NoRoom {
		s += " " + c.Room
	}
	return s
}

// GridRows returns the table rows of g: the slot label then one cell per day.
func GridRows(g *grid.Grid, cellWidth int) [][]string {
	a := g.Axis()
	rows := make([][]string, a.NumSlots())
	for slot := range rows {
		row := make([]string, 0, a.NumDays()+1)
		row = append(row, a.Slot(slot).Label())
		for day := 0; day < a.NumDays(); day++ {
			row = append(row, CellText(g, g.At(day, slot), cellWidth))
		}
		rows[slot] = row
	}
	return rows
}
