package csvio

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/javiermolinar/horario/internal/grid"
)

// GridRow is one placed entry of an exported grid.
type GridRow struct {
	Day     string `csv:"day"`
	Start   string `csv:"start"`
	End     string `csv:"end"`
	Span    int    `csv:"span"`
	Kind    string `csv:"kind"`
	Date    string `csv:"date"`
	Subject string `csv:"subject"`
	Code    string `csv:"code"`
	Title   string `csv:"title"`
	Teacher string `csv:"teacher"`
	Class   string `csv:"class"`
	Room    string `csv:"room"`
}

// GridRows lists the origin cells of g, day by day, slot by slot.
func GridRows(g *grid.Grid) []*GridRow {
	a := g.Axis()
	var rows []*GridRow
	for day := 0; day < a.NumDays(); day++ {
		for slot := 0; slot < a.NumSlots(); slot++ {
			c := g.At(day, slot)
			if c.Kind != grid.CellOrigin {
				continue
			}
			rows = append(rows, &GridRow{
				Day:     a.Day(day),
				Start:   c.Card.Start,
				End:     c.Card.End,
				Span:    c.Span,
				Kind:    string(c.Card.Kind),
				Date:    c.Card.Date,
				Subject: c.Card.Subject,
				Code:    c.Card.SubjectCode,
				Title:   c.Card.Title,
				Teacher: c.Card.Teacher,
				Class:   c.Card.Class,
				Room:    c.Card.Room,
			})
		}
	}
	return rows
}

// WriteGrid writes the placed entries of g as CSV with a header row.
func WriteGrid(w io.Writer, g *grid.Grid) error {
	rows := GridRows(g)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
