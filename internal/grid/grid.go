package grid

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/horario/internal/catalog"
)

// ErrCellTaken is returned when a placement touches an occupied cell.
var ErrCellTaken = errors.New("cell already occupied")

// CellKind is the state of one grid cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellOrigin
	CellContinuation
)

func (k CellKind) String() string {
	switch k {
	case CellOrigin:
		return "origin"
	case CellContinuation:
		return "continuation"
	default:
		return "empty"
	}
}

// Cell is one (day, slot) cell.
// Origin cells carry the card and its span; continuation cells point at
// their origin and render nothing.
type Cell struct {
	Kind   CellKind
	Span   int
	Card   *catalog.Card
	Origin Coord
}

// Occupancy records which cells are consumed and by which card.
// It lives for one Build.
type Occupancy struct {
	holders map[Coord]*catalog.Card
}

// NewOccupancy returns an empty Occupancy.
func NewOccupancy() *Occupancy {
	return &Occupancy{holders: make(map[Coord]*catalog.Card)}
}

// Holder returns the card consuming c, if any.
func (o *Occupancy) Holder(c Coord) (*catalog.Card, bool) {
	card, ok := o.holders[c]
	return card, ok
}

// Claim marks every cell of p as consumed by card.
// If any cell is already taken nothing is marked, and the holder of the
// first taken cell is returned with ErrCellTaken.
func (o *Occupancy) Claim(card *catalog.Card, p Placement) (*catalog.Card, error) {
	cells := p.Cells()
	for _, c := range cells {
		if holder, ok := o.holders[c]; ok {
			return holder, fmt.Errorf("%w: day %d slot %d", ErrCellTaken, c.Day, c.Slot)
		}
	}
	for _, c := range cells {
		o.holders[c] = card
	}
	return nil, nil
}

// Rejection is a card left off the grid.
type Rejection struct {
	Card   catalog.Card
	Err    error
	Holder *catalog.Card // card holding the cell, collisions only
}

// Report lists the cards Build could not place.
type Report struct {
	Unplaceable []Rejection
	Collisions  []Rejection
}

// Empty reports whether every card was placed.
func (r Report) Empty() bool {
	return len(r.Unplaceable) == 0 && len(r.Collisions) == 0
}

// Grid is a laid-out timetable. Rows are slots, columns are days.
type Grid struct {
	axis   Axis
	cells  [][]Cell // [slot][day]
	placed []*catalog.Card
}

// Build places cards on a in the given order. The first card to claim a
// cell wins; later cards touching it are reported as collisions.
// Build never fails: rejected cards are listed in the Report.
func Build(a Axis, cards []catalog.Card) (*Grid, Report) {
	g := &Grid{axis: a, cells: make([][]Cell, a.NumSlots())}
	for i := range g.cells {
		g.cells[i] = make([]Cell, a.NumDays())
	}

	var report Report
	occ := NewOccupancy()
	for i := range cards {
		card := cards[i]
		p, err := Place(card.Entry, a)
		if err != nil {
			report.Unplaceable = append(report.Unplaceable, Rejection{Card: card, Err: err})
			continue
		}
		if card.End == "" {
			card.End = a.Slot(p.Origin.Slot + p.Span - 1).End
		}
		placed := &card
		if holder, err := occ.Claim(placed, p); err != nil {
			report.Collisions = append(report.Collisions, Rejection{Card: card, Err: err, Holder: holder})
			continue
		}
		g.mark(placed, p)
	}
	return g, report
}

func (g *Grid) mark(card *catalog.Card, p Placement) {
	for i, c := range p.Cells() {
		if i == 0 {
			g.cells[c.Slot][c.Day] = Cell{Kind: CellOrigin, Span: p.Span, Card: card, Origin: p.Origin}
			continue
		}
		g.cells[c.Slot][c.Day] = Cell{Kind: CellContinuation, Origin: p.Origin}
	}
	g.placed = append(g.placed, card)
}

// Axis returns the axis the grid was built on.
func (g *Grid) Axis() Axis { return g.axis }

// At returns the cell at (day, slot). Out of range coordinates are empty.
func (g *Grid) At(day, slot int) Cell {
	if slot < 0 || slot >= len(g.cells) || day < 0 || day >= g.axis.NumDays() {
		return Cell{}
	}
	return g.cells[slot][day]
}

// Rows returns the cells indexed by slot, then day.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, len(g.cells))
	for i, r := range g.cells {
		rows[i] = append([]Cell(nil), r...)
	}
	return rows
}

// Placed returns the placed cards in placement order.
func (g *Grid) Placed() []*catalog.Card {
	return append([]*catalog.Card(nil), g.placed...)
}

// Count returns the number of cells of kind k.
func (g *Grid) Count(k CellKind) int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.Kind == k {
				n++
			}
		}
	}
	return n
}
