package api

import (
	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/views"
)

// ViewResponse is the JSON form of a rendered screen.
type ViewResponse struct {
	Title  string           `json:"title"`
	Days   []string         `json:"days"`
	Slots  []string         `json:"slots"`
	Cells  [][]CellResponse `json:"cells"` // [slot][day]
	Report ReportResponse   `json:"report"`
}

// CellResponse is one grid cell. Card is set on origin cells only.
type CellResponse struct {
	Kind   string         `json:"kind"`
	Span   int            `json:"span,omitempty"`
	Origin *CoordResponse `json:"origin,omitempty"`
	Card   *CardResponse  `json:"card,omitempty"`
}

// CoordResponse points at an origin cell.
type CoordResponse struct {
	Day  int `json:"day"`
	Slot int `json:"slot"`
}

// CardResponse is the display record of an entry.
type CardResponse struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	SubjectCode string `json:"subject_code"`
	Color       string `json:"color"`
	Teacher     string `json:"teacher"`
	Class       string `json:"class"`
	Room        string `json:"room"`
	Date        string `json:"date,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// ReportResponse lists the entries left off the grid.
type ReportResponse struct {
	Unplaceable []RejectionResponse `json:"unplaceable"`
	Collisions  []RejectionResponse `json:"collisions"`
}

// RejectionResponse explains why an entry was left off.
type RejectionResponse struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"`
	Reason   string `json:"reason"`
	HolderID int64  `json:"holder_id,omitempty"`
}

func newViewResponse(v views.View) ViewResponse {
	a := v.Grid.Axis()
	resp := ViewResponse{
		Title:  v.Title,
		Days:   a.Days(),
		Cells:  make([][]CellResponse, a.NumSlots()),
		Report: newReportResponse(v.Report),
	}
	for _, s := range a.Slots() {
		resp.Slots = append(resp.Slots, s.Label())
	}
	for slot, row := range v.Grid.Rows() {
		cells := make([]CellResponse, len(row))
		for day, c := range row {
			cells[day] = CellResponse{Kind: c.Kind.String()}
			switch c.Kind {
			case grid.CellOrigin:
				cells[day].Span = c.Span
				cells[day].Card = newCardResponse(c.Card)
			case grid.CellContinuation:
				cells[day].Origin = &CoordResponse{Day: c.Origin.Day, Slot: c.Origin.Slot}
			}
		}
		resp.Cells[slot] = cells
	}
	return resp
}

func newCardResponse(c *catalog.Card) *CardResponse {
	return &CardResponse{
		ID:          c.ID,
		Kind:        string(c.Kind),
		Label:       c.Label(),
		Title:       c.Title,
		Subject:     c.Subject,
		SubjectCode: c.SubjectCode,
		Color:       c.Color,
		Teacher:     c.Teacher,
		Class:       c.Class,
		Room:        c.Room,
		Date:        c.Date,
		Start:       c.Start,
		End:         c.End,
	}
}

func newReportResponse(r grid.Report) ReportResponse {
	resp := ReportResponse{
		Unplaceable: []RejectionResponse{},
		Collisions:  []RejectionResponse{},
	}
	for _, rej := range r.Unplaceable {
		resp.Unplaceable = append(resp.Unplaceable, newRejection(rej))
	}
	for _, rej := range r.Collisions {
		resp.Collisions = append(resp.Collisions, newRejection(rej))
	}
	return resp
}

func newRejection(r grid.Rejection) RejectionResponse {
	resp := RejectionResponse{ID: r.Card.ID, Kind: string(r.Card.Kind), Reason: r.Err.Error()}
	if r.Holder != nil {
		resp.HolderID = r.Holder.ID
	}
	return resp
}
