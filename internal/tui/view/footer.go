package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	FooterH    int
	ReportLine string
	StatusLine string
	HelpLine   string
	VAlign     lipgloss.Position
	Bg         lipgloss.Color
}

// RenderFooter renders the report, status and help lines.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	s := state.StatusLine + "\n" + state.HelpLine
	if state.ReportLine != "" {
		s = state.ReportLine + "\n" + s
	}
	return PlaceBox(state.InnerW, state.FooterH, state.VAlign, s, state.Bg)
}
