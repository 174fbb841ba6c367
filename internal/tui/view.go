package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/tui/view"
	"github.com/javiermolinar/horario/internal/views"
)

const (
	titleHeight  = 1
	footerHeight = 3
)

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	innerW := m.width - 2
	gridH := m.height - titleHeight - footerHeight
	if innerW <= 0 || gridH <= 0 {
		return "Terminal too small"
	}
	if !m.loaded {
		loading := m.styles.SubtitleStyle.Render(m.statusOr("Loading..."))
		return view.PadLinesWithBackground(loading, m.width, m.height, m.styles.colorBg)
	}

	v := m.currentView()
	content := lipgloss.JoinVertical(lipgloss.Left,
		view.PlaceBox(innerW, titleHeight, lipgloss.Top, m.renderTitle(v), m.styles.colorBg),
		view.RenderTable(m.tableViewState(v, innerW, gridH)),
		view.RenderFooter(m.footerViewState(v, innerW)),
	)
	base := view.PadLinesWithBackground(m.styles.AppStyle.Render(content), m.width, m.height, m.styles.colorBg)

	if m.mode != ModeModal || m.modalType == ModalNone {
		return base
	}
	modal := m.renderModal(v)
	if modal == "" {
		return base
	}
	return view.RenderModalOverlay(base, modal, m.width, m.height, m.styles.colorModalBackdrop)
}

func (m Model) renderTitle(v views.View) string {
	n := m.entityCount()
	pos := m.entity[m.screen] + 1
	if n == 0 {
		pos = 0
	}
	sub := fmt.Sprintf("  %s %d/%d", m.screen, pos, n)
	if m.screen == ScreenEvaluations && m.entity[ScreenEvaluations] == 0 {
		sub = fmt.Sprintf("  %s, all classes", m.screen)
	}
	return m.styles.TitleStyle.Render(v.Title) + m.styles.SubtitleStyle.Render(sub)
}

func (m Model) tableViewState(v views.View, innerW, gridH int) view.TableViewState {
	a := v.Grid.Axis()
	if a.NumDays() == 0 || a.NumSlots() == 0 {
		return view.TableViewState{Render: false}
	}

	var week time.Time
	if m.screen == ScreenEvaluations {
		week = m.week
	}
	headers, todayCols := view.HeaderLabels(a, week, m.deps.Now())

	headerStyles := make([]lipgloss.Style, len(headers))
	headerStyles[0] = m.styles.SlotColumnStyle
	for i := 1; i < len(headers); i++ {
		style := m.styles.DayHeaderStyle
		if todayCols[i] {
			style = m.styles.DayHeaderTodayStyle
		}
		headerStyles[i] = style.Width(m.colWidth)
	}

	return view.TableViewState{
		InnerW:       innerW,
		GridH:        gridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       view.GridRows(v.Grid, m.colWidth),
			CellStyles: m.cellStyles(v.Grid),
		},
		BorderStyle: m.styles.BorderStyle,
		VAlign:      lipgloss.Top,
		Bg:          m.styles.colorBg,
		Render:      true,
	}
}

// cellStyles mirrors view.GridRows: the slot column then one style per day.
func (m Model) cellStyles(g *grid.Grid) [][]lipgloss.Style {
	a := g.Axis()
	styles := make([][]lipgloss.Style, a.NumSlots())
	for slot := range styles {
		row := make([]lipgloss.Style, 0, a.NumDays()+1)
		row = append(row, m.styles.SlotColumnStyle)
		for day := 0; day < a.NumDays(); day++ {
			row = append(row, m.cellStyle(g, day, slot))
		}
		styles[slot] = row
	}
	return styles
}

func (m Model) cellStyle(g *grid.Grid, day, slot int) lipgloss.Style {
	if m.cursor.Day == day && m.cursor.Slot == slot {
		return m.styles.CursorStyle.Width(m.colWidth)
	}
	c := g.At(day, slot)
	switch c.Kind {
	case grid.CellOrigin:
		return m.styles.CardStyle(c.Card).Width(m.colWidth)
	case grid.CellContinuation:
		if card := cardAt(g, Position{Day: day, Slot: slot}); card != nil {
			return m.styles.ContinuationStyle(card).Width(m.colWidth)
		}
	}
	return m.styles.EmptyCellStyle.Width(m.colWidth)
}

func (m Model) footerViewState(v views.View, innerW int) view.FooterViewState {
	report := ""
	if lines := view.ReportLines(v); len(lines) > 0 {
		report = lines[0]
		if len(lines) > 1 {
			report += fmt.Sprintf(" (+%d more)", len(lines)-1)
		}
		report = m.styles.ReportStyle.Render(ansi.Truncate(report, innerW, "…"))
	}

	status := m.styles.StatusStyle.Render(m.statusOr(m.defaultStatus()))

	helpLine := m.help.View(m.keys)
	if m.mode == ModePrompt {
		helpLine = m.prompt.View()
	}

	return view.FooterViewState{
		InnerW:     innerW,
		FooterH:    footerHeight,
		ReportLine: report,
		StatusLine: status,
		HelpLine:   helpLine,
		VAlign:     lipgloss.Bottom,
		Bg:         m.styles.colorBg,
	}
}

func (m Model) statusOr(fallback string) string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	return fallback
}

func (m Model) defaultStatus() string {
	if m.screen == ScreenEvaluations {
		return "Week of " + m.week.Format("Mon 2 Jan 2006")
	}
	return fmt.Sprintf("%d lessons, %d evaluations this week", len(m.snap.Lessons), len(m.snap.Evaluations))
}

func (m Model) renderModal(v views.View) string {
	maxWidth := m.width - 4
	switch m.modalType {
	case ModalDetail:
		card := cardAt(v.Grid, m.cursor)
		if card == nil {
			return ""
		}
		return view.RenderDetail(m.styles.Modal, card, maxWidth)
	case ModalReview:
		if m.review == nil {
			return ""
		}
		return view.RenderModal(m.styles.Modal, "Timetable review", view.ReviewLines(m.review), "y copy  esc close", maxWidth)
	case ModalHelp:
		body := strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")
		return view.RenderModal(m.styles.Modal, "Keys", body, "esc close", maxWidth)
	}
	return ""
}
