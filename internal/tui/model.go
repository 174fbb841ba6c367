// Package tui provides the terminal timetable browser.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/tui/commands"
	"github.com/javiermolinar/horario/internal/tui/theme"
	"github.com/javiermolinar/horario/internal/views"
)

// Screen is one of the timetables the browser shows.
type Screen int

const (
	ScreenClass Screen = iota
	ScreenTeacher
	ScreenEvaluations
	numScreens
)

func (s Screen) String() string {
	switch s {
	case ScreenTeacher:
		return "teachers"
	case ScreenEvaluations:
		return "evaluations"
	default:
		return "classes"
	}
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalDetail
	ModalReview
	ModalHelp
)

// Position represents a cursor position in the grid.
type Position struct {
	Day  int
	Slot int
}

// Deps holds what the browser reads from and talks to.
type Deps struct {
	Source      views.Source
	Lessons     grid.Axis
	Evaluations grid.Axis
	Reviewer    func() (*llm.Reviewer, error) // nil disables reviews
	Theme       *theme.Theme
	Log         zerolog.Logger
	Now         func() time.Time
	Clipboard   func(string) error

	// Initial screen and week; a zero Week means the current one.
	Screen Screen
	Week   time.Time
}

// Model is the main TUI model.
type Model struct {
	deps   Deps
	styles *Styles
	keys   KeyMap
	help   help.Model
	prompt textinput.Model

	screen    Screen
	mode      Mode
	modalType ModalType

	week   time.Time // Monday
	snap   views.Snapshot
	loaded bool

	// Selected entity per screen. On the evaluation screen 0 means every
	// class and i the class at i-1.
	entity [numScreens]int
	cursor Position

	review    *llm.Review
	reviewing bool

	statusMsg  string
	statusTime time.Time
	err        error

	width    int
	height   int
	colWidth int
}

// New creates a new TUI model.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}

	week := deps.Week
	if week.IsZero() {
		week = deps.Now()
	}
	monday, _ := dateutil.WeekRange(week)

	styles := NewStyles(deps.Theme)

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.FullKey = styles.Modal.Label
	h.Styles.FullDesc = styles.Modal.Text
	h.Styles.FullSeparator = styles.Modal.Text

	prompt := textinput.New()
	prompt.Prompt = "week> "
	prompt.Placeholder = "this-week, next-week, last-week or YYYY-MM-DD"
	prompt.PromptStyle = styles.PromptStyle
	prompt.TextStyle = styles.PromptStyle
	prompt.CharLimit = 32

	return Model{
		deps:     deps,
		styles:   styles,
		keys:     DefaultKeyMap(),
		help:     h,
		prompt:   prompt,
		screen:   deps.Screen % numScreens,
		week:     monday,
		colWidth: defaultColWidth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.deps.Source == nil {
		return nil
	}
	return commands.LoadSnapshot(m.deps.Source, m.week)
}

func (m Model) axis() grid.Axis {
	if m.screen == ScreenEvaluations {
		return m.deps.Evaluations
	}
	return m.deps.Lessons
}

func (m Model) classes() []catalog.Class {
	return m.snap.Catalogs.Data().Classes
}

func (m Model) teachers() []catalog.Teacher {
	return m.snap.Catalogs.Data().Teachers
}

// entityCount returns how many entities the current screen cycles through.
func (m Model) entityCount() int {
	switch m.screen {
	case ScreenTeacher:
		return len(m.teachers())
	case ScreenEvaluations:
		return len(m.classes()) + 1
	default:
		return len(m.classes())
	}
}

func (m Model) classID() int64 {
	classes := m.classes()
	i := m.entity[ScreenClass]
	if i < 0 || i >= len(classes) {
		return 0
	}
	return classes[i].ID
}

func (m Model) teacherID() int64 {
	teachers := m.teachers()
	i := m.entity[ScreenTeacher]
	if i < 0 || i >= len(teachers) {
		return 0
	}
	return teachers[i].ID
}

func (m Model) evaluationClassID() int64 {
	classes := m.classes()
	i := m.entity[ScreenEvaluations] - 1
	if i < 0 || i >= len(classes) {
		return 0
	}
	return classes[i].ID
}

// currentView builds the timetable of the current screen.
func (m Model) currentView() views.View {
	switch m.screen {
	case ScreenTeacher:
		return views.TeacherTimetable(m.snap, m.deps.Lessons, m.teacherID())
	case ScreenEvaluations:
		return views.EvaluationPlanner(m.snap, m.deps.Evaluations, m.week, m.evaluationClassID())
	default:
		return views.ClassTimetable(m.snap, m.deps.Lessons, m.classID())
	}
}

// cardAt returns the card covering p, following continuations back to
// their origin.
func cardAt(g *grid.Grid, p Position) *catalog.Card {
	c := g.At(p.Day, p.Slot)
	switch c.Kind {
	case grid.CellOrigin:
		return c.Card
	case grid.CellContinuation:
		return g.At(c.Origin.Day, c.Origin.Slot).Card
	}
	return nil
}

func (m *Model) clampCursor() {
	a := m.axis()
	m.cursor.Day = min(max(m.cursor.Day, 0), max(a.NumDays()-1, 0))
	m.cursor.Slot = min(max(m.cursor.Slot, 0), max(a.NumSlots()-1, 0))
}

func (m *Model) clampEntities() {
	for s := ScreenClass; s < numScreens; s++ {
		saved := m.screen
		m.screen = s
		n := m.entityCount()
		m.screen = saved
		if m.entity[s] >= n {
			m.entity[s] = max(n-1, 0)
		}
	}
}

func (m *Model) calculateColWidth() {
	days := m.axis().NumDays()
	if days == 0 || m.width == 0 {
		m.colWidth = defaultColWidth
		return
	}
	// App padding, slot column and one border per column.
	avail := m.width - 2 - slotColWidth - (days + 2)
	m.colWidth = max(avail/days, minCellWidth)
}
