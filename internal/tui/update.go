package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/tui/commands"
	"github.com/javiermolinar/horario/internal/tui/view"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.calculateColWidth()
		return m, nil

	case commands.SnapshotLoadedMsg:
		m.snap = msg.Snapshot
		m.week = msg.Week
		m.loaded = true
		m.clampEntities()
		m.clampCursor()
		m.deps.Log.Debug().
			Time("week", msg.Week).
			Int("lessons", len(msg.Snapshot.Lessons)).
			Int("evaluations", len(msg.Snapshot.Evaluations)).
			Msg("snapshot loaded")
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.reviewing = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.deps.Now().Add(errorDuration)
		m.deps.Log.Error().Err(msg.Err).Msg("tui command failed")
		return m, clearStatusAfter(errorDuration)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.deps.Now().Add(statusDuration)
		return m, clearStatusAfter(statusDuration)

	case commands.ClearStatusMsg:
		if !m.deps.Now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.ReviewMsg:
		m.reviewing = false
		m.review = msg.Review
		m.statusMsg = ""
		m.mode = ModeModal
		m.modalType = ModalReview
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor.Slot--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor.Slot++
		m.clampCursor()
	case key.Matches(msg, m.keys.Left):
		m.cursor.Day--
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		m.cursor.Day++
		m.clampCursor()

	case key.Matches(msg, m.keys.NextScreen):
		m.screen = (m.screen + 1) % numScreens
		m.calculateColWidth()
		m.clampCursor()
	case key.Matches(msg, m.keys.NextEntity):
		m.cycleEntity(1)
	case key.Matches(msg, m.keys.PrevEntity):
		m.cycleEntity(-1)

	case key.Matches(msg, m.keys.PrevWeek):
		return m.loadWeek(m.week.AddDate(0, 0, -7))
	case key.Matches(msg, m.keys.NextWeek):
		return m.loadWeek(m.week.AddDate(0, 0, 7))
	case key.Matches(msg, m.keys.Today):
		return m.loadWeek(m.deps.Now())
	case key.Matches(msg, m.keys.GotoWeek):
		m.mode = ModePrompt
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Detail):
		if !m.loaded {
			return m, nil
		}
		if cardAt(m.currentView().Grid, m.cursor) == nil {
			m.statusMsg = "Nothing scheduled here"
			m.statusTime = m.deps.Now().Add(statusDuration)
			return m, clearStatusAfter(statusDuration)
		}
		m.mode = ModeModal
		m.modalType = ModalDetail

	case key.Matches(msg, m.keys.Copy):
		if !m.loaded {
			return m, nil
		}
		return m, commands.Copy(m.deps.Clipboard, view.PlainText(m.currentView()))

	case key.Matches(msg, m.keys.Insight):
		if m.reviewing || !m.loaded {
			return m, nil
		}
		if m.deps.Reviewer == nil {
			return m.Update(commands.ErrMsg{Err: commands.ErrNoReviewer})
		}
		m.reviewing = true
		m.statusMsg = "Reviewing timetable..."
		return m, commands.Review(m.deps.Reviewer, m.currentView())

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeModal
		m.modalType = ModalHelp
	}
	return m, nil
}

// handleModalKeys closes the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Detail),
		key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Help):
		m.mode = ModeNormal
		m.modalType = ModalNone
	case key.Matches(msg, m.keys.Copy) && m.modalType == ModalReview && m.review != nil:
		return m, commands.Copy(m.deps.Clipboard, strings.Join(view.ReviewLines(m.review), "\n"))
	}
	return m, nil
}

// handlePromptKeys handles the go-to-week prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.prompt.Blur()
		week, err := dateutil.ParseWeek(m.prompt.Value(), m.week)
		if err != nil {
			return m.Update(commands.ErrMsg{Err: fmt.Errorf("go to week: %w", err)})
		}
		return m.loadWeek(week)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) loadWeek(t time.Time) (tea.Model, tea.Cmd) {
	if m.deps.Source == nil {
		return m.Update(commands.ErrMsg{Err: errors.New("no data source")})
	}
	monday, _ := dateutil.WeekRange(t)
	m.week = monday
	return m, commands.LoadSnapshot(m.deps.Source, monday)
}

func (m *Model) cycleEntity(delta int) {
	n := m.entityCount()
	if n == 0 {
		return
	}
	m.entity[m.screen] = ((m.entity[m.screen]+delta)%n + n) % n
}
