package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the timetable browser.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextScreen key.Binding
	PrevEntity key.Binding
	NextEntity key.Binding
	PrevWeek   key.Binding
	NextWeek   key.Binding
	GotoWeek   key.Binding
	Today      key.Binding
	Detail     key.Binding
	Copy       key.Binding
	Insight    key.Binding
	Help       key.Binding
	Close      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next day"),
		),
		NextScreen: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "class/teacher/evaluations"),
		),
		PrevEntity: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous"),
		),
		NextEntity: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("p", "H"),
			key.WithHelp("p", "previous week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("n", "L"),
			key.WithHelp("n", "next week"),
		),
		GotoWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "go to week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this week"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Insight: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "review"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScreen, k.PrevEntity, k.NextEntity, k.PrevWeek, k.NextWeek, k.Detail, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextScreen, k.PrevEntity, k.NextEntity},
		{k.PrevWeek, k.NextWeek, k.GotoWeek, k.Today},
		{k.Detail, k.Copy, k.Insight, k.Help, k.Quit},
	}
}
