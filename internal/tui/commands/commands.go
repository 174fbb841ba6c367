// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/views"
)

// ErrNoReviewer is returned when a review is asked for without an LLM.
var ErrNoReviewer = errors.New("no LLM configured")

// SnapshotLoadedMsg is sent when the data of a week is loaded.
type SnapshotLoadedMsg struct {
	Snapshot views.Snapshot
	Week     time.Time // Monday
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ReviewMsg carries a finished review.
type ReviewMsg struct {
	Review *llm.Review
}

// LoadSnapshot loads lessons, catalogs and the evaluations of the week
// containing week.
func LoadSnapshot(src views.Source, week time.Time) tea.Cmd {
	return func() tea.Msg {
		monday, sunday := dateutil.WeekRange(week)
		snap, err := views.LoadSnapshot(context.Background(), src, monday, sunday)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SnapshotLoadedMsg{Snapshot: snap, Week: monday}
	}
}

// Review builds a reviewer with newReviewer and asks it about v.
// A nil newReviewer fails with ErrNoReviewer.
func Review(newReviewer func() (*llm.Reviewer, error), v views.View) tea.Cmd {
	return func() tea.Msg {
		if newReviewer == nil {
			return ErrMsg{Err: ErrNoReviewer}
		}
		reviewer, err := newReviewer()
		if err != nil {
			return ErrMsg{Err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		review, err := reviewer.Review(ctx, v)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ReviewMsg{Review: review}
	}
}

// Copy writes text with write, usually the system clipboard.
func Copy(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied to clipboard"}
	}
}
