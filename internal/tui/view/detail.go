package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/llm"
)

// DetailLines describes one card, label then value.
func DetailLines(c *catalog.Card) [][2]string {
	lines := [][2]string{
		{"Subject", c.Subject + " (" + c.SubjectCode + ")"},
	}
	if c.Title != c.Subject {
		lines = append(lines, [2]string{"Title", c.Title})
	}
	lines = append(lines,
		[2]string{"Teacher", c.Teacher},
		[2]string{"Class", c.Class},
		[2]string{"Room", c.Room},
	)
	when := c.Day + " " + c.Start + "-" + c.End
	if c.Date != "" {
		when = c.Date + " " + when
	}
	lines = append(lines, [2]string{"When", when})
	return lines
}

// ReviewLines formats a review for a modal.
func ReviewLines(r *llm.Review) []string {
	lines := []string{r.Summary}
	if len(r.Warnings) > 0 {
		lines = append(lines, "")
		for _, w := range r.Warnings {
			lines = append(lines, "! "+w)
		}
	}
	if len(r.Suggestions) > 0 {
		lines = append(lines, "")
		for _, s := range r.Suggestions {
			lines = append(lines, "> "+s)
		}
	}
	return lines
}

// ModalStyles styles a modal box.
type ModalStyles struct {
	Box   lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Text  lipgloss.Style
	Hint  lipgloss.Style
}

// RenderModal draws a titled box around body with a hint line.
func RenderModal(styles ModalStyles, title string, body []string, hint string, maxWidth int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n\n")
	for _, line := range body {
		sb.WriteString(styles.Text.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Hint.Render(hint))

	box := styles.Box
	if maxWidth > 4 {
		box = box.MaxWidth(maxWidth)
	}
	return box.Render(sb.String())
}

// RenderDetail draws the detail modal of one card.
func RenderDetail(styles ModalStyles, c *catalog.Card, maxWidth int) string {
	var body []string
	for _, kv := range DetailLines(c) {
		body = append(body, styles.Label.Render(kv[0]+": ")+kv[1])
	}
	return RenderModal(styles, c.Title, body, "esc close", maxWidth)
}
