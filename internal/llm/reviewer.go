package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/views"
)

// ErrEmptyTimetable is returned when there is nothing to review.
var ErrEmptyTimetable = errors.New("timetable has no placed entries")

const reviewerSystemPrompt = `You are a school timetabling assistant. You review weekly timetables for workload balance. Answer with JSON only, no markdown.`

const reviewPromptTemplate = `Review this weekly timetable.

%s

Per day load:
%s

Return exactly this JSON:
{
  "summary": "one sentence, under 100 characters",
  "warnings": ["string"],
  "suggestions": ["string"]
}

Rules:
- Warn about days with no free slot, long unbroken runs and evaluations stacked on one day.
- Suggestions must name a day and a time.
- Use empty arrays when there is nothing to say.`

// Review is the model's reading of a timetable.
type Review struct {
	Summary     string   `json:"summary"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// DayLoad counts the occupied slots of one day.
type DayLoad struct {
	Day         string
	Busy        int
	Free        int
	Evaluations int
	LongestRun  int // consecutive occupied slots, breaks between slots included
}

// Loads summarizes every day of the grid.
func Loads(g *grid.Grid) []DayLoad {
	a := g.Axis()
	loads := make([]DayLoad, a.NumDays())
	for day := range loads {
		l := DayLoad{Day: a.Day(day)}
		run := 0
		for slot := 0; slot < a.NumSlots(); slot++ {
			c := g.At(day, slot)
			if c.Kind == grid.CellEmpty {
				l.Free++
				run = 0
				continue
			}
			l.Busy++
			run++
			l.LongestRun = max(l.LongestRun, run)
			if c.Kind == grid.CellOrigin && c.Card.Kind == timetable.KindEvaluation {
				l.Evaluations++
			}
		}
		loads[day] = l
	}
	return loads
}

// Reviewer asks a chat model to review rendered timetables.
type Reviewer struct {
	client Client
}

// NewReviewer creates a Reviewer backed by client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// Review sends v to the model and parses its answer.
func (r *Reviewer) Review(ctx context.Context, v views.View) (*Review, error) {
	if v.Grid == nil || len(v.Grid.Placed()) == 0 {
		return nil, ErrEmptyTimetable
	}

	prompt := fmt.Sprintf(reviewPromptTemplate, formatView(v), formatLoads(Loads(v.Grid)))

	var review Review
	err := r.client.ChatJSON(ctx, []Message{
		{Role: RoleSystem, Content: reviewerSystemPrompt},
		{Role: RoleUser, Content: prompt},
	}, &review)
	if err != nil {
		return nil, fmt.Errorf("reviewing timetable: %w", err)
	}
	review.Summary = strings.TrimSpace(review.Summary)
	return &review, nil
}

// formatView lists the placed entries of v, one line each, day by day.
func formatView(v views.View) string {
	var sb strings.Builder
	sb.WriteString(v.Title)
	sb.WriteString("\n")

	a := v.Grid.Axis()
	for day := 0; day < a.NumDays(); day++ {
		fmt.Fprintf(&sb, "\n%s\n", a.Day(day))
		empty := true
		for slot := 0; slot < a.NumSlots(); slot++ {
			c := v.Grid.At(day, slot)
			if c.Kind != grid.CellOrigin {
				continue
			}
			empty = false
			sb.WriteString("  ")
			sb.WriteString(formatCard(c.Card))
			sb.WriteString("\n")
		}
		if empty {
			sb.WriteString("  (free)\n")
		}
	}
	return sb.String()
}

func formatCard(c *catalog.Card) string {
	line := fmt.Sprintf("%s-%s  %s  %s  %s  %s", c.Start, c.End, c.Label(), c.Subject, c.Class, c.Teacher)
	if c.Title != c.Subject {
		line += "  \"" + c.Title + "\""
	}
	return line
}

func formatLoads(loads []DayLoad) string {
	var sb strings.Builder
	for _, l := range loads {
		fmt.Fprintf(&sb, "- %s: %d busy, %d free, longest run %d, %d evaluations\n",
			l.Day, l.Busy, l.Free, l.LongestRun, l.Evaluations)
	}
	return strings.TrimRight(sb.String(), "\n")
}
