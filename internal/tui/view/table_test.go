package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/views"
)

var testAxis = grid.MustParseAxis(
	[]string{"monday", "tuesday"},
	[]string{"08:00-09:00", "09:00-10:00", "10:00-11:00"},
)

func testView() views.View {
	snap := views.Snapshot{
		Catalogs: catalog.New(catalog.Data{
			Subjects: []catalog.Subject{{ID: 1, Name: "Mathematics", Code: "MAT"}, {ID: 2, Name: "Physics", Code: "PHY"}},
			Classes:  []catalog.Class{{ID: 1, Name: "1A"}},
		}),
		Evaluations: []timetable.Evaluation{
			{ID: 1, ClassID: 1, SubjectID: 1, TeacherID: 1, Title: "Midterm", Date: time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local), Start: "08:00", Duration: 2},
			{ID: 2, ClassID: 1, SubjectID: 2, TeacherID: 1, Date: time.Date(2025, 1, 14, 0, 0, 0, 0, time.Local), Start: "10:00", Duration: 1},
		},
	}
	return views.EvaluationPlanner(snap, testAxis, time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local), 0)
}

func TestRenderTableIncludesHeader(t *testing.T) {
	state := TableViewState{
		InnerW:       20,
		GridH:        5,
		Headers:      []string{"Hdr"},
		HeaderStyles: []lipgloss.Style{lipgloss.NewStyle()},
		Content: TableContent{
			Rows:       [][]string{{"Cell"}},
			CellStyles: [][]lipgloss.Style{{lipgloss.NewStyle()}},
		},
		BorderStyle: lipgloss.NewStyle(),
		VAlign:      lipgloss.Top,
		Bg:          lipgloss.Color(""),
		Render:      true,
	}

	out := RenderTable(state)
	if !strings.Contains(out, "Hdr") {
		t.Fatalf("expected header in output: %q", out)
	}

	state.Render = false
	if out := RenderTable(state); out != "" {
		t.Fatalf("expected empty output when not rendering, got %q", out)
	}
}

func TestGridRows(t *testing.T) {
	v := testView()
	rows := GridRows(v.Grid, 0)

	want := [][]string{
		{"08:00-09:00", "MAT (eval)", ""},
		{"09:00-10:00", ContinuationMark, ""},
		{"10:00-11:00", "", "PHY (eval)"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("rows[%d][%d] = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestCellText_Truncates(t *testing.T) {
	v := testView()
	got := CellText(v.Grid, v.Grid.At(0, 0), 5)
	if lipgloss.Width(got) > 5 || !strings.HasSuffix(got, "…") {
		t.Errorf("got %q, want at most 5 columns ending in an ellipsis", got)
	}
}

func TestHeaderLabels(t *testing.T) {
	week := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	today := time.Date(2025, 1, 14, 15, 0, 0, 0, time.Local)

	labels, todayCols := HeaderLabels(testAxis, week, today)
	want := []string{"Jan 25", "Mon 13", "*Tue 14*"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
	if !todayCols[2] || len(todayCols) != 1 {
		t.Errorf("todayCols = %v, want column 2", todayCols)
	}

	labels, _ = HeaderLabels(testAxis, time.Time{}, today)
	if labels[1] != "Mon" || labels[2] != "Tue" {
		t.Errorf("labels without dates = %v", labels)
	}
}

func TestPlainText(t *testing.T) {
	out := PlainText(testView())
	for _, want := range []string{"Evaluations, week of 2025-01-13", "monday", "MAT (eval)", "08:00-09:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain text should carry no escape codes:\n%q", out)
	}
}

func TestReportLines(t *testing.T) {
	v := testView()
	if lines := ReportLines(v); len(lines) != 0 {
		t.Errorf("got %v, want no report lines", lines)
	}

	snap := views.Snapshot{
		Catalogs: catalog.New(catalog.Data{}),
		Lessons: []timetable.Lesson{
			{ID: 1, ClassID: 1, SubjectID: 1, Day: "monday", Start: "08:00"},
			{ID: 2, ClassID: 1, SubjectID: 1, Day: "monday", Start: "08:00"},
			{ID: 3, ClassID: 1, SubjectID: 1, Day: "sunday", Start: "08:00"},
		},
	}
	v = views.ClassTimetable(snap, testAxis, 1)
	lines := ReportLines(v)
	if len(lines) != 2 {
		t.Fatalf("got %v, want 2 lines", lines)
	}
	if !strings.Contains(lines[1], "overlaps") {
		t.Errorf("got %q, want a collision line", lines[1])
	}
}

func TestDetailLines(t *testing.T) {
	v := testView()
	lines := DetailLines(v.Grid.At(0, 0).Card)

	got := map[string]string{}
	for _, kv := range lines {
		got[kv[0]] = kv[1]
	}
	if got["Title"] != "Midterm" {
		t.Errorf("Title = %q", got["Title"])
	}
	if got["When"] != "2025-01-13 monday 08:00-10:00" {
		t.Errorf("When = %q", got["When"])
	}
	if got["Room"] != catalog.NoRoom {
		t.Errorf("Room = %q", got["Room"])
	}
}
