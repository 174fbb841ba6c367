package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/views"
)

type fakeClient struct {
	reply    string
	err      error
	messages []Message
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(extractJSON(content)), result)
}

var axis = grid.MustParseAxis(
	[]string{"monday", "tuesday"},
	[]string{"08:00-09:00", "09:00-10:00", "10:00-11:00"},
)

func testView() views.View {
	snap := views.Snapshot{
		Catalogs: catalog.New(catalog.Data{
			Subjects: []catalog.Subject{{ID: 1, Name: "Mathematics", Code: "MAT"}},
			Classes:  []catalog.Class{{ID: 1, Name: "1A"}},
		}),
		Lessons: []timetable.Lesson{
			{ID: 1, ClassID: 1, SubjectID: 1, TeacherID: 1, Day: "monday", Start: "08:00"},
			{ID: 2, ClassID: 1, SubjectID: 1, TeacherID: 1, Day: "monday", Start: "09:00"},
			{ID: 3, ClassID: 1, SubjectID: 1, TeacherID: 1, Day: "tuesday", Start: "10:00"},
		},
	}
	return views.ClassTimetable(snap, axis, 1)
}

func TestLoads(t *testing.T) {
	a := grid.MustParseAxis([]string{"monday"}, []string{"08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00"})
	date := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	cards := []catalog.Card{
		catalog.New(catalog.Data{}).Enrich(timetable.Lesson{ID: 1, Day: "monday", Start: "08:00"}),
		catalog.New(catalog.Data{}).Enrich(timetable.Evaluation{ID: 2, Date: date, Start: "10:00", Duration: 2}),
	}
	g, _ := grid.Build(a, cards)

	loads := Loads(g)
	want := DayLoad{Day: "monday", Busy: 3, Free: 1, Evaluations: 1, LongestRun: 2}
	if len(loads) != 1 || loads[0] != want {
		t.Errorf("got %+v, want %+v", loads, want)
	}
}

func TestReviewer_Review(t *testing.T) {
	client := &fakeClient{reply: "```json\n" + `{"summary": " Monday is front loaded. ", "warnings": ["two lessons in a row"], "suggestions": []}` + "\n```"}

	review, err := NewReviewer(client).Review(context.Background(), testView())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Summary != "Monday is front loaded." {
		t.Errorf("got summary %q", review.Summary)
	}
	if len(review.Warnings) != 1 {
		t.Errorf("got warnings %v", review.Warnings)
	}

	if len(client.messages) != 2 || client.messages[0].Role != RoleSystem {
		t.Fatalf("got messages %+v", client.messages)
	}
	prompt := client.messages[1].Content
	for _, want := range []string{
		"Timetable of 1A",
		"08:00-09:00  MAT  Mathematics  1A",
		"- monday: 2 busy, 1 free, longest run 2, 0 evaluations",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestReviewer_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		view    views.View
		client  *fakeClient
		wantErr error
	}{
		{
			name:    "empty timetable",
			view:    views.ClassTimetable(views.Snapshot{}, axis, 1),
			client:  &fakeClient{},
			wantErr: ErrEmptyTimetable,
		},
		{
			name:    "client failure",
			view:    testView(),
			client:  &fakeClient{err: boom},
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReviewer(tt.client).Review(context.Background(), tt.view)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}
