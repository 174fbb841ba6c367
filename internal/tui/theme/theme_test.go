package theme

import (
	"errors"
	"slices"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bundled", in: "latte", want: "latte"},
		{name: "case and spaces", in: "  Frappe ", want: "frappe"},
		{name: "empty", in: "", want: DefaultName},
		{name: "unknown", in: "solarized", want: DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := Load(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if th.Name != tt.want {
				t.Errorf("got %q, want %q", th.Name, tt.want)
			}
		})
	}
}

func TestLoad_EveryBundledTheme(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(name); err != nil {
				t.Errorf("loading %q: %v", name, err)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	want := []string{"frappe", "latte", "light", "macchiato", "mocha"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !IsAvailable("MOCHA") {
		t.Error("IsAvailable should ignore case")
	}
	if IsAvailable("dracula") {
		t.Error("dracula is not bundled")
	}
}

func TestParse_Defaults(t *testing.T) {
	data := []byte(`
bg = "#101010"
fg = "#eeeeee"
accent = "#ff00ff"
`)
	th, err := parse("minimal", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct{ field, got, want string }{
		{"name", th.Name, "minimal"},
		{"bg_highlight", th.BgHighlight, "#101010"},
		{"bg_selection", th.BgSelection, "#101010"},
		{"fg_muted", th.FgMuted, "#eeeeee"},
		{"lesson", th.Lesson, "#ff00ff"},
		{"evaluation", th.Evaluation, "#ff00ff"},
		{"warning", th.Warning, "#ff00ff"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.field, c.got, c.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "bad color", data: "bg = \"navy\"\nfg = \"#ffffff\"\naccent = \"#ff0000\"\n", wantErr: ErrInvalidColor},
		{name: "missing accent", data: "bg = \"#000000\"\nfg = \"#ffffff\"\n", wantErr: ErrInvalidColor},
		{name: "not toml", data: "bg = [", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.name, []byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}
