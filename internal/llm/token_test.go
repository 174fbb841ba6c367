package llm

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeCopilotFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, "github-copilot", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestGitHubToken(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		files   map[string]string
		want    string
		wantErr error
	}{
		{
			name: "own variable first",
			env:  map[string]string{"HORARIO_GITHUB_TOKEN": "own", "GITHUB_TOKEN": "shared"},
			want: "own",
		},
		{
			name: "GITHUB_TOKEN",
			env:  map[string]string{"GITHUB_TOKEN": "shared"},
			want: "shared",
		},
		{
			name:  "hosts file",
			files: map[string]string{"hosts.json": `{"github.com": {"user": "ada", "oauth_token": "from-hosts"}}`},
			want:  "from-hosts",
		},
		{
			name: "apps file when hosts is broken",
			files: map[string]string{
				"hosts.json": `not json`,
				"apps.json":  `{"github.com:Iv1.abc": {"oauth_token": "from-apps"}}`,
			},
			want: "from-apps",
		},
		{
			name:    "nothing",
			files:   map[string]string{"hosts.json": `{"gitlab.com": {"oauth_token": "nope"}}`},
			wantErr: ErrNoGitHubToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", dir)
			t.Setenv("HORARIO_GITHUB_TOKEN", "")
			t.Setenv("GITHUB_TOKEN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			for name, body := range tt.files {
				writeCopilotFile(t, dir, name, body)
			}

			got, err := githubToken()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExchangeToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Token good":
			_, _ = w.Write([]byte(`{"token": "bearer-123", "expires_at": 1700000000}`))
		case "Token empty":
			_, _ = w.Write([]byte(`{}`))
		default:
			http.Error(w, "bad credentials", http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	got, err := exchangeToken(srv.Client(), srv.URL, "good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "bearer-123" {
		t.Errorf("got %q, want bearer-123", got)
	}

	for _, token := range []string{"bad", "empty"} {
		if _, err := exchangeToken(srv.Client(), srv.URL, token); !errors.Is(err, ErrTokenExchange) {
			t.Errorf("token %q: got error %v, want %v", token, err, ErrTokenExchange)
		}
	}
}
