package llm

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoGitHubToken is returned when no GitHub token can be found.
var ErrNoGitHubToken = errors.New("GitHub token not found: set HORARIO_GITHUB_TOKEN or GITHUB_TOKEN, or sign in to GitHub Copilot in your editor")

// githubToken looks for a GitHub OAuth token in HORARIO_GITHUB_TOKEN,
// GITHUB_TOKEN, then the Copilot editor files hosts.json and apps.json.
func githubToken() (string, error) {
	for _, env := range []string{"HORARIO_GITHUB_TOKEN", "GITHUB_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(env)); token != "" {
			return token, nil
		}
	}

	dir, err := configDir()
	if err != nil {
		return "", ErrNoGitHubToken
	}
	for _, name := range []string{"hosts.json", "apps.json"} {
		if token := tokenFromFile(filepath.Join(dir, "github-copilot", name)); token != "" {
			return token, nil
		}
	}
	return "", ErrNoGitHubToken
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return local, nil
		}
		return filepath.Join(home, "AppData", "Local"), nil
	}
	return filepath.Join(home, ".config"), nil
}

// tokenFromFile returns the oauth_token of the first github.com entry in a
// Copilot config file, or "".
func tokenFromFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var hosts map[string]struct {
		OAuthToken string `json:"oauth_token"`
	}
	if err := json.Unmarshal(data, &hosts); err != nil {
		return ""
	}
	for host, entry := range hosts {
		if strings.Contains(host, "github.com") && entry.OAuthToken != "" {
			return entry.OAuthToken
		}
	}
	return ""
}
