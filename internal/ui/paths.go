package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/javiermolinar/horario/internal/config"
)

var errEmptyPath = errors.New("empty path")

// resolvePath expands ~ and makes path absolute for file arguments.
func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errEmptyPath
	}
	abs, err := filepath.Abs(config.ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}
