package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/config"
	"github.com/javiermolinar/horario/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Configuration management.

Without a subcommand, shows the current configuration and offers to
edit it interactively, creating the file with defaults when missing.

Example:
  horario config
  horario config show
  horario config init`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runConfigInteractive(os.Stdin)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "Config file: %s\n\n", config.DefaultConfigPath())
			printConfig(a.out, a.config)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}
			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(a.out, "Created %s\n", path)
			return nil
		},
	})
	return cmd
}

func (a *App) runConfigInteractive(in io.Reader) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(a.out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(a.out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(a.out, "Created %s\n\n", configPath)
	}

	printConfig(a.out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(a.out, reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	editConfig(a.out, reader, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(a.out, "\nConfiguration saved!")
	return nil
}

func editConfig(w io.Writer, reader *bufio.Reader, cfg *config.Config) {
	cfg.Timetable.Days = promptSlice(w, reader, "Timetable days (comma-separated)", cfg.Timetable.Days)
	cfg.Timetable.Slots = promptSlice(w, reader, "Timetable slots (comma-separated HH:MM-HH:MM)", cfg.Timetable.Slots)
	cfg.Evaluations.Days = promptSlice(w, reader, "Evaluation days (comma-separated)", cfg.Evaluations.Days)
	cfg.Evaluations.Slots = promptSlice(w, reader, "Evaluation slots (comma-separated HH:MM-HH:MM)", cfg.Evaluations.Slots)
	cfg.LLM.Provider = promptValue(w, reader, "LLM provider", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(w, reader, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(w, reader, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(w, reader, "Database path", cfg.Storage.DBPath)
	cfg.Server.Addr = promptValue(w, reader, "API listen address", cfg.Server.Addr)
	cfg.UI.Theme = promptTheme(w, reader, cfg.UI.Theme)
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[timetable]")
	fmt.Fprintf(w, "  days          = %s\n", strings.Join(cfg.Timetable.Days, ", "))
	fmt.Fprintf(w, "  slots         = %s\n", strings.Join(cfg.Timetable.Slots, ", "))
	fmt.Fprintln(w, "\n[evaluations]")
	fmt.Fprintf(w, "  days          = %s\n", strings.Join(cfg.Evaluations.Days, ", "))
	fmt.Fprintf(w, "  slots         = %s\n", strings.Join(cfg.Evaluations.Slots, ", "))
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider      = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model         = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url      = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintf(w, "  temperature   = %g\n", cfg.LLM.Temperature)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path       = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr          = %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "  allow_origins = %s\n", strings.Join(cfg.Server.AllowOrigins, ", "))
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level         = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format        = %s\n", cfg.Log.Format)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme         = %s\n", cfg.UI.Theme)
}

func promptYesNo(w io.Writer, reader *bufio.Reader, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(w io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(w io.Writer, reader *bufio.Reader, label string, current []string) []string {
	fmt.Fprintf(w, "  %s [%s]: ", label, strings.Join(current, ", "))
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(w io.Writer, reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(w, reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
