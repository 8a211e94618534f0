package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/aquatrack/internal/config"
	"github.com/sadopc/aquatrack/internal/notify"
	"github.com/sadopc/aquatrack/internal/tui"
)

func runTUI(cmd *cobra.Command, o *rootOptions) error {
	cfg := o.cfg

	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	hide, hidden := tui.NewToastRelay()
	toasts := notify.New(cfg.UI.Toast, hide)
	defer toasts.Close()

	s, err := openSession(cmd.Context(), cfg, toasts, logFile)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s.ctrl, toasts, tui.Options{
		Language:    cfg.UI.Language,
		Confetti:    cfg.UI.Confetti,
		Presets:     cfg.UI.Presets,
		Settings:    settingsRows(cfg),
		ToastHidden: hidden,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// settingsRows lists the effective configuration for the settings view.
func settingsRows(cfg *config.Config) []tui.Setting {
	location := cfg.Store.SQLitePath
	if cfg.Store.Backend == config.BackendPostgres {
		location = redactDSN(cfg.Store.PostgresDSN)
	}
	presets := make([]string, len(cfg.UI.Presets))
	for i, p := range cfg.UI.Presets {
		presets[i] = strconv.Itoa(p)
	}
	file := cfg.File
	if file == "" {
		file = "(defaults)"
	}
	return []tui.Setting{
		{Key: "Store", Value: cfg.Store.Backend},
		{Key: "Location", Value: location},
		{Key: "Goal directory", Value: cfg.Goal.Dir},
		{Key: "Language", Value: cfg.UI.Language},
		{Key: "Quick add", Value: strings.Join(presets, ", ") + " ml"},
		{Key: "Toast", Value: cfg.UI.Toast.String()},
		{Key: "Celebration", Value: cfg.UI.Celebration.String()},
		{Key: "Confetti", Value: strconv.FormatBool(cfg.UI.Confetti)},
		{Key: "Log file", Value: cfg.Log.File},
		{Key: "Config file", Value: file},
	}
}

// redactDSN hides the password of a postgres URL.
func redactDSN(dsn string) string {
	if dsn == "" {
		return "(default)"
	}
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	if user, _, hasPass := strings.Cut(creds, ":"); hasPass {
		return scheme + "://" + user + ":***@" + host
	}
	return dsn
}
