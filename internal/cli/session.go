package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"github.com/sadopc/aquatrack/internal/config"
	"github.com/sadopc/aquatrack/internal/goal"
	"github.com/sadopc/aquatrack/internal/hydration"
	"github.com/sadopc/aquatrack/internal/notify"
	"github.com/sadopc/aquatrack/internal/store"
	"github.com/sadopc/aquatrack/internal/store/postgres"
)

// logStore is a hydration.LogStore that owns a connection.
type logStore interface {
	hydration.LogStore
	Close() error
}

// profileWriter is implemented by stores that keep a profile record.
type profileWriter interface {
	SaveProfile(ctx context.Context, p store.Profile) error
}

// openStore is swapped in tests.
var openStore = func(ctx context.Context, cfg config.StoreConfig) (logStore, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		s, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := store.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// session is one controller bound to an open store.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	store  logStore
	goals  *goal.Store
	ctrl   *hydration.Controller
}

// openSession opens the configured store and builds a controller that
// reports notices to n. Logs go to logw.
func openSession(ctx context.Context, cfg *config.Config, n hydration.Notifier, logw io.Writer) (*session, error) {
	logger := newLogger(cfg.Log, logw)

	ls, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	goals := goal.Open(cfg.Goal.Dir, cfg.Goal.Default)
	msgs := hydration.MessagesFor(cfg.UI.Language)
	ctrl := hydration.New(ls, goals, n, hydration.Options{
		Logger:      logger,
		Messages:    &msgs,
		Celebration: cfg.UI.Celebration,
	})

	logger.Debug("session opened", "backend", cfg.Store.Backend, "goal", goals.Get())
	return &session{cfg: cfg, logger: logger, store: ls, goals: goals, ctrl: ctrl}, nil
}

func (s *session) Close() error {
	s.ctrl.Close()
	return s.store.Close()
}

func newLogger(cfg config.LogConfig, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "aquatrack",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if lvl, err := log.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// openLogFile opens the TUI log file for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// printNotifier writes notices as colored lines.
type printNotifier struct {
	w io.Writer
}

func (p printNotifier) Notify(n notify.Notice) {
	_, _ = noticeColor(n.Kind).Fprintln(p.w, n.Text)
}

func noticeColor(k notify.Kind) *color.Color {
	switch k {
	case notify.KindSuccess:
		return color.New(color.FgGreen)
	case notify.KindError:
		return color.New(color.FgRed, color.Bold)
	case notify.KindCelebrate:
		return color.New(color.FgHiCyan, color.Bold)
	}
	return color.New(color.FgBlue)
}
