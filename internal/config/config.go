// Package config loads aquatrack settings from a YAML file, AQUATRACK_*
// environment variables and bound command-line flags, in rising order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	appDir    = "aquatrack"
	envPrefix = "AQUATRACK"
)

// Config is the resolved application configuration.
type Config struct {
	Store StoreConfig
	Goal  GoalConfig
	UI    UIConfig
	Log   LogConfig

	// File is the config file that was read, empty if none.
	File string
}

type StoreConfig struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
}

type GoalConfig struct {
	Dir     string
	Default int
}

type UIConfig struct {
	Toast       time.Duration
	Celebration time.Duration
	Language    string
	Confetti    bool
	Presets     []int
}

type LogConfig struct {
	Level string
	File  string
}

// Dir returns the per-user aquatrack directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := homedir.Dir()
		if herr != nil {
			return appDir
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDir)
}

// New returns a viper instance carrying the defaults and env binding.
func New() *viper.Viper {
	dir := Dir()
	v := viper.New()
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.sqlite_path", filepath.Join(dir, "aquatrack.db"))
	v.SetDefault("store.postgres_dsn", "")
	v.SetDefault("goal.dir", filepath.Join(dir, "goal"))
	v.SetDefault("goal.default", 2000)
	v.SetDefault("ui.toast", 2600*time.Millisecond)
	v.SetDefault("ui.celebration", 4*time.Second)
	v.SetDefault("ui.language", "en")
	v.SetDefault("ui.confetti", true)
	v.SetDefault("ui.presets", []int{250, 500})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "aquatrack.log"))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (or config.yaml from Dir when file is empty) into v and
// returns the validated result. A missing default file is not an error; a
// missing explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Store: StoreConfig{
			Backend:     strings.ToLower(strings.TrimSpace(v.GetString("store.backend"))),
			PostgresDSN: v.GetString("store.postgres_dsn"),
		},
		Goal: GoalConfig{Default: v.GetInt("goal.default")},
		UI: UIConfig{
			Toast:       v.GetDuration("ui.toast"),
			Celebration: v.GetDuration("ui.celebration"),
			Language:    strings.ToLower(strings.TrimSpace(v.GetString("ui.language"))),
			Confetti:    v.GetBool("ui.confetti"),
			Presets:     v.GetIntSlice("ui.presets"),
		},
		Log:  LogConfig{Level: strings.ToLower(v.GetString("log.level"))},
		File: v.ConfigFileUsed(),
	}

	var err error
	if cfg.Store.SQLitePath, err = expand(v.GetString("store.sqlite_path")); err != nil {
		return nil, err
	}
	if cfg.Goal.Dir, err = expand(v.GetString("goal.dir")); err != nil {
		return nil, err
	}
	if cfg.Log.File, err = expand(v.GetString("log.file")); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expand(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return path, nil
	}
	out, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return out, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Goal.Default <= 0 {
		return fmt.Errorf("goal.default must be positive, got %d", c.Goal.Default)
	}
	switch c.UI.Language {
	case "en", "es":
	default:
		return fmt.Errorf("unsupported language %q", c.UI.Language)
	}
	if len(c.UI.Presets) == 0 {
		c.UI.Presets = []int{250, 500}
	}
	for _, p := range c.UI.Presets {
		if p <= 0 {
			return fmt.Errorf("preset amounts must be positive, got %d", p)
		}
	}
	if c.UI.Toast <= 0 {
		c.UI.Toast = 2600 * time.Millisecond
	}
	if c.UI.Celebration <= 0 {
		c.UI.Celebration = 4 * time.Second
	}
	return nil
}
