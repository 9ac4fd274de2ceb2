package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// NOTE: the agenda itself is never persisted. This file only covers the
// user's preferences, created with defaults on first run.

// ThemeConfig holds lipgloss colour strings (ANSI index or "#RRGGBB").
type ThemeConfig struct {
	Accent string `yaml:"accent" json:"accent"`
	Muted  string `yaml:"muted" json:"muted"`
	Error  string `yaml:"error" json:"error"`
}

// Config is the top-level application configuration.
type Config struct {
	// WeekStart controls which weekday is treated as the first column of
	// the date picker. Supported values:
	//   - "monday" (default)
	//   - "sunday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFile receives log output while the UI is running. Empty disables
	// logging during the session.
	LogFile string `yaml:"log_file" json:"log_file"`

	// ExportPath is where ctrl+e writes the ICS snapshot.
	ExportPath string `yaml:"export_path" json:"export_path"`

	// ConfirmDelete asks before removing the selected event.
	ConfirmDelete *bool `yaml:"confirm_delete,omitempty" json:"confirm_delete,omitempty"`

	Theme ThemeConfig `yaml:"theme" json:"theme"`
}

const (
	defaultWeekStart  = "monday"
	defaultLogLevel   = "info"
	defaultExportPath = "agenda.ics"
	defaultAccent     = "62"
	defaultMuted      = "241"
	defaultError      = "196"
)

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	confirm := true
	return &Config{
		WeekStart:     defaultWeekStart,
		LogLevel:      defaultLogLevel,
		LogFile:       "",
		ExportPath:    defaultExportPath,
		ConfirmDelete: &confirm,
		Theme: ThemeConfig{
			Accent: defaultAccent,
			Muted:  defaultMuted,
			Error:  defaultError,
		},
	}
}

// DefaultPath returns the per-user config location, falling back to the
// working directory when no user config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "agenda.yaml"
	}
	return filepath.Join(dir, "agenda", "config.yaml")
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	switch c.WeekStart {
	case "monday", "sunday":
		// ok
	default:
		// Unknown value; fall back to monday to avoid surprising layouts.
		c.WeekStart = defaultWeekStart
	}

	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		c.LogLevel = defaultLogLevel
	}

	if c.ExportPath == "" {
		c.ExportPath = defaultExportPath
	}
	if c.ConfirmDelete == nil {
		confirm := true
		c.ConfirmDelete = &confirm
	}
	if c.Theme.Accent == "" {
		c.Theme.Accent = defaultAccent
	}
	if c.Theme.Muted == "" {
		c.Theme.Muted = defaultMuted
	}
	if c.Theme.Error == "" {
		c.Theme.Error = defaultError
	}
}

// FirstWeekday returns WeekStart as a time.Weekday.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// ShouldConfirmDelete reports whether deletion needs an explicit yes.
func (c *Config) ShouldConfirmDelete() bool {
	return c.ConfirmDelete == nil || *c.ConfirmDelete
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, ".agenda-config-*.tmp", data)
}

// WriteFileAtomic writes data next to path in a temp file and renames it
// over path, leaving the final file with 0600 permissions.
func WriteFileAtomic(path, pattern string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
