// Package config loads the taskflow settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/balkashynov/taskflow/internal/kv"
	"github.com/balkashynov/taskflow/internal/models"
)

const (
	DefaultDirName        = ".taskflow"
	DefaultConfigFileName = "config.toml"
	DefaultSQLiteName     = "taskflow.db"
	DefaultFileName       = "tasks.json"
)

// Keymap binds TUI actions to keys. Multiple keys are comma separated.
type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Edit          string `toml:"edit"`
	Search        string `toml:"search"`
	Export        string `toml:"export"`
	Import        string `toml:"import"`
	Copy          string `toml:"copy"`
	ClearFilters  string `toml:"clear_filters"`
	CyclePriority string `toml:"cycle_priority"`
	CycleStatus   string `toml:"cycle_status"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
}

type Config struct {
	Storage               string `toml:"storage"`
	DBPath                string `toml:"db_path"`
	LogLevel              string `toml:"log_level"`
	DateLayout            string `toml:"date_layout"`
	NotificationSeconds   int    `toml:"notification_seconds"`
	DefaultPriorityFilter string `toml:"default_priority_filter"`
	DefaultStatusFilter   string `toml:"default_status_filter"`
	Keys                  Keymap `toml:"keys"`
}

// DefaultDir is ~/.taskflow
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// DefaultPath is ~/.taskflow/config.toml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFileName), nil
}

// LoadOrCreate reads the config at path, writing the defaults first if the
// file does not exist yet
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Storage:               kv.BackendSQLite,
		LogLevel:              "warn",
		DateLayout:            "02/01/2006",
		NotificationSeconds:   3,
		DefaultPriorityFilter: models.FilterAll,
		DefaultStatusFilter:   models.FilterAll,
		Keys: Keymap{
			Quit:          "q,ctrl+c",
			Add:           "n",
			Up:            "up,k",
			Down:          "down,j",
			Toggle:        " ",
			Delete:        "d",
			Edit:          "e",
			Search:        "/",
			Export:        "ctrl+e",
			Import:        "i",
			Copy:          "y",
			ClearFilters:  "esc",
			CyclePriority: "p",
			CycleStatus:   "s",
			Confirm:       "y,Y,enter",
			Cancel:        "n,N,esc,q",
		},
	}
}

// resolve fills blanks and makes the storage path absolute relative to dir
func (c Config) resolve(dir string) Config {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage == "" {
		c.Storage = kv.BackendSQLite
	}
	if c.DBPath == "" {
		c.DBPath = DefaultStoragePath(dir, c.Storage)
	} else if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.NotificationSeconds <= 0 {
		c.NotificationSeconds = 3
	}
	return c
}

// DefaultStoragePath is the data file for backend inside dir
func DefaultStoragePath(dir, backend string) string {
	if backend == kv.BackendFile {
		return filepath.Join(dir, DefaultFileName)
	}
	return filepath.Join(dir, DefaultSQLiteName)
}

// NotificationDuration is how long notifications stay visible
func (c Config) NotificationDuration() time.Duration {
	return time.Duration(c.NotificationSeconds) * time.Second
}

// Filter is the filter the UI starts with
func (c Config) Filter() (models.Filter, error) {
	return models.ParseFilter(c.DefaultPriorityFilter, c.DefaultStatusFilter)
}

// Bindings splits a comma separated key list
func Bindings(keys string) []string {
	if keys == " " {
		return []string{" "}
	}
	var out []string
	for _, k := range strings.Split(keys, ",") {
		if k == " " {
			out = append(out, k)
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
