package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Column width bounds accepted by the board renderer.
const (
	MinColumnWidth = 16
	MaxColumnWidth = 80
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Boards   BoardsConfig   `toml:"boards"`
	UI       UIConfig       `toml:"ui"`
	Keys     KeyConfig      `toml:"keys"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

// DevFileConfig controls the logfmt file sink used in dev mode. An empty Dir
// falls back to the platform log directory.
type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type BoardsConfig struct {
	Defaults []string `toml:"defaults"`
}

type UIConfig struct {
	ConfirmDelete bool `toml:"confirm_delete"`
	ShowCounts    bool `toml:"show_counts"`
	ColumnWidth   int  `toml:"column_width"`
}

type KeyConfig struct {
	Grab      string `toml:"grab"`
	BoardMenu string `toml:"board_menu"`
	Copy      string `toml:"copy"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
			},
		},
		Boards: BoardsConfig{
			Defaults: []string{"To Do", "Doing", "Done"},
		},
		UI: UIConfig{
			ConfirmDelete: true,
			ShowCounts:    true,
			ColumnWidth:   28,
		},
		Keys: KeyConfig{
			Grab:      " ",
			BoardMenu: "m",
			Copy:      "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	c.Database.Path = strings.TrimSpace(c.Database.Path)
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	level := strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if !slices.Contains([]string{"debug", "info", "warn", "error", "fatal"}, level) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	seen := map[string]struct{}{}
	for idx, name := range c.Boards.Defaults {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("boards.defaults[%d] is blank", idx)
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("boards.defaults[%d] is duplicated: %s", idx, name)
		}
		seen[key] = struct{}{}
	}

	if c.UI.ColumnWidth < MinColumnWidth || c.UI.ColumnWidth > MaxColumnWidth {
		return fmt.Errorf("ui.column_width must be between %d and %d", MinColumnWidth, MaxColumnWidth)
	}

	keys := map[string]string{
		"keys.grab":       c.Keys.Grab,
		"keys.board_menu": c.Keys.BoardMenu,
		"keys.copy":       c.Keys.Copy,
	}
	bound := map[string]string{}
	for _, field := range []string{"keys.grab", "keys.board_menu", "keys.copy"} {
		key := keys[field]
		if key == "" {
			return fmt.Errorf("%s is required", field)
		}
		if other, ok := bound[key]; ok {
			return fmt.Errorf("%s conflicts with %s: %q", field, other, key)
		}
		bound[key] = field
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
