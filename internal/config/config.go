// Package config loads calc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"calc/internal/trace"
)

// FileName is the name searched for by Find.
const FileName = "calc.toml"

// Config mirrors calc.toml. Zero sections are filled from Default.
type Config struct {
	Output OutputConfig `toml:"output"`
	REPL   REPLConfig   `toml:"repl"`
	Batch  BatchConfig  `toml:"batch"`
	Trace  TraceConfig  `toml:"trace"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type OutputConfig struct {
	Color     string `toml:"color"`     // auto|on|off
	Precision int    `toml:"precision"` // -1 = shortest
}

type REPLConfig struct {
	Prompt      string `toml:"prompt"`
	UI          string `toml:"ui"` // auto|on|off
	History     bool   `toml:"history"`
	HistorySize int    `toml:"history_size"`
}

type BatchConfig struct {
	Jobs int `toml:"jobs"` // 0 = GOMAXPROCS
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output: OutputConfig{Color: "auto", Precision: -1},
		REPL:   REPLConfig{Prompt: "> ", UI: "auto", History: true, HistorySize: 500},
		Trace:  TraceConfig{Level: "off", Mode: "stream"},
	}
}

// Find walks up from startDir looking for calc.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if ok, err := exists(candidate); err != nil || ok {
			return candidate, ok, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// UserPath returns $XDG_CONFIG_HOME/calc/calc.toml (or the platform config
// directory when XDG_CONFIG_HOME is unset).
func UserPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(base, "calc", FileName), nil
}

// Discover finds the effective config: calc.toml in startDir or a parent,
// then the user config file, then Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		user, uerr := UserPath()
		if uerr != nil {
			return Default(), nil //nolint:nilerr // нет домашнего каталога, работаем с умолчаниями
		}
		if ok, err = exists(user); err != nil {
			return Config{}, err
		}
		path = user
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads and validates path. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("repl", "prompt") && cfg.REPL.Prompt == "" {
		return Config{}, fmt.Errorf("%s: [repl].prompt must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := checkSwitch("[output].color", c.Output.Color); err != nil {
		return err
	}
	if err := checkSwitch("[repl].ui", c.REPL.UI); err != nil {
		return err
	}
	if c.Output.Precision < -1 || c.Output.Precision > 17 {
		return fmt.Errorf("[output].precision must be between -1 and 17, got %d", c.Output.Precision)
	}
	if c.REPL.HistorySize < 0 {
		return fmt.Errorf("[repl].history_size must not be negative, got %d", c.REPL.HistorySize)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("[batch].jobs must not be negative, got %d", c.Batch.Jobs)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	return nil
}

func checkSwitch(key, v string) error {
	switch v {
	case "auto", "on", "off":
		return nil
	}
	return fmt.Errorf("%s must be auto|on|off, got %q", key, v)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}
