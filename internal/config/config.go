package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/logging"
)

const (
	configDirName  = ".flowbox"
	configFileName = "config.json"
)

const (
	DefaultGlamourStyle = "dark"
	DefaultArrangement  = "start"
)

var log = logging.New("config")

var ErrNotConfigured = errors.New("flowbox is not configured")

// Config stores the user's default layout settings. Command-line flags
// override every field.
type Config struct {
	// Orientation is "row" or "column".
	Orientation string `json:"orientation"`
	// MaxItems is the per-line item limit; 0 means unbounded.
	MaxItems         int     `json:"max_items"`
	MainArrangement  string  `json:"main_arrangement"`
	CrossArrangement string  `json:"cross_arrangement"`
	Spacing          float64 `json:"spacing"`
	CrossSpacing     float64 `json:"cross_spacing"`
	// Direction is "ltr" or "rtl".
	Direction    string `json:"direction"`
	ScenePath    string `json:"scene_path,omitempty"`
	GlamourStyle string `json:"glamour_style"`
	// Keybindings maps UI action names to keys, replacing the defaults for
	// the actions it names.
	Keybindings map[string]string `json:"keybindings,omitempty"`
}

// Default returns the settings used before anything is configured.
func Default() Config {
	return Config{
		Orientation:      flow.Horizontal.String(),
		MainArrangement:  DefaultArrangement,
		CrossArrangement: DefaultArrangement,
		Direction:        flow.LTR.String(),
		GlamourStyle:     DefaultGlamourStyle,
	}
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path %s: %w", path, err)
}

// Load reads and normalizes the saved configuration.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	log.Debug("loaded config", "path", path)
	return cfg, nil
}

// LoadOrDefault is Load with ErrNotConfigured mapped to Default.
func LoadOrDefault() (Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotConfigured) {
		return Default(), nil
	}
	return cfg, err
}

// Save normalizes cfg and writes it to disk.
func Save(cfg Config) error {
	if err := cfg.Normalize(); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// Normalize fills defaults, lower-cases names and rejects values the layout
// engine cannot use.
func (c *Config) Normalize() error {
	def := Default()
	c.Orientation = lowerOr(c.Orientation, def.Orientation)
	c.Direction = lowerOr(c.Direction, def.Direction)
	c.MainArrangement = lowerOr(c.MainArrangement, def.MainArrangement)
	c.CrossArrangement = lowerOr(c.CrossArrangement, def.CrossArrangement)
	c.GlamourStyle = lowerOr(c.GlamourStyle, def.GlamourStyle)

	if c.Orientation != "row" && c.Orientation != "column" {
		return fmt.Errorf("invalid orientation %q: want row or column", c.Orientation)
	}
	if c.Direction != "ltr" && c.Direction != "rtl" {
		return fmt.Errorf("invalid direction %q: want ltr or rtl", c.Direction)
	}
	if c.MaxItems < 0 {
		return fmt.Errorf("invalid max_items %d: must not be negative", c.MaxItems)
	}
	if c.Spacing < 0 || c.CrossSpacing < 0 {
		return errors.New("invalid spacing: must not be negative")
	}
	if _, err := flow.ParseArrangement(c.MainArrangement, 0); err != nil {
		return fmt.Errorf("invalid main_arrangement: %w", err)
	}
	if _, err := flow.ParseArrangement(c.CrossArrangement, 0); err != nil {
		return fmt.Errorf("invalid cross_arrangement: %w", err)
	}

	if strings.TrimSpace(c.ScenePath) != "" {
		scene, err := NormalizePath(c.ScenePath)
		if err != nil {
			return fmt.Errorf("invalid scene_path: %w", err)
		}
		c.ScenePath = scene
	} else {
		c.ScenePath = ""
	}
	return nil
}

// Policy builds the flow policy described by c.
func (c Config) Policy() (flow.Policy, error) {
	mainArr, err := flow.ParseArrangement(c.MainArrangement, c.Spacing)
	if err != nil {
		return flow.Policy{}, err
	}
	crossArr, err := flow.ParseArrangement(c.CrossArrangement, c.CrossSpacing)
	if err != nil {
		return flow.Policy{}, err
	}
	maxItems := c.MaxItems
	if maxItems == 0 {
		maxItems = flow.Unbounded
	}

	var p flow.Policy
	if strings.EqualFold(c.Orientation, "column") {
		p = flow.NewColumnPolicy(mainArr, crossArr, maxItems)
	} else {
		p = flow.NewRowPolicy(mainArr, crossArr, maxItems)
	}
	if strings.EqualFold(c.Direction, "rtl") {
		p.Direction = flow.RTL
	}
	return p, nil
}

// NormalizePath expands ~ and returns a clean absolute path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}

func lowerOr(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}
