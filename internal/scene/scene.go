// Package scene loads the chip sets flowbox lays out.
//
// A scene is a list of chips plus an optional layout override. Scenes are
// written in TOML:
//
//	title = "Tags"
//
//	[layout]
//	orientation = "row"
//	max_items = 4
//	main = "space-between"
//
//	[[chip]]
//	text = "golang"
//	align = "center"
//
//	[[chip]]
//	text = "stretch me"
//	weight = 1
//	fill = true
//
// JSON files with the same field names are accepted as well.
package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/treykane/flowbox/internal/config"
	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/logging"
)

var log = logging.New("scene")

// ErrUnsupportedFormat is returned for files that are neither .toml nor .json.
var ErrUnsupportedFormat = errors.New("unsupported scene format")

// Format names a scene encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Chip is one box of a scene.
type Chip struct {
	Key  string `toml:"key,omitempty" json:"key,omitempty"`
	Text string `toml:"text" json:"text"`
	// Weight > 0 shares the line's leftover space with other weighted chips.
	Weight float64 `toml:"weight,omitempty" json:"weight,omitempty"`
	Fill   bool    `toml:"fill,omitempty" json:"fill,omitempty"`
	// Align is start, center or end; empty follows the container.
	Align   string `toml:"align,omitempty" json:"align,omitempty"`
	Padding int    `toml:"padding,omitempty" json:"padding,omitempty"`
	// Border draws a rounded frame; nil means the scene default (framed).
	Border *bool  `toml:"border,omitempty" json:"border,omitempty"`
	Color  string `toml:"color,omitempty" json:"color,omitempty"`
}

// Framed reports whether the chip draws a border.
func (c Chip) Framed() bool {
	return c.Border == nil || *c.Border
}

// Layout overrides configured policy settings. Unset fields keep the
// configured value.
type Layout struct {
	Orientation  string   `toml:"orientation,omitempty" json:"orientation,omitempty"`
	MaxItems     *int     `toml:"max_items,omitempty" json:"max_items,omitempty"`
	Main         string   `toml:"main,omitempty" json:"main,omitempty"`
	Cross        string   `toml:"cross,omitempty" json:"cross,omitempty"`
	Spacing      *float64 `toml:"spacing,omitempty" json:"spacing,omitempty"`
	CrossSpacing *float64 `toml:"cross_spacing,omitempty" json:"cross_spacing,omitempty"`
	Direction    string   `toml:"direction,omitempty" json:"direction,omitempty"`
}

// Apply returns cfg with the layout's set fields copied over.
func (l Layout) Apply(cfg config.Config) config.Config {
	if l.Orientation != "" {
		cfg.Orientation = l.Orientation
	}
	if l.MaxItems != nil {
		cfg.MaxItems = *l.MaxItems
	}
	if l.Main != "" {
		cfg.MainArrangement = l.Main
	}
	if l.Cross != "" {
		cfg.CrossArrangement = l.Cross
	}
	if l.Spacing != nil {
		cfg.Spacing = *l.Spacing
	}
	if l.CrossSpacing != nil {
		cfg.CrossSpacing = *l.CrossSpacing
	}
	if l.Direction != "" {
		cfg.Direction = l.Direction
	}
	return cfg
}

// Scene is a titled chip list.
type Scene struct {
	Title  string `toml:"title,omitempty" json:"title,omitempty"`
	Layout Layout `toml:"layout,omitempty" json:"layout,omitempty"`
	Chips  []Chip `toml:"chip" json:"chips"`
}

// Validate rejects chips the layout engine or the renderer cannot handle and
// fills missing keys with the chip's position.
func (s *Scene) Validate() error {
	for i := range s.Chips {
		chip := &s.Chips[i]
		if chip.Weight < 0 {
			return fmt.Errorf("chip %d: weight must not be negative", i)
		}
		if chip.Padding < 0 {
			return fmt.Errorf("chip %d: padding must not be negative", i)
		}
		if _, err := flow.ParseCrossAlignment(chip.Align); err != nil {
			return fmt.Errorf("chip %d: %w", i, err)
		}
		if chip.Key == "" {
			chip.Key = fmt.Sprintf("chip-%d", i+1)
		}
	}
	return nil
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates the scene at path.
func Load(path string) (Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Scene{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Info("loaded scene", "path", path, "chips", len(s.Chips))
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return Scene{}, fmt.Errorf("parse scene: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return Scene{}, fmt.Errorf("parse scene: %w", err)
		}
	default:
		return Scene{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Encode writes s in the requested format.
func Encode(s Scene, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(s)
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes s to path, choosing the format from the extension.
func Save(path string, s Scene) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(s, format)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	log.Info("saved scene", "path", path, "chips", len(s.Chips))
	return nil
}

// Default is the scene shown when none is configured.
func Default() Scene {
	words := []string{
		"layout", "flow row", "wrapping", "intrinsic sizes", "lookahead",
		"weights", "space between", "rtl", "density", "max items",
		"cross axis", "terminal", "bubbletea", "lipgloss",
	}
	s := Scene{Title: "Flow demo"}
	for _, w := range words {
		s.Chips = append(s.Chips, Chip{Text: w, Padding: 1})
	}
	s.Chips[3].Align = "center"
	s.Chips = append(s.Chips, Chip{Text: "fills the rest", Weight: 1, Fill: true, Padding: 1, Color: "62"})
	_ = s.Validate()
	return s
}
