// Package config loads gridview settings from YAML or TOML files and turns
// them into grid options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/grid"
)

var (
	// ErrUnknownFormat is returned by Load for a file extension other than
	// .yaml, .yml or .toml.
	ErrUnknownFormat = errors.New("config: unknown file format")
	// ErrInvalid is wrapped by every validation error.
	ErrInvalid = errors.New("config: invalid")
)

// Config is the complete gridview configuration.
type Config struct {
	Style    string          `yaml:"style" toml:"style"`
	Viewport ViewportSection `yaml:"viewport" toml:"viewport"`
	Timing   TimingSection   `yaml:"timing" toml:"timing"`
	Scroll   ScrollSection   `yaml:"scroll" toml:"scroll"`
	Ingest   IngestSection   `yaml:"ingest" toml:"ingest"`
	Terminal TerminalSection `yaml:"terminal" toml:"terminal"`
	Snapshot SnapshotSection `yaml:"snapshot" toml:"snapshot"`
	Logging  LoggingSection  `yaml:"logging" toml:"logging"`
}

// ViewportSection is the grid geometry in logical units.
type ViewportSection struct {
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	ViewHeight float64 `yaml:"view_height" toml:"view_height"`
	ViewWidth  float64 `yaml:"view_width" toml:"view_width"`
	Padding    float64 `yaml:"padding" toml:"padding"`
}

// TimingSection holds the input-rate limits. Zero keeps the grid default.
type TimingSection struct {
	WheelThrottle   Duration `yaml:"wheel_throttle" toml:"wheel_throttle"`
	DragDebounce    Duration `yaml:"drag_debounce" toml:"drag_debounce"`
	SearchDebounce  Duration `yaml:"search_debounce" toml:"search_debounce"`
	AutoScrollDelay Duration `yaml:"auto_scroll_delay" toml:"auto_scroll_delay"`
}

// ScrollSection tunes scrolling. Zero keeps the grid default.
type ScrollSection struct {
	WheelStep      int     `yaml:"wheel_step" toml:"wheel_step"`
	AutoScrollStep int     `yaml:"auto_scroll_step" toml:"auto_scroll_step"`
	MinThumb       float64 `yaml:"min_thumb" toml:"min_thumb"`
}

// IngestSection limits CSV loading.
type IngestSection struct {
	MaxRows   int    `yaml:"max_rows" toml:"max_rows"`
	Delimiter string `yaml:"delimiter" toml:"delimiter"`
}

// TerminalSection configures the terminal viewer.
type TerminalSection struct {
	ColumnWidth int `yaml:"column_width" toml:"column_width"`
}

// SnapshotSection configures PNG snapshots.
type SnapshotSection struct {
	PixelRatio float64 `yaml:"pixel_ratio" toml:"pixel_ratio"`
}

// LoggingSection configures the CLI logger.
type LoggingSection struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Viewport: ViewportSection{
			CellHeight: 24,
			CellWidth:  140,
			ViewHeight: 480,
			Padding:    8,
		},
		Ingest: IngestSection{
			MaxRows:   1_000_000,
			Delimiter: ",",
		},
		Terminal: TerminalSection{ColumnWidth: 16},
		Snapshot: SnapshotSection{PixelRatio: 1},
		Logging: LoggingSection{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the file at path over Default and validates the result. An
// empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if _, ok := grid.StyleByName(c.Style); !ok {
		return fmt.Errorf("%w: unknown style %q", ErrInvalid, c.Style)
	}
	if err := c.ViewportConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}

	switch {
	case c.Scroll.WheelStep < 0:
		return fmt.Errorf("%w: wheel_step %d", ErrInvalid, c.Scroll.WheelStep)
	case c.Scroll.AutoScrollStep < 0:
		return fmt.Errorf("%w: auto_scroll_step %d", ErrInvalid, c.Scroll.AutoScrollStep)
	case c.Scroll.MinThumb < 0:
		return fmt.Errorf("%w: min_thumb %v", ErrInvalid, c.Scroll.MinThumb)
	case c.Ingest.MaxRows < 0:
		return fmt.Errorf("%w: max_rows %d", ErrInvalid, c.Ingest.MaxRows)
	case len([]rune(c.Ingest.Delimiter)) > 1:
		return fmt.Errorf("%w: delimiter %q", ErrInvalid, c.Ingest.Delimiter)
	case c.Terminal.ColumnWidth < 0:
		return fmt.Errorf("%w: column_width %d", ErrInvalid, c.Terminal.ColumnWidth)
	case c.Snapshot.PixelRatio < 0:
		return fmt.Errorf("%w: pixel_ratio %v", ErrInvalid, c.Snapshot.PixelRatio)
	}

	for name, d := range map[string]Duration{
		"wheel_throttle":    c.Timing.WheelThrottle,
		"drag_debounce":     c.Timing.DragDebounce,
		"search_debounce":   c.Timing.SearchDebounce,
		"auto_scroll_delay": c.Timing.AutoScrollDelay,
	} {
		if d.Duration < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalid, name, d.Duration)
		}
	}
	return nil
}

// ViewportConfig returns the grid geometry.
func (c Config) ViewportConfig() grid.ViewportConfig {
	return grid.ViewportConfig{
		CellHeight: c.Viewport.CellHeight,
		CellWidth:  c.Viewport.CellWidth,
		ViewHeight: c.Viewport.ViewHeight,
		ViewWidth:  c.Viewport.ViewWidth,
		Padding:    c.Viewport.Padding,
	}
}

// StyleValue returns the configured style.
func (c Config) StyleValue() grid.Style {
	s, _ := grid.StyleByName(c.Style)
	return s
}

// Options returns the grid options for the configured settings. Unset
// settings produce no option, so backend defaults passed earlier survive.
func (c Config) Options(log zerolog.Logger) []grid.Option {
	opts := []grid.Option{
		grid.WithLogger(log),
		grid.WithTiming(grid.Timing{
			WheelThrottle:   c.Timing.WheelThrottle.Duration,
			DragDebounce:    c.Timing.DragDebounce.Duration,
			SearchDebounce:  c.Timing.SearchDebounce.Duration,
			AutoScrollDelay: c.Timing.AutoScrollDelay.Duration,
		}),
	}
	if c.Style != "" {
		opts = append(opts, grid.WithStyle(c.StyleValue()))
	}
	if c.Scroll.WheelStep > 0 {
		opts = append(opts, grid.WithWheelStep(c.Scroll.WheelStep))
	}
	if c.Scroll.AutoScrollStep > 0 {
		opts = append(opts, grid.WithAutoScroll(c.Scroll.AutoScrollStep, 0))
	}
	if c.Scroll.MinThumb > 0 {
		opts = append(opts, grid.WithMinThumbSize(c.Scroll.MinThumb))
	}
	return opts
}

// Duration is a time.Duration written as a string such as "300ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}
