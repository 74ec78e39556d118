package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "grid.yaml", `
style: gta
viewport:
  cell_height: 20
  cell_width: 100
  view_height: 400
timing:
  search_debounce: 150ms
scroll:
  wheel_step: 5
logging:
  level: debug
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gta", cfg.Style)
	assert.Equal(t, 20.0, cfg.Viewport.CellHeight)
	assert.Equal(t, 400.0, cfg.Viewport.ViewHeight)
	assert.Equal(t, 8.0, cfg.Viewport.Padding, "unset fields keep defaults")
	assert.Equal(t, 150*time.Millisecond, cfg.Timing.SearchDebounce.Duration)
	assert.Equal(t, 5, cfg.Scroll.WheelStep)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, grid.GTAStyle(), cfg.StyleValue())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "grid.toml", `
style = "light"

[viewport]
cell_height = 18
cell_width = 90
view_height = 360

[timing]
auto_scroll_delay = "20ms"

[ingest]
max_rows = 500
delimiter = ";"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18.0, cfg.Viewport.CellHeight)
	assert.Equal(t, 20*time.Millisecond, cfg.Timing.AutoScrollDelay.Duration)
	assert.Equal(t, 500, cfg.Ingest.MaxRows)
	assert.Equal(t, ";", cfg.Ingest.Delimiter)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "grid.ini", "style=gta")
	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrUnknownFormat)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeFile(t, "grid.yaml", "timing:\n  wheel_throttle: soon\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown style", func(c *config.Config) { c.Style = "neon" }},
		{"zero cell height", func(c *config.Config) { c.Viewport.CellHeight = 0 }},
		{"negative padding", func(c *config.Config) { c.Viewport.Padding = -1 }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"negative wheel step", func(c *config.Config) { c.Scroll.WheelStep = -1 }},
		{"long delimiter", func(c *config.Config) { c.Ingest.Delimiter = "||" }},
		{"negative duration", func(c *config.Config) { c.Timing.DragDebounce.Duration = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestViewportErrorKeepsGridSentinel(t *testing.T) {
	cfg := config.Default()
	cfg.Viewport.CellWidth = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, grid.ErrInvalidConfig)
}

func TestOptionsConfigureGrid(t *testing.T) {
	cfg := config.Default()
	cfg.Scroll.WheelStep = 7
	cfg.Scroll.MinThumb = 30

	host := newHost()
	g, err := grid.New(host, grid.ColumnsFromHeader([]string{"a"}, 0), grid.ViewportConfig{
		CellHeight: 10,
		CellWidth:  50,
		ViewHeight: 100,
	}, cfg.Options(zerolog.Nop())...)
	require.NoError(t, err)
	defer g.Destroy()

	rows := make(grid.Dataset, 1000)
	for i := range rows {
		rows[i] = []string{"x"}
	}
	g.LoadData(rows)
	assert.Equal(t, 30.0, g.Scrollbar().ThumbHeight)

	g.OnWheel(1)
	host.queue.RunFrame()
	assert.Equal(t, 7, g.Window().Start)
}

// host is a minimal container for option tests.
type host struct {
	queue *grid.FrameQueue
}

func newHost() *host { return &host{queue: grid.NewFrameQueue()} }

func (h *host) Surface() grid.Surface                    { return nopSurface{} }
func (h *host) FrameHost() grid.FrameHost                { return h.queue }
func (h *host) Attach(grid.InputHandler) (detach func()) { return func() {} }

type nopSurface struct{}

func (nopSurface) MeasureText(text string) float64   { return float64(len(text)) }
func (nopSurface) Resize(float64, float64)           {}
func (nopSurface) DrawStructure(grid.Lattice)        {}
func (nopSurface) Compose()                          {}
func (nopSurface) DrawText(float64, float64, string) {}
func (nopSurface) Flush() error                      { return nil }
func (nopSurface) Release()                          {}
