package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/grid"
)

// FrameInterval is the display frame period.
const FrameInterval = 16 * time.Millisecond

// Lines above and below the grid body.
const (
	headerLines = 2 // column labels, search fields
	footerLines = 2 // status, help
)

// Initial size used until the terminal reports its own.
const (
	initialWidth  = 80
	initialHeight = 24
)

// DefaultColumnWidth is the column width in cells when none is given.
const DefaultColumnWidth = 16

// FrameMsg drives one display frame.
type FrameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// DefaultStyle returns grid.DefaultStyle sized for terminal cells.
func DefaultStyle() grid.Style {
	s := grid.DefaultStyle()
	s.ScrollbarSize = 1
	s.BorderSize = 1
	s.CharWidth = 1
	s.CharHeight = 1
	return s
}

// Model is a Bubble Tea model showing a grid with one search field per
// column, a status line and key help.
type Model struct {
	grid    *grid.Grid
	host    *Host
	surface *Surface

	search  []textinput.Model
	focused int // index of the focused search field, -1 for none
	pressed bool

	keys KeyMap
	help help.Model

	width, height int
	quitting      bool
}

// NewModel creates a model showing rows under cols. Column widths of zero
// use colWidth cells. opts are applied after the terminal defaults.
func NewModel(cols []grid.Column, rows grid.Dataset, colWidth int, opts ...grid.Option) (*Model, error) {
	if colWidth <= 0 {
		colWidth = DefaultColumnWidth
	}
	surface := NewSurface(DefaultStyle())
	host := NewHost(surface)

	base := []grid.Option{
		grid.WithStyle(DefaultStyle()),
		grid.WithMinThumbSize(1),
	}
	g, err := grid.New(host, cols, grid.ViewportConfig{
		CellHeight: 1,
		CellWidth:  float64(colWidth),
		ViewHeight: initialHeight - headerLines - footerLines,
		ViewWidth:  initialWidth,
		Padding:    2,
	}, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	surface.SetStyle(g.Style())

	m := &Model{
		grid:    g,
		host:    host,
		surface: surface,
		focused: -1,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   initialWidth,
		height:  initialHeight,
	}
	for _, col := range g.Columns() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = col.Label
		ti.CharLimit = 256
		ti.Width = max(1, int(g.Viewport().ColumnWidth(col))-2)
		m.search = append(m.search, ti)
	}

	g.LoadData(rows)
	return m, nil
}

// Grid returns the grid engine.
func (m *Model) Grid() *grid.Grid { return m.grid }

// Surface returns the drawing surface.
func (m *Model) Surface() *Surface { return m.surface }

// Focused returns the index of the focused search field, or -1.
func (m *Model) Focused() int { return m.focused }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if m.quitting {
			return m, nil
		}
		m.host.RunFrame()
		return m, frameTick()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		if m.focused >= 0 {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.send(grid.KeyUp)
	case key.Matches(msg, m.keys.Down):
		m.send(grid.KeyDown)
	case key.Matches(msg, m.keys.PageUp):
		m.send(grid.KeyPageUp)
	case key.Matches(msg, m.keys.PageDown):
		m.send(grid.KeyPageDown)
	case key.Matches(msg, m.keys.Home):
		m.send(grid.KeyHome)
	case key.Matches(msg, m.keys.End):
		m.send(grid.KeyEnd)
	case key.Matches(msg, m.keys.Escape):
		m.send(grid.KeyEscape)
	case key.Matches(msg, m.keys.Search):
		return m, m.focus(0)
	case key.Matches(msg, m.keys.AutoScroll):
		if m.grid.AutoScrolling() {
			m.grid.StopAutoScroll()
		} else {
			m.grid.StartAutoScroll()
		}
	case key.Matches(msg, m.keys.Clear):
		for i := range m.search {
			m.search[i].SetValue("")
		}
		m.grid.ClearFilters()
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.search)
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		m.blur()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.focus((m.focused + 1) % n)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.focus((m.focused - 1 + n) % n)
	}

	field := &m.search[m.focused]
	before := field.Value()
	var cmd tea.Cmd
	*field, cmd = field.Update(msg)
	if v := field.Value(); v != before {
		if in := m.host.Input(); in != nil {
			in.OnSearch(m.focused, v)
		}
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	in := m.host.Input()
	if in == nil {
		return
	}
	// Center of the terminal line, relative to the top of the track.
	y := float64(msg.Y-headerLines) + 0.5

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		in.OnWheel(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		in.OnWheel(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.onTrack(msg.X, msg.Y) {
			m.pressed = true
			in.OnPointerDown(y)
		}
	case msg.Action == tea.MouseActionMotion && m.pressed:
		in.OnPointerMove(y)
	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		in.OnPointerUp()
	}
}

func (m *Model) onTrack(x, y int) bool {
	cols, rows := m.surface.Size()
	return x == cols-1 && y >= headerLines && y < headerLines+rows
}

func (m *Model) send(k grid.Key) {
	if in := m.host.Input(); in != nil {
		in.OnKey(k)
	}
}

func (m *Model) focus(i int) tea.Cmd {
	if len(m.search) == 0 {
		return nil
	}
	m.blur()
	m.focused = i
	return m.search[i].Focus()
}

func (m *Model) blur() {
	if m.focused >= 0 {
		m.search[m.focused].Blur()
	}
	m.focused = -1
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.grid.Resize(float64(width), float64(max(0, height-headerLines-footerLines)))
}

func (m *Model) quit() {
	m.quitting = true
	m.grid.Destroy()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.searchView(),
		m.surface.View(),
		m.statusView(),
		m.help.View(m.keys),
	)
}

// headerView lays out the column labels on the same cells as the body.
func (m *Model) headerView() string {
	cfg := m.grid.Viewport()
	var b strings.Builder
	for i, col := range m.grid.Columns() {
		w := int(cfg.ColumnWidth(col))
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(separator)
		}
		label := grid.Truncate(m.surface, col.Label, float64(w), cfg.Padding)
		b.WriteString(runewidth.FillRight(label, max(0, w-1)))
	}
	b.WriteRune(separator)
	line := runewidth.FillRight(runewidth.Truncate(b.String(), m.width, ""), m.width)
	return m.surface.palette.header.Render(line)
}

func (m *Model) searchView() string {
	cfg := m.grid.Viewport()
	cells := make([]string, 0, len(m.search))
	for i, col := range m.grid.Columns() {
		w := int(cfg.ColumnWidth(col))
		cells = append(cells, lipgloss.NewStyle().
			Width(w).MaxWidth(w).
			PaddingLeft(1).
			Render(m.search[i].View()))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

func (m *Model) statusView() string {
	return m.surface.palette.status.Render(StatusLine(m.grid))
}

// StatusLine summarizes the window position and grid state.
func StatusLine(g *grid.Grid) string {
	w := g.Window()
	first := 0
	if w.Len() > 0 {
		first = w.Start + 1
	}
	s := fmt.Sprintf("rows %s-%s of %s",
		humanize.Comma(int64(first)),
		humanize.Comma(int64(w.End)),
		humanize.Comma(int64(g.ActiveLen())))
	if g.Filtered() {
		s += fmt.Sprintf(" (filtered from %s)", humanize.Comma(int64(g.TotalLen())))
	}
	if g.AutoScrolling() {
		s += " · auto"
	}
	if g.Dragging() {
		s += " · drag"
	}
	return s
}
