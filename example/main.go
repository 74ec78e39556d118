// Example shows a grid of 100,000 synthetic rows in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Scroll with the mouse wheel, drag the scrollbar on the right, or use the
// arrow, PgUp/PgDn and Home/End keys. Space toggles auto-scroll.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "grid example"
	rowCount     = 100_000
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	style := grid.GTAStyle()
	host, err := opengl.NewWindow(window, style)
	if err != nil {
		return err
	}

	cols := grid.ColumnsFromHeader([]string{"id", "name", "city", "score"}, 0)
	g, err := grid.New(host, cols, grid.ViewportConfig{
		CellHeight: 24,
		CellWidth:  180,
		ViewHeight: windowHeight,
		ViewWidth:  windowWidth,
		Padding:    8,
	}, grid.WithStyle(style))
	if err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	defer g.Destroy()

	host.OnResize(g.Resize)
	g.LoadData(syntheticRows(rowCount))

	// Space toggles auto-scroll; the grid owns the other keys.
	window.SetCharCallback(func(_ *glfw.Window, r rune) {
		if r != ' ' {
			return
		}
		if g.AutoScrolling() {
			g.StopAutoScroll()
		} else {
			g.StartAutoScroll()
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()

		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := host.RunFrame(); err != nil {
			return fmt.Errorf("grid render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

var cities = []string{"Los Santos", "San Fierro", "Las Venturas", "Angel Pine", "Palomino Creek"}

func syntheticRows(n int) grid.Dataset {
	rows := make(grid.Dataset, n)
	for i := range rows {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			"player-" + strconv.Itoa(i*7919%100_003),
			cities[i%len(cities)],
			strconv.Itoa(i * 37 % 1000),
		}
	}
	return rows
}
