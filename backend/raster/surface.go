// Package raster provides a software grid.Surface that draws into an
// in-memory RGBA image, plus a headless container for off-screen rendering.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/go-theft-auto/grid"
)

// identity is the identity affine transform.
var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Surface draws into a backing image whose pixel size is the logical size
// multiplied by the device pixel ratio.
type Surface struct {
	style grid.Style
	dpr   float64
	font  *opentype.Font
	face  font.Face

	width, height float64
	transform     f64.Aff3
	structure     *image.RGBA
	frame         *image.RGBA

	flushes int
	onFlush func(*image.RGBA)
}

// New creates a surface with the given device pixel ratio (values <= 0
// mean 1). Text uses Go Regular at style.FontSize.
func New(style grid.Style, dpr float64) (*Surface, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	s := &Surface{style: style, font: f, transform: identity}
	if err := s.SetPixelRatio(dpr); err != nil {
		return nil, err
	}
	return s, nil
}

// SetPixelRatio changes the device pixel ratio and reallocates the backing
// images at the current logical size.
func (s *Surface) SetPixelRatio(dpr float64) error {
	if dpr <= 0 {
		dpr = 1
	}
	size := s.style.FontSize
	if size <= 0 {
		size = grid.DefaultStyle().FontSize
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size * dpr,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("font face: %w", err)
	}
	if s.face != nil {
		_ = s.face.Close()
	}
	s.face = face
	s.dpr = dpr
	s.Resize(s.width, s.height)
	return nil
}

// OnFlush registers fn to receive the frame image after every flush.
func (s *Surface) OnFlush(fn func(*image.RGBA)) {
	s.onFlush = fn
}

// PixelRatio returns the device pixel ratio.
func (s *Surface) PixelRatio() float64 { return s.dpr }

// PixelSize returns the backing image size in pixels.
func (s *Surface) PixelSize() (int, int) {
	if s.frame == nil {
		return 0, 0
	}
	b := s.frame.Bounds()
	return b.Dx(), b.Dy()
}

// Transform returns the logical-to-pixel transform.
func (s *Surface) Transform() f64.Aff3 { return s.transform }

// Image returns the last composed frame.
func (s *Surface) Image() *image.RGBA { return s.frame }

// Flushes returns the number of flushed frames.
func (s *Surface) Flushes() int { return s.flushes }

// WritePNG encodes the last composed frame as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if s.frame == nil {
		return fmt.Errorf("raster: no frame")
	}
	return png.Encode(w, s.frame)
}

// Resize implements grid.Surface.
func (s *Surface) Resize(width, height float64) {
	s.width, s.height = max(0, width), max(0, height)
	pw := int(math.Ceil(s.width * s.dpr))
	ph := int(math.Ceil(s.height * s.dpr))
	s.structure = image.NewRGBA(image.Rect(0, 0, pw, ph))
	s.frame = image.NewRGBA(image.Rect(0, 0, pw, ph))

	// Reset before scaling so repeated resizes never compound.
	s.transform = identity
	s.transform = scale(s.transform, s.dpr)
}

func scale(m f64.Aff3, k float64) f64.Aff3 {
	return f64.Aff3{m[0] * k, m[1] * k, m[2] * k, m[3] * k, m[4] * k, m[5] * k}
}

func (s *Surface) apply(x, y float64) (float64, float64) {
	m := s.transform
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

func (s *Surface) pixelRect(r grid.Rect) image.Rectangle {
	x0, y0 := s.apply(r.X, r.Y)
	x1, y1 := s.apply(r.X+r.W, r.Y+r.H)
	return image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
}

func toColor(c uint32) color.NRGBA {
	r, g, b, a := grid.UnpackRGBA(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func (s *Surface) fill(dst *image.RGBA, r grid.Rect, c uint32) {
	if c&0xFF000000 == 0 {
		return
	}
	draw.Draw(dst, s.pixelRect(r).Intersect(dst.Bounds()), image.NewUniform(toColor(c)), image.Point{}, draw.Over)
}

// DrawStructure implements grid.Surface.
func (s *Surface) DrawStructure(l grid.Lattice) {
	dst := s.structure
	st := s.style
	draw.Draw(dst, dst.Bounds(), image.NewUniform(toColor(st.BackgroundColor)), image.Point{}, draw.Src)

	w := l.ContentWidth()
	for i := 1; i < l.Rows; i += 2 {
		s.fill(dst, grid.Rect{X: 0, Y: l.RowY(i), W: w, H: l.CellHeight}, st.RowBgAltColor)
	}
	b := st.BorderSize
	for i := 0; i <= l.Rows; i++ {
		s.fill(dst, grid.Rect{X: 0, Y: l.RowY(i) - b/2, W: w, H: b}, st.BorderColor)
	}
	for c := 0; c <= len(l.ColumnWidths); c++ {
		s.fill(dst, grid.Rect{X: l.ColumnX(c) - b/2, Y: 0, W: b, H: l.Height}, st.BorderColor)
	}
}

// Compose implements grid.Surface.
func (s *Surface) Compose() {
	draw.Draw(s.frame, s.frame.Bounds(), s.structure, image.Point{}, draw.Src)
}

// DrawText implements grid.Surface.
func (s *Surface) DrawText(x, y float64, text string) {
	px, py := s.apply(x, y)
	m := s.face.Metrics()
	baseline := py + float64(m.Ascent-m.Descent)/128 // half of (ascent-descent) in 26.6
	d := &font.Drawer{
		Dst:  s.frame,
		Src:  image.NewUniform(toColor(s.style.TextColor)),
		Face: s.face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(px * 64), Y: fixed.Int26_6(baseline * 64)},
	}
	d.DrawString(text)
}

// MeasureText implements grid.Surface, in logical units.
func (s *Surface) MeasureText(text string) float64 {
	adv := font.MeasureString(s.face, text)
	return float64(adv) / 64 / s.dpr
}

// DrawIndicator implements grid.IndicatorDrawer.
func (s *Surface) DrawIndicator(g grid.ScrollbarGeometry, dragging bool) {
	size := s.style.ScrollbarSize
	x := s.width - size
	s.fill(s.frame, grid.Rect{X: x, Y: 0, W: size, H: g.TrackHeight}, s.style.ScrollbarBgColor)
	if g.Usable() <= 0 {
		return
	}
	c := s.style.ScrollbarGrabColor
	if dragging {
		c = s.style.ScrollbarGrabActive
	}
	s.fill(s.frame, g.ThumbRect(x, 0, size), c)
}

// Flush implements grid.Surface.
func (s *Surface) Flush() error {
	s.flushes++
	if s.onFlush != nil {
		s.onFlush(s.frame)
	}
	return nil
}

// Release implements grid.Surface.
func (s *Surface) Release() {
	if s.face != nil {
		_ = s.face.Close()
		s.face = nil
	}
	s.structure, s.frame = nil, nil
}
