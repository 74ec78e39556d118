package grid

// Style defines the visual appearance of the grid. Colors are packed RGBA
// (see RGBA); each backend maps them to its own color model.
type Style struct {
	// Text
	TextColor       uint32
	HeaderTextColor uint32 // 0 = use TextColor

	// Surfaces
	BackgroundColor uint32
	HeaderBgColor   uint32
	RowBgAltColor   uint32 // Alternate row background (0 = none)

	// Structure lattice
	BorderColor uint32
	BorderSize  float64

	// Scrollbar indicator
	ScrollbarBgColor    uint32
	ScrollbarGrabColor  uint32
	ScrollbarGrabActive uint32
	ScrollbarSize       float64 // Track width

	// Font
	FontSize   float64 // Point size for outline fonts
	FontScale  float64 // Scale for the built-in bitmap font
	CharWidth  float64 // Bitmap font cell width
	CharHeight float64 // Bitmap font cell height
}

// HeaderText returns the header text color, falling back to TextColor.
func (s Style) HeaderText() uint32 {
	if s.HeaderTextColor != 0 {
		return s.HeaderTextColor
	}
	return s.TextColor
}

// DefaultStyle returns the default dark style.
func DefaultStyle() Style {
	return Style{
		TextColor:       ColorWhite,
		HeaderTextColor: 0,

		BackgroundColor: RGBA(20, 20, 20, 255),
		HeaderBgColor:   RGBA(40, 40, 40, 255),
		RowBgAltColor:   RGBA(28, 28, 28, 255),

		BorderColor: RGBA(80, 80, 80, 255),
		BorderSize:  1,

		ScrollbarBgColor:    RGBA(30, 30, 30, 255),
		ScrollbarGrabColor:  RGBA(80, 80, 80, 255),
		ScrollbarGrabActive: RGBA(110, 110, 110, 255),
		ScrollbarSize:       12,

		FontSize:   12,
		FontScale:  1.0,
		CharWidth:  7,
		CharHeight: 13,
	}
}

// GTAStyle returns a GTA San Andreas-inspired style with cyan accents.
func GTAStyle() Style {
	s := DefaultStyle()
	s.BackgroundColor = RGBA(0, 0, 0, 230)
	s.HeaderBgColor = RGBA(0, 80, 120, 255)
	s.HeaderTextColor = RGBA(255, 200, 0, 255) // GTA yellow
	s.RowBgAltColor = RGBA(20, 30, 40, 255)
	s.BorderColor = RGBA(0, 100, 150, 255)
	s.ScrollbarBgColor = RGBA(20, 20, 20, 255)
	s.ScrollbarGrabColor = RGBA(0, 100, 150, 255)
	s.ScrollbarGrabActive = RGBA(0, 150, 200, 255)
	s.ScrollbarSize = 14
	s.FontScale = 1.5
	return s
}

// LightStyle returns a light theme.
func LightStyle() Style {
	s := DefaultStyle()
	s.TextColor = RGBA(20, 20, 20, 255)
	s.BackgroundColor = ColorWhite
	s.HeaderBgColor = RGBA(230, 230, 230, 255)
	s.RowBgAltColor = RGBA(248, 248, 248, 255)
	s.BorderColor = RGBA(200, 200, 200, 255)
	s.ScrollbarBgColor = RGBA(240, 240, 240, 255)
	s.ScrollbarGrabColor = RGBA(180, 180, 180, 255)
	s.ScrollbarGrabActive = RGBA(150, 150, 150, 255)
	return s
}

// StyleByName returns a named style. Unknown names yield DefaultStyle and
// false.
func StyleByName(name string) (Style, bool) {
	switch name {
	case "", "default", "dark":
		return DefaultStyle(), true
	case "gta":
		return GTAStyle(), true
	case "light":
		return LightStyle(), true
	default:
		return DefaultStyle(), false
	}
}
