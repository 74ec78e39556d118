package grid

// Key represents a navigation key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEscape
	KeyCount
)

var keyNames = map[Key]string{
	KeyNone:     "--",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyPageUp:   "PgUp",
	KeyPageDown: "PgDn",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyEscape:   "Esc",
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "?"
}

func (k Key) String() string { return KeyName(k) }

// InputHandler receives user input from a Container. Pointer positions are
// logical units relative to the top of the scrollbar track. All methods run
// on the container's UI thread.
type InputHandler interface {
	// OnWheel handles a wheel event; only the sign of deltaY matters.
	OnWheel(deltaY float64)
	// OnPointerDown handles a press on the scrollbar track.
	OnPointerDown(y float64)
	// OnPointerMove handles pointer motion while pressed.
	OnPointerMove(y float64)
	// OnPointerUp ends a scrollbar drag.
	OnPointerUp()
	// OnSearch handles an edit of the search field of column col.
	OnSearch(col int, query string)
	// OnKey handles a navigation key.
	OnKey(k Key)
}
