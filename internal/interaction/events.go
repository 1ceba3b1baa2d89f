package interaction

import "github.com/folkcanvas/folk/backend-go/internal/engine"

// PointerEventType enumerates the pointer events the state machine consumes.
type PointerEventType int

const (
	PointerDown PointerEventType = iota
	PointerMove
	PointerUp
	LostPointerCapture
)

// PointerEvent carries one pointer event from the host toolkit. Positions
// are in the shape's parent space. MovementX/Y are raw device deltas as
// delivered by the toolkit, before zoom adjustment.
type PointerEvent struct {
	Type      PointerEventType
	PointerID int
	Target    Handle // handle under the pointer; HandleNone for the body
	Position  engine.Point
	MovementX float64
	MovementY float64
}

// KeyEvent carries one keyboard event. FocusedHandle names the handle that
// currently holds focus, or HandleNone.
type KeyEvent struct {
	Key           string // "ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown"
	Shift         bool
	Alt           bool
	FocusedHandle Handle
}

// Host is the surface the state machine drives on its embedding UI toolkit:
// pointer capture, handle focus for keyboard continuation after a flip, and
// cursor updates. Implementations must honor capture exclusivity; the state
// machine relies on only the capturing handle receiving move events.
type Host interface {
	SetPointerCapture(h Handle, pointerID int)
	ReleasePointerCapture(h Handle, pointerID int)
	FocusHandle(h Handle)
	SetHandleCursor(h Handle, cursor string)
}

// NopHost discards all host calls. Useful for headless use and tests that
// only care about geometry.
type NopHost struct{}

func (NopHost) SetPointerCapture(Handle, int)     {}
func (NopHost) ReleasePointerCapture(Handle, int) {}
func (NopHost) FocusHandle(Handle)                {}
func (NopHost) SetHandleCursor(Handle, string)    {}
