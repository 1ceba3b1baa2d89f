package interaction

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/folkcanvas/folk/backend-go/internal/engine"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// recordingHost records capture/focus/cursor calls for assertions.
type recordingHost struct {
	captured Handle
	focused  Handle
	cursors  map[Handle]string
	calls    []string
}

func newRecordingHost() *recordingHost {
	return &recordingHost{cursors: make(map[Handle]string)}
}

func (h *recordingHost) SetPointerCapture(handle Handle, pointerID int) {
	h.captured = handle
	h.calls = append(h.calls, "capture:"+handle.String())
}

func (h *recordingHost) ReleasePointerCapture(handle Handle, pointerID int) {
	h.calls = append(h.calls, "release:"+handle.String())
}

func (h *recordingHost) FocusHandle(handle Handle) {
	h.focused = handle
	h.calls = append(h.calls, "focus:"+handle.String())
}

func (h *recordingHost) SetHandleCursor(handle Handle, cursor string) {
	h.cursors[handle] = cursor
}

func newTestShape(x, y, w, ht float64) (*Shape, *recordingHost) {
	host := newRecordingHost()
	return NewShape(engine.NewTransformRect(x, y, w, ht), host, nil), host
}

func TestBodyDragMoves(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)

	s.HandlePointerDown(PointerEvent{Type: PointerDown, PointerID: 1, Target: HandleNone, Position: engine.Point{X: 50, Y: 50}})
	if s.State() != StateMoving {
		t.Fatalf("state = %v, want moving", s.State())
	}

	s.HandlePointerMove(PointerEvent{Type: PointerMove, PointerID: 1, MovementX: 7, MovementY: -3})
	if s.Rect().X() != 7 || s.Rect().Y() != -3 {
		t.Errorf("position: got (%v, %v) want (7, -3)", s.Rect().X(), s.Rect().Y())
	}

	s.HandleLostPointerCapture(PointerEvent{Type: LostPointerCapture, PointerID: 1})
	if s.State() != StateIdle {
		t.Errorf("state after capture loss = %v, want idle", s.State())
	}
}

func TestBodyDragRespectsZoom(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)
	s.SetZoom(2)

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: HandleNone})
	s.HandlePointerMove(PointerEvent{PointerID: 1, MovementX: 10, MovementY: 10})

	if s.Rect().X() != 5 || s.Rect().Y() != 5 {
		t.Errorf("position: got (%v, %v) want (5, 5)", s.Rect().X(), s.Rect().Y())
	}
}

func TestResizeBottomRightNoFlip(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: ResizeBottomRight, Position: engine.Point{X: 100, Y: 100}})
	s.HandlePointerMove(PointerEvent{PointerID: 1, Position: engine.Point{X: 50, Y: 50}})

	if s.Rect().Width() != 50 || s.Rect().Height() != 50 {
		t.Errorf("size: got %vx%v want 50x50", s.Rect().Width(), s.Rect().Height())
	}
	tl := s.Rect().ToParentSpace(s.Rect().TopLeft())
	if diff := cmp.Diff(engine.Point{X: 0, Y: 0}, tl, approx); diff != "" {
		t.Errorf("topLeft moved (-want +got):\n%s", diff)
	}
	if s.ActiveHandle() != ResizeBottomRight {
		t.Errorf("handle remapped to %v, want no remap", s.ActiveHandle())
	}
}

func TestResizeFlipX(t *testing.T) {
	s, host := newRecordingHostShapePair()

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: ResizeBottomRight, Position: engine.Point{X: 100, Y: 100}})
	s.HandlePointerMove(PointerEvent{PointerID: 1, Position: engine.Point{X: -10, Y: 50}})

	if s.Rect().Width() >= 0 {
		t.Fatalf("width = %v, want negative", s.Rect().Width())
	}
	if s.ActiveHandle() != ResizeBottomLeft {
		t.Errorf("handle = %v, want resize-bottom-left", s.ActiveHandle())
	}
	if host.captured != ResizeBottomLeft {
		t.Errorf("capture on %v, want resize-bottom-left", host.captured)
	}
	if host.focused != ResizeBottomLeft {
		t.Errorf("focus on %v, want resize-bottom-left", host.focused)
	}
}

func newRecordingHostShapePair() (*Shape, *recordingHost) {
	return newTestShape(0, 0, 100, 100)
}

func TestResizeDiagonalFlip(t *testing.T) {
	s, host := newRecordingHostShapePair()

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: ResizeBottomRight, Position: engine.Point{X: 100, Y: 100}})
	s.HandlePointerMove(PointerEvent{PointerID: 1, Position: engine.Point{X: -10, Y: -10}})

	if s.Rect().Width() != -10 || s.Rect().Height() != -10 {
		t.Errorf("size: got %vx%v want -10x-10", s.Rect().Width(), s.Rect().Height())
	}
	if s.ActiveHandle() != ResizeTopLeft {
		t.Errorf("handle = %v, want resize-top-left", s.ActiveHandle())
	}

	want := engine.Rect{X: -10, Y: -10, Width: 10, Height: 10}
	if diff := cmp.Diff(want, s.Rect().Bounds(), approx); diff != "" {
		t.Errorf("bounds (-want +got):\n%s", diff)
	}

	// Capture handed off from the old handle to the new one.
	joined := strings.Join(host.calls, " ")
	if !strings.Contains(joined, "release:resize-bottom-right") ||
		!strings.Contains(joined, "capture:resize-top-left") {
		t.Errorf("capture handoff calls missing: %v", host.calls)
	}
}

func TestResizeFlipY(t *testing.T) {
	s, _ := newRecordingHostShapePair()

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: ResizeTopRight, Position: engine.Point{X: 100, Y: 0}})
	s.HandlePointerMove(PointerEvent{PointerID: 1, Position: engine.Point{X: 120, Y: 130}})

	if s.Rect().Height() >= 0 {
		t.Fatalf("height = %v, want negative", s.Rect().Height())
	}
	if s.ActiveHandle() != ResizeBottomRight {
		t.Errorf("handle = %v, want resize-bottom-right", s.ActiveHandle())
	}
}

func TestRotationStartContinuity(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)
	s.Rect().SetRotation(0.5)

	grab := engine.Point{X: 0, Y: 0} // top-left rotate corner, well off the pivot
	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: RotateTopLeft, Position: grab})
	if s.State() != StateRotating {
		t.Fatalf("state = %v, want rotating", s.State())
	}

	// First move at (nearly) the same pointer position must not jump.
	s.HandlePointerMove(PointerEvent{PointerID: 1, Position: grab})
	if diff := cmp.Diff(0.5, s.Rect().Rotation(), approx); diff != "" {
		t.Errorf("rotation jumped at drag start (-want +got):\n%s", diff)
	}
}

func TestRotationFollowsPointer(t *testing.T) {
	s, host := newTestShape(0, 0, 100, 100)

	// Grab at the top-left corner, then move the pointer a quarter turn
	// around the center pivot.
	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: RotateTopLeft, Position: engine.Point{X: 0, Y: 0}})
	s.HandlePointerMove(PointerEvent{PointerID: 1, Position: engine.Point{X: 100, Y: 0}})

	if diff := cmp.Diff(math.Pi/2, s.Rect().Rotation(), approx); diff != "" {
		t.Errorf("rotation (-want +got):\n%s", diff)
	}
	if host.cursors[RotateTopLeft] == "" {
		t.Errorf("rotate cursor not updated")
	}
}

func TestPerAxisCancel(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)
	s.OnTransform(func(ev *TransformEvent) {
		ev.PreventAxis(AxisWidth)
	})

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: ResizeBottomRight, Position: engine.Point{X: 100, Y: 100}})
	results := s.HandlePointerMove(PointerEvent{PointerID: 1, Position: engine.Point{X: 50, Y: 50}})

	if s.Rect().Width() != 100 {
		t.Errorf("width = %v, want 100 (cancelled)", s.Rect().Width())
	}
	if s.Rect().Height() != 50 {
		t.Errorf("height = %v, want 50 (committed)", s.Rect().Height())
	}

	byAxis := make(map[Axis]bool)
	for _, r := range results {
		byAxis[r.Axis] = r.Committed
	}
	if byAxis[AxisWidth] {
		t.Errorf("width axis reported committed")
	}
	if !byAxis[AxisHeight] {
		t.Errorf("height axis reported cancelled")
	}
}

func TestPerAxisCancelMove(t *testing.T) {
	s, _ := newTestShape(10, 10, 100, 100)
	s.OnTransform(func(ev *TransformEvent) {
		ev.PreventAxis(AxisY)
	})

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: HandleNone})
	s.HandlePointerMove(PointerEvent{PointerID: 1, MovementX: 5, MovementY: 5})

	if s.Rect().X() != 15 {
		t.Errorf("x = %v, want 15", s.Rect().X())
	}
	if s.Rect().Y() != 10 {
		t.Errorf("y = %v, want 10 (cancelled)", s.Rect().Y())
	}
}

func TestTransformEventSnapshots(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)
	var got *TransformEvent
	s.OnTransform(func(ev *TransformEvent) { got = ev })

	s.HandlePointerDown(PointerEvent{PointerID: 1, Target: HandleNone})
	s.HandlePointerMove(PointerEvent{PointerID: 1, MovementX: 3, MovementY: 0})

	if got == nil {
		t.Fatal("no transform event dispatched")
	}
	if got.Previous.X != 0 || got.Current.X != 3 {
		t.Errorf("snapshots: previous.X=%v current.X=%v", got.Previous.X, got.Current.X)
	}
}

func TestKeyboardMove(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)

	s.HandleKeyDown(KeyEvent{Key: "ArrowRight"})
	s.HandleKeyDown(KeyEvent{Key: "ArrowDown", Shift: true})

	if s.Rect().X() != 1 || s.Rect().Y() != 10 {
		t.Errorf("position: got (%v, %v) want (1, 10)", s.Rect().X(), s.Rect().Y())
	}
}

func TestKeyboardRotate(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)

	s.HandleKeyDown(KeyEvent{Key: "ArrowRight", Alt: true})
	if diff := cmp.Diff(math.Pi/180, s.Rect().Rotation(), approx); diff != "" {
		t.Errorf("rotation after alt+right (-want +got):\n%s", diff)
	}

	s.HandleKeyDown(KeyEvent{Key: "ArrowLeft", Alt: true, Shift: true})
	if diff := cmp.Diff(-9*math.Pi/180, s.Rect().Rotation(), approx); diff != "" {
		t.Errorf("rotation after shift+alt+left (-want +got):\n%s", diff)
	}
}

func TestKeyboardResizeRoutesThroughFlipPath(t *testing.T) {
	s, host := newTestShape(0, 0, 5, 100)

	// Shrink width past zero from the bottom-right handle; the handle must
	// flip exactly as it would under pointer input.
	s.HandleKeyDown(KeyEvent{Key: "ArrowLeft", Shift: true, FocusedHandle: ResizeBottomRight})

	if s.Rect().Width() != -5 {
		t.Errorf("width = %v, want -5", s.Rect().Width())
	}
	if s.ActiveHandle() != ResizeBottomLeft {
		t.Errorf("handle = %v, want resize-bottom-left", s.ActiveHandle())
	}
	if host.focused != ResizeBottomLeft {
		t.Errorf("focus on %v, want resize-bottom-left", host.focused)
	}
}

func TestKeyboardResizeGrows(t *testing.T) {
	s, _ := newTestShape(0, 0, 100, 100)

	s.HandleKeyDown(KeyEvent{Key: "ArrowRight", FocusedHandle: ResizeBottomRight})
	if s.Rect().Width() != 101 || s.Rect().Height() != 100 {
		t.Errorf("size: got %vx%v want 101x100", s.Rect().Width(), s.Rect().Height())
	}
}

type fakeMeasurer struct {
	fn        func(engine.Rect)
	cancelled bool
}

func (m *fakeMeasurer) Subscribe(fn func(engine.Rect)) func() {
	m.fn = fn
	return func() { m.cancelled = true }
}

func TestAutoSizing(t *testing.T) {
	m := &fakeMeasurer{}
	s := NewShape(engine.NewTransformRect(0, 0, 100, 100), NopHost{}, m)

	s.SetWidthAuto(true)
	if m.fn == nil {
		t.Fatal("auto width did not subscribe to measurement")
	}

	m.fn(engine.Rect{Width: 240, Height: 80})
	if s.Rect().Width() != 240 {
		t.Errorf("width = %v, want 240 (tracked)", s.Rect().Width())
	}
	if s.Rect().Height() != 100 {
		t.Errorf("height = %v, want 100 (explicit axis untouched)", s.Rect().Height())
	}

	s.SetHeightAuto(true)
	m.fn(engine.Rect{Width: 250, Height: 90})
	if s.Rect().Width() != 250 || s.Rect().Height() != 90 {
		t.Errorf("size: got %vx%v want 250x90", s.Rect().Width(), s.Rect().Height())
	}

	s.SetWidthAuto(false)
	s.SetHeightAuto(false)
	if !m.cancelled {
		t.Errorf("leaving auto on both axes did not cancel the subscription")
	}
}

func TestRotateCursorOffsets(t *testing.T) {
	a := RotateCursor(0, RotateTopLeft)
	b := RotateCursor(0, RotateBottomRight)
	if a == b {
		t.Errorf("cursor glyphs for opposite corners should differ at rotation 0")
	}
	// Half a turn on the shape lines the top-left glyph up with the
	// bottom-right glyph at rest.
	c := RotateCursor(math.Pi, RotateTopLeft)
	if c != b {
		t.Errorf("cursor rotation not additive with handle offset")
	}
}
