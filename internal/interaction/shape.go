package interaction

import (
	"math"

	"github.com/folkcanvas/folk/backend-go/internal/engine"
)

// State enumerates the manipulation states of a shape. Idle is both the
// initial and terminal state; capture loss from any state returns to it.
type State int

const (
	StateIdle State = iota
	StateMoving
	StateResizing
	StateRotating
)

func (s State) String() string {
	switch s {
	case StateMoving:
		return "moving"
	case StateResizing:
		return "resizing"
	case StateRotating:
		return "rotating"
	default:
		return "idle"
	}
}

// Axis names one independently committable component of a transform change.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisWidth
	AxisHeight
	AxisRotation
	axisCount
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisWidth:
		return "width"
	case AxisHeight:
		return "height"
	case AxisRotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// TransformEvent is offered to listeners before a mutation batch is
// committed. It carries the proposed and previous geometry; a listener may
// prevent individual axes, which are then rolled back while the rest commit.
type TransformEvent struct {
	Current   engine.Snapshot
	Previous  engine.Snapshot
	prevented [axisCount]bool
}

// PreventAxis rejects the change on a single axis.
func (e *TransformEvent) PreventAxis(a Axis) {
	if a >= 0 && a < axisCount {
		e.prevented[a] = true
	}
}

// Prevented reports whether a listener rejected the axis.
func (e *TransformEvent) Prevented(a Axis) bool {
	return a >= 0 && a < axisCount && e.prevented[a]
}

// AxisResult reports the outcome of one axis of a mutation batch.
type AxisResult struct {
	Axis      Axis
	Committed bool
}

// TransformListener observes proposed transform changes.
type TransformListener func(*TransformEvent)

// Measurer supplies content-box measurements for auto-sized axes. The
// returned cancel func stops the subscription. The unified rect observer
// satisfies this contract.
type Measurer interface {
	Subscribe(fn func(engine.Rect)) (cancel func())
}

// Keyboard gesture steps.
const (
	moveStep      = 1.0
	moveStepBig   = 10.0
	rotateStep    = math.Pi / 180     // 1 degree
	rotateStepBig = math.Pi / 180 * 10 // 10 degrees
)

// Shape interprets pointer and keyboard events against a TransformRect. It
// owns the rect exclusively; consumers read it through View().
type Shape struct {
	rect *engine.TransformRect
	host Host

	listeners []TransformListener

	state        State
	activeHandle Handle
	pointerID    int

	// rotate gesture: pointer angle offset captured at drag start so the
	// first move produces no rotation jump
	startAngle float64

	// canvas zoom applied to raw movement deltas
	zoom float64

	// auto-sizing
	widthAuto   bool
	heightAuto  bool
	measurer    Measurer
	cancelWatch func()
}

// NewShape wraps a rect in a manipulation state machine. The host may be
// NopHost for headless use; the measurer may be nil if auto-sizing is never
// enabled.
func NewShape(rect *engine.TransformRect, host Host, measurer Measurer) *Shape {
	return &Shape{
		rect:     rect,
		host:     host,
		measurer: measurer,
		zoom:     1,
	}
}

// View returns a read-only view of the shape's rect.
func (s *Shape) View() engine.RectReader { return s.rect.Readonly() }

// BoundingRect returns the rect's parent-space bounds. It satisfies the
// rect observer's target contract so shapes can be observed directly.
func (s *Shape) BoundingRect() engine.Rect { return s.rect.Bounds() }

// Rect returns the owned rect. Only the shape's owner should mutate it
// outside of event handling.
func (s *Shape) Rect() *engine.TransformRect { return s.rect }

// State returns the current manipulation state.
func (s *Shape) State() State { return s.state }

// ActiveHandle returns the handle driving an in-progress gesture, or
// HandleNone when idle or moving.
func (s *Shape) ActiveHandle() Handle { return s.activeHandle }

// OnTransform registers a listener for the cancelable change protocol.
func (s *Shape) OnTransform(l TransformListener) {
	s.listeners = append(s.listeners, l)
}

// SetZoom sets the canvas zoom factor used to scale raw pointer deltas.
func (s *Shape) SetZoom(z float64) {
	if z > 0 {
		s.zoom = z
	}
}

// --- Pointer events ---

// HandlePointerDown starts a gesture: moving for the body, resizing or
// rotating for a handle. The pointer is captured on the grabbed target so
// independent handles do not interfere.
func (s *Shape) HandlePointerDown(ev PointerEvent) {
	switch {
	case ev.Target.IsResize():
		s.state = StateResizing
		s.activeHandle = ev.Target
		s.pointerID = ev.PointerID
		s.host.SetPointerCapture(ev.Target, ev.PointerID)

	case ev.Target.IsRotate():
		s.state = StateRotating
		s.activeHandle = ev.Target
		s.pointerID = ev.PointerID
		pivot := s.rect.RotateOriginParent()
		s.startAngle = pivot.AngleTo(ev.Position) - s.rect.Rotation()
		s.host.SetPointerCapture(ev.Target, ev.PointerID)

	default:
		s.state = StateMoving
		s.activeHandle = HandleNone
		s.pointerID = ev.PointerID
		s.host.SetPointerCapture(HandleNone, ev.PointerID)
	}
}

// HandlePointerMove advances the active gesture and returns the per-axis
// commit results for the mutation batch it produced, if any.
func (s *Shape) HandlePointerMove(ev PointerEvent) []AxisResult {
	switch s.state {
	case StateMoving:
		before := s.rect.Snapshot()
		s.rect.SetX(s.rect.X() + ev.MovementX/s.zoom)
		s.rect.SetY(s.rect.Y() + ev.MovementY/s.zoom)
		return s.commit(before, AxisX, AxisY)

	case StateResizing:
		return s.resizeTo(ev.Position, ev.PointerID)

	case StateRotating:
		before := s.rect.Snapshot()
		pivot := s.rect.RotateOriginParent()
		s.rect.SetRotation(pivot.AngleTo(ev.Position) - s.startAngle)
		results := s.commit(before, AxisRotation)
		s.host.SetHandleCursor(s.activeHandle, RotateCursor(s.rect.Rotation(), s.activeHandle))
		return results
	}
	return nil
}

// HandleLostPointerCapture cancels the active gesture and returns to idle.
// The rect keeps whatever geometry the gesture last committed.
func (s *Shape) HandleLostPointerCapture(ev PointerEvent) {
	s.state = StateIdle
	s.activeHandle = HandleNone
	s.pointerID = 0
}

// resizeTo converts a parent-space target to local space, applies the
// active handle's corner setter, and reassigns handle identity if the
// resize inverted an axis.
func (s *Shape) resizeTo(parent engine.Point, pointerID int) []AxisResult {
	before := s.rect.Snapshot()
	local := s.rect.ToLocalSpace(parent)

	switch s.activeHandle {
	case ResizeTopLeft:
		s.rect.SetTopLeft(local)
	case ResizeTopRight:
		s.rect.SetTopRight(local)
	case ResizeBottomRight:
		s.rect.SetBottomRight(local)
	case ResizeBottomLeft:
		s.rect.SetBottomLeft(local)
	default:
		return nil
	}

	results := s.commit(before, AxisX, AxisY, AxisWidth, AxisHeight)

	// Handle flip: when a drag pushes a corner past the opposite one, the
	// grabbed corner's visual identity changes. Hand the gesture off to the
	// new handle so the drag target stays under the pointer.
	next := s.activeHandle
	w, h := s.rect.Width(), s.rect.Height()
	switch {
	case w < 0 && h < 0:
		next = s.activeHandle.Opposite()
	case w < 0:
		next = s.activeHandle.FlipX()
	case h < 0:
		next = s.activeHandle.FlipY()
	}
	if next != s.activeHandle {
		if pointerID >= 0 {
			s.host.ReleasePointerCapture(s.activeHandle, pointerID)
			s.host.SetPointerCapture(next, pointerID)
		}
		s.host.FocusHandle(next)
		s.activeHandle = next
	}

	return results
}

// --- Keyboard events ---

// HandleKeyDown mirrors pointer interaction on the keyboard: arrows move
// the shape (or resize when a resize handle holds focus), Alt+arrows
// rotate. Shift enlarges the step.
func (s *Shape) HandleKeyDown(ev KeyEvent) []AxisResult {
	dx, dy := arrowDelta(ev.Key)
	if dx == 0 && dy == 0 {
		return nil
	}

	if ev.Alt {
		step := rotateStep
		if ev.Shift {
			step = rotateStepBig
		}
		before := s.rect.Snapshot()
		s.rect.SetRotation(s.rect.Rotation() + float64(dx+dy)*step)
		return s.commit(before, AxisRotation)
	}

	step := moveStep
	if ev.Shift {
		step = moveStepBig
	}

	if ev.FocusedHandle.IsResize() {
		// Synthesize a pointer delta on the focused handle and route it
		// through the same corner-setter/flip path as a pointer drag.
		s.activeHandle = ev.FocusedHandle
		corner := s.rect.ToParentSpace(s.cornerLocal(ev.FocusedHandle))
		target := engine.Point{X: corner.X + float64(dx)*step, Y: corner.Y + float64(dy)*step}
		return s.resizeTo(target, -1)
	}

	before := s.rect.Snapshot()
	s.rect.SetX(s.rect.X() + float64(dx)*step)
	s.rect.SetY(s.rect.Y() + float64(dy)*step)
	return s.commit(before, AxisX, AxisY)
}

func (s *Shape) cornerLocal(h Handle) engine.Point {
	switch h {
	case ResizeTopLeft:
		return s.rect.TopLeft()
	case ResizeTopRight:
		return s.rect.TopRight()
	case ResizeBottomRight:
		return s.rect.BottomRight()
	default:
		return s.rect.BottomLeft()
	}
}

func arrowDelta(key string) (dx, dy int) {
	switch key {
	case "ArrowLeft":
		return -1, 0
	case "ArrowRight":
		return 1, 0
	case "ArrowUp":
		return 0, -1
	case "ArrowDown":
		return 0, 1
	}
	return 0, 0
}

// --- Auto-sizing ---

// SetWidthAuto switches the width axis between explicit and
// content-tracked sizing.
func (s *Shape) SetWidthAuto(auto bool) {
	s.widthAuto = auto
	s.syncWatch()
}

// SetHeightAuto switches the height axis between explicit and
// content-tracked sizing.
func (s *Shape) SetHeightAuto(auto bool) {
	s.heightAuto = auto
	s.syncWatch()
}

// WidthAuto reports whether the width axis tracks content measurement.
func (s *Shape) WidthAuto() bool { return s.widthAuto }

// HeightAuto reports whether the height axis tracks content measurement.
func (s *Shape) HeightAuto() bool { return s.heightAuto }

func (s *Shape) syncWatch() {
	wantWatch := (s.widthAuto || s.heightAuto) && s.measurer != nil
	switch {
	case wantWatch && s.cancelWatch == nil:
		s.cancelWatch = s.measurer.Subscribe(s.contentRectChanged)
	case !wantWatch && s.cancelWatch != nil:
		s.cancelWatch()
		s.cancelWatch = nil
	}
}

// contentRectChanged adopts a content measurement on whichever axes are
// auto. It runs through the same commit pipeline as interactive mutation.
func (s *Shape) contentRectChanged(content engine.Rect) {
	var axes []Axis
	before := s.rect.Snapshot()
	if s.widthAuto {
		s.rect.SetWidth(content.Width)
		axes = append(axes, AxisWidth)
	}
	if s.heightAuto {
		s.rect.SetHeight(content.Height)
		axes = append(axes, AxisHeight)
	}
	if len(axes) > 0 {
		s.commit(before, axes...)
	}
}

// --- Commit protocol ---

// commit offers the already-applied mutation batch to listeners and rolls
// back any axes they prevented. Rollback is per-axis: rejecting width does
// not undo a simultaneous x change.
func (s *Shape) commit(before engine.Snapshot, axes ...Axis) []AxisResult {
	ev := &TransformEvent{Current: s.rect.Snapshot(), Previous: before}
	for _, l := range s.listeners {
		l(ev)
	}

	results := make([]AxisResult, 0, len(axes))
	rolled := ev.Current
	rollback := false
	for _, a := range axes {
		if !ev.Prevented(a) {
			results = append(results, AxisResult{Axis: a, Committed: true})
			continue
		}
		switch a {
		case AxisX:
			rolled.X = before.X
		case AxisY:
			rolled.Y = before.Y
		case AxisWidth:
			rolled.Width = before.Width
		case AxisHeight:
			rolled.Height = before.Height
		case AxisRotation:
			rolled.Rotation = before.Rotation
		}
		rollback = true
		results = append(results, AxisResult{Axis: a, Committed: false})
	}
	if rollback {
		s.rect.Restore(rolled)
	}
	return results
}
