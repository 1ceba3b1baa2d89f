package engine

// RectReader is the read-only surface of a TransformRect. Consumers that
// only need to look at a rectangle (connectors, renderers, observers) should
// accept this interface instead of the concrete type.
type RectReader interface {
	X() float64
	Y() float64
	Width() float64
	Height() float64
	Rotation() float64
	TransformOrigin() Point
	RotateOrigin() Point
	TransformMatrix() Matrix2D
	InverseMatrix() Matrix2D
	Snapshot() Snapshot
	ToLocalSpace(Point) Point
	ToParentSpace(Point) Point
	TopLeft() Point
	TopRight() Point
	BottomRight() Point
	BottomLeft() Point
	Center() Point
	Bounds() Rect
}

var (
	_ RectReader = (*TransformRect)(nil)
	_ RectReader = (*ReadonlyRect)(nil)
)

// ReadonlyRect wraps a TransformRect and forwards reads while rejecting
// writes. Writes panic rather than silently no-op: handing a readonly view
// to code that then mutates it is a programming error, and the panic
// surfaces it at the call site.
//
// The wrapper owns no state of its own; it always reflects the underlying
// rect's latest values.
type ReadonlyRect struct {
	r *TransformRect
}

// Readonly returns a read-only view of the rect.
func (r *TransformRect) Readonly() *ReadonlyRect {
	return &ReadonlyRect{r: r}
}

func (r *ReadonlyRect) X() float64                { return r.r.X() }
func (r *ReadonlyRect) Y() float64                { return r.r.Y() }
func (r *ReadonlyRect) Width() float64            { return r.r.Width() }
func (r *ReadonlyRect) Height() float64           { return r.r.Height() }
func (r *ReadonlyRect) Rotation() float64         { return r.r.Rotation() }
func (r *ReadonlyRect) TransformOrigin() Point    { return r.r.TransformOrigin() }
func (r *ReadonlyRect) RotateOrigin() Point       { return r.r.RotateOrigin() }
func (r *ReadonlyRect) TransformMatrix() Matrix2D { return r.r.TransformMatrix() }
func (r *ReadonlyRect) InverseMatrix() Matrix2D   { return r.r.InverseMatrix() }
func (r *ReadonlyRect) Snapshot() Snapshot        { return r.r.Snapshot() }
func (r *ReadonlyRect) ToLocalSpace(p Point) Point  { return r.r.ToLocalSpace(p) }
func (r *ReadonlyRect) ToParentSpace(p Point) Point { return r.r.ToParentSpace(p) }
func (r *ReadonlyRect) TopLeft() Point            { return r.r.TopLeft() }
func (r *ReadonlyRect) TopRight() Point           { return r.r.TopRight() }
func (r *ReadonlyRect) BottomRight() Point        { return r.r.BottomRight() }
func (r *ReadonlyRect) BottomLeft() Point         { return r.r.BottomLeft() }
func (r *ReadonlyRect) Center() Point             { return r.r.Center() }
func (r *ReadonlyRect) Bounds() Rect              { return r.r.Bounds() }

func (r *ReadonlyRect) SetX(float64)               { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetY(float64)               { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetWidth(float64)           { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetHeight(float64)          { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetRotation(float64)        { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetTransformOrigin(Point)   { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetRotateOrigin(Point)      { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetTopLeft(Point)           { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetTopRight(Point)          { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetBottomRight(Point)       { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) SetBottomLeft(Point)        { panic("engine: write to readonly rect") }
func (r *ReadonlyRect) Restore(Snapshot)           { panic("engine: write to readonly rect") }
