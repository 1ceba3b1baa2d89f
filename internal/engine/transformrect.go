package engine

// TransformRect is a rectangle positioned in its parent's coordinate space
// with a rotation. Local space puts (0,0) at the unrotated top-left corner,
// so the corners are (0,0), (width,0), (width,height), (0,height) by
// definition; all rotation lives in the derived transform matrix.
//
// Width and height are signed. They may go negative during an interactive
// resize, representing an axis-inverted rectangle. The geometry never
// self-corrects the inversion; the interaction layer reads the signs and
// reassigns handle identity.
//
// A TransformRect is exclusively owned by the component that created it.
// Share read access through Readonly().
type TransformRect struct {
	x        float64
	y        float64
	width    float64
	height   float64
	rotation float64 // radians

	transformOrigin Point // normalized, translation anchor
	rotateOrigin    Point // normalized, rotation pivot

	prev Snapshot // values before the most recent mutation

	transform Matrix2D // local -> parent
	inverse   Matrix2D // parent -> local
}

// Snapshot is a value copy of a rect's mutable geometry, used for
// previous/current comparisons in the change protocol.
type Snapshot struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// NewTransformRect creates a rect at (x, y) with the given dimensions,
// zero rotation, transform origin at the top-left corner and rotate origin
// at the center.
func NewTransformRect(x, y, width, height float64) *TransformRect {
	r := &TransformRect{
		x:            x,
		y:            y,
		width:        width,
		height:       height,
		rotateOrigin: Point{0.5, 0.5},
	}
	r.prev = r.Snapshot()
	r.update()
	return r
}

// update recomputes the forward matrix and its inverse. Called after every
// mutation so readers always see matrices consistent with x/y/width/height/
// rotation.
func (r *TransformRect) update() {
	ox := r.width * r.transformOrigin.X
	oy := r.height * r.transformOrigin.Y
	rx := r.width * r.rotateOrigin.X
	ry := r.height * r.rotateOrigin.Y

	// translate(x+origin) * translate(pivot) * rotate * translate(-pivot)
	r.transform = Translate(r.x+ox, r.y+oy).
		Translated(rx, ry).
		Rotated(r.rotation).
		Translated(-rx, -ry)
	r.inverse = r.transform.Invert()
}

// --- Accessors ---

func (r *TransformRect) X() float64        { return r.x }
func (r *TransformRect) Y() float64        { return r.y }
func (r *TransformRect) Width() float64    { return r.width }
func (r *TransformRect) Height() float64   { return r.height }
func (r *TransformRect) Rotation() float64 { return r.rotation }

// TransformOrigin returns the normalized translation anchor.
func (r *TransformRect) TransformOrigin() Point { return r.transformOrigin }

// RotateOrigin returns the normalized rotation pivot.
func (r *TransformRect) RotateOrigin() Point { return r.rotateOrigin }

// TransformMatrix returns the local-to-parent matrix.
func (r *TransformRect) TransformMatrix() Matrix2D { return r.transform }

// InverseMatrix returns the parent-to-local matrix.
func (r *TransformRect) InverseMatrix() Matrix2D { return r.inverse }

// Snapshot returns a value copy of the current geometry.
func (r *TransformRect) Snapshot() Snapshot {
	return Snapshot{X: r.x, Y: r.y, Width: r.width, Height: r.height, Rotation: r.rotation}
}

// Previous returns the geometry as it was before the most recent mutation.
func (r *TransformRect) Previous() Snapshot { return r.prev }

// --- Setters ---
// Each setter records the pre-mutation snapshot, assigns without clamping,
// and recomputes the matrices.

func (r *TransformRect) SetX(v float64) {
	r.prev = r.Snapshot()
	r.x = v
	r.update()
}

func (r *TransformRect) SetY(v float64) {
	r.prev = r.Snapshot()
	r.y = v
	r.update()
}

func (r *TransformRect) SetWidth(v float64) {
	r.prev = r.Snapshot()
	r.width = v
	r.update()
}

func (r *TransformRect) SetHeight(v float64) {
	r.prev = r.Snapshot()
	r.height = v
	r.update()
}

func (r *TransformRect) SetRotation(radians float64) {
	r.prev = r.Snapshot()
	r.rotation = radians
	r.update()
}

func (r *TransformRect) SetTransformOrigin(p Point) {
	r.prev = r.Snapshot()
	r.transformOrigin = p
	r.update()
}

func (r *TransformRect) SetRotateOrigin(p Point) {
	r.prev = r.Snapshot()
	r.rotateOrigin = p
	r.update()
}

// Restore rewrites the full geometry from a snapshot in one step.
func (r *TransformRect) Restore(s Snapshot) {
	r.prev = r.Snapshot()
	r.x, r.y, r.width, r.height, r.rotation = s.X, s.Y, s.Width, s.Height, s.Rotation
	r.update()
}

// --- Coordinate conversion ---

// ToLocalSpace converts a parent-space point into the rect's own frame.
func (r *TransformRect) ToLocalSpace(p Point) Point {
	return r.inverse.ApplyToPoint(p)
}

// ToParentSpace converts a local-space point into the parent's frame.
func (r *TransformRect) ToParentSpace(p Point) Point {
	return r.transform.ApplyToPoint(p)
}

// --- Corners (local space) ---

func (r *TransformRect) TopLeft() Point     { return Point{0, 0} }
func (r *TransformRect) TopRight() Point    { return Point{r.width, 0} }
func (r *TransformRect) BottomRight() Point { return Point{r.width, r.height} }
func (r *TransformRect) BottomLeft() Point  { return Point{0, r.height} }

// Center returns the rect's center in parent space.
func (r *TransformRect) Center() Point {
	return r.ToParentSpace(Point{r.width / 2, r.height / 2})
}

// RotateOriginParent returns the rotation pivot in parent space.
func (r *TransformRect) RotateOriginParent() Point {
	return r.ToParentSpace(Point{r.width * r.rotateOrigin.X, r.height * r.rotateOrigin.Y})
}

// --- Corner setters ---
// Each setter takes a LOCAL-space target for one corner and resizes the rect
// so that corner moves there while the diagonally adjacent fixed corner keeps
// its PARENT-space position. The fixed corner is measured before the resize
// and any drift introduced by the matrix change (the rotation pivot depends
// on width/height) is compensated by translating x/y. This keeps the
// guarantee exact under rotation and under sign inversion.

// SetTopLeft moves the top-left corner to p, holding bottom-right fixed.
func (r *TransformRect) SetTopLeft(p Point) {
	r.prev = r.Snapshot()
	fixed := r.ToParentSpace(Point{r.width, r.height})
	r.width -= p.X
	r.height -= p.Y
	r.update()
	r.compensate(Point{r.width, r.height}, fixed)
}

// SetTopRight moves the top-right corner to p, holding bottom-left fixed.
func (r *TransformRect) SetTopRight(p Point) {
	r.prev = r.Snapshot()
	fixed := r.ToParentSpace(Point{0, r.height})
	r.width = p.X
	r.height -= p.Y
	r.update()
	r.compensate(Point{0, r.height}, fixed)
}

// SetBottomRight moves the bottom-right corner to p, holding top-left fixed.
func (r *TransformRect) SetBottomRight(p Point) {
	r.prev = r.Snapshot()
	fixed := r.ToParentSpace(Point{0, 0})
	r.width = p.X
	r.height = p.Y
	r.update()
	r.compensate(Point{0, 0}, fixed)
}

// SetBottomLeft moves the bottom-left corner to p, holding top-right fixed.
func (r *TransformRect) SetBottomLeft(p Point) {
	r.prev = r.Snapshot()
	fixed := r.ToParentSpace(Point{r.width, 0})
	r.width -= p.X
	r.height = p.Y
	r.update()
	r.compensate(Point{r.width, 0}, fixed)
}

// compensate translates the rect so that the given local point lands on
// wantParent, then refreshes the matrices.
func (r *TransformRect) compensate(local Point, wantParent Point) {
	got := r.ToParentSpace(local)
	r.x += wantParent.X - got.X
	r.y += wantParent.Y - got.Y
	r.update()
}

// Bounds returns the axis-aligned bounding box of the rotated rectangle in
// parent space, computed from all four transformed corners.
func (r *TransformRect) Bounds() Rect {
	return r.transform.TransformRect(Rect{X: 0, Y: 0, Width: r.width, Height: r.height})
}
