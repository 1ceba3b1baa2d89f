// Package canvas owns the set of shapes on one spatial surface: creation,
// removal, stacking order, selection, and hit testing. It is the backend
// counterpart of the DOM tree the shapes render into.
package canvas

import (
	"encoding/json"

	"github.com/folkcanvas/folk/backend-go/internal/engine"
	"github.com/folkcanvas/folk/backend-go/internal/interaction"
	"github.com/folkcanvas/folk/backend-go/internal/observer"
	"github.com/folkcanvas/folk/backend-go/internal/typeid"
)

// Canvas holds shapes in painter's order (back to front).
type Canvas struct {
	shapes map[string]*interaction.Shape
	order  []string

	selection []string

	host interaction.Host
	obs  *observer.RectObserver
}

// NewCanvas creates an empty canvas. The observer is optional; when
// present, every shape mutation marks the shape dirty so connector-style
// consumers get coalesced rect-change callbacks.
func NewCanvas(host interaction.Host, obs *observer.RectObserver) *Canvas {
	if host == nil {
		host = interaction.NopHost{}
	}
	return &Canvas{
		shapes: make(map[string]*interaction.Shape),
		host:   host,
		obs:    obs,
	}
}

// AddShape creates a shape at the given geometry and returns its ID.
func (c *Canvas) AddShape(x, y, width, height float64) string {
	id := typeid.NewShapeID()
	shape := interaction.NewShape(engine.NewTransformRect(x, y, width, height), c.host, nil)

	if c.obs != nil {
		shape.OnTransform(func(*interaction.TransformEvent) {
			c.obs.NotifyChanged(shape)
		})
	}

	c.shapes[id] = shape
	c.order = append(c.order, id)
	return id
}

// RemoveShape deletes a shape and drops it from the selection.
func (c *Canvas) RemoveShape(id string) {
	if _, ok := c.shapes[id]; !ok {
		return
	}
	delete(c.shapes, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.selection = removeID(c.selection, id)
}

// Shape returns the shape for an ID, or nil.
func (c *Canvas) Shape(id string) *interaction.Shape {
	return c.shapes[id]
}

// IDs returns shape IDs in painter's order.
func (c *Canvas) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// SetSelection sets the selected shape IDs.
func (c *Canvas) SetSelection(ids []string) {
	c.selection = ids
}

// Selection returns the selected shape IDs.
func (c *Canvas) Selection() []string {
	return c.selection
}

// HitTest returns the ID of the topmost shape containing the parent-space
// point, or empty string. The axis-aligned bounds prefilter a candidate;
// the exact test runs in the shape's local frame so rotated shapes hit
// correctly.
func (c *Canvas) HitTest(x, y float64) string {
	for i := len(c.order) - 1; i >= 0; i-- {
		id := c.order[i]
		shape := c.shapes[id]
		rect := shape.View()

		if !rect.Bounds().Contains(x, y) {
			continue
		}
		local := rect.ToLocalSpace(engine.Point{X: x, Y: y})
		if containsLocal(rect.Width(), rect.Height(), local) {
			return id
		}
	}
	return ""
}

// containsLocal tests a local point against the rect's own frame,
// tolerating inverted (negative) dimensions.
func containsLocal(w, h float64, p engine.Point) bool {
	minX, maxX := min(0, w), max(0, w)
	minY, maxY := min(0, h), max(0, h)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// SelectionBounds returns the union of the selected shapes' parent-space
// bounds.
func (c *Canvas) SelectionBounds() engine.Rect {
	var result engine.Rect
	first := true

	for _, id := range c.selection {
		shape, ok := c.shapes[id]
		if !ok {
			continue
		}
		b := shape.View().Bounds()
		if first {
			result = b
			first = false
		} else {
			result = result.Union(b)
		}
	}

	return result
}

// shapeState is the serialized form handed to frontends.
type shapeState struct {
	ID        string          `json:"id"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Rotation  float64         `json:"rotation"`
	Transform string          `json:"transform"`
	Bounds    engine.Rect     `json:"bounds"`
	Snapshot  engine.Snapshot `json:"-"`
}

// ShapeJSON serializes one shape's geometry, including its CSS transform
// string, for the frontend to apply.
func (c *Canvas) ShapeJSON(id string) string {
	shape, ok := c.shapes[id]
	if !ok {
		return "{}"
	}
	rect := shape.View()
	state := shapeState{
		ID:        id,
		X:         rect.X(),
		Y:         rect.Y(),
		Width:     rect.Width(),
		Height:    rect.Height(),
		Rotation:  rect.Rotation(),
		Transform: rect.TransformMatrix().ToCSSString(),
		Bounds:    rect.Bounds(),
	}
	data, _ := json.Marshal(state)
	return string(data)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
