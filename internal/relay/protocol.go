package relay

import "github.com/folkcanvas/folk/backend-go/internal/engine"

// Message is one frame-relay protocol message. The shapes mirror the
// postMessage handshake between an embedding document and its iframes:
// the child announces readiness, the parent asks for elements by selector,
// and the child streams rect changes back.
type Message struct {
	Type        string       `json:"type"`
	FrameID     string       `json:"frameId,omitempty"`
	ClientID    string       `json:"clientId,omitempty"`
	Selector    string       `json:"selector,omitempty"`
	ContentRect *engine.Rect `json:"contentRect,omitempty"`
}

const (
	TypeIframeReady      = "folk-iframe-ready"
	TypeObserveElement   = "folk-observe-element"
	TypeUnobserveElement = "folk-unobserve-element"
	TypeElementChange    = "folk-element-change"
)

// Client roles within a frame room.
const (
	RoleParent = "parent"
	RoleChild  = "child"
)

// ComposeFrameRect maps a child-document rect into parent space by
// offsetting it with the frame's own viewport rect. One level of nesting is
// supported; deeper nesting would compose again at each level.
func ComposeFrameRect(frame engine.Rect, child engine.Rect) engine.Rect {
	return child.Translated(frame.X, frame.Y)
}

// FrameElement is the parent-side stand-in for an element living inside an
// iframe. It composes the frame's viewport rect with the child-reported
// rect, so it can be observed like any local target.
type FrameElement struct {
	Selector  string
	frameRect engine.Rect
	childRect engine.Rect
}

// NewFrameElement creates a frame element for the given child selector.
func NewFrameElement(selector string) *FrameElement {
	return &FrameElement{Selector: selector}
}

// SetFrameRect updates the iframe's own viewport rect in parent space.
func (e *FrameElement) SetFrameRect(r engine.Rect) { e.frameRect = r }

// SetChildRect updates the child-reported rect (child-document space).
func (e *FrameElement) SetChildRect(r engine.Rect) { e.childRect = r }

// BoundingRect returns the composed parent-space rect.
func (e *FrameElement) BoundingRect() engine.Rect {
	return ComposeFrameRect(e.frameRect, e.childRect)
}
