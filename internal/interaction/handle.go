package interaction

// Handle identifies one of the eight interactive grab points on a shape:
// four resize corners and four rotate corners. HandleNone means the shape
// body itself.
type Handle int

const (
	HandleNone Handle = iota
	ResizeTopLeft
	ResizeTopRight
	ResizeBottomRight
	ResizeBottomLeft
	RotateTopLeft
	RotateTopRight
	RotateBottomRight
	RotateBottomLeft
)

func (h Handle) String() string {
	switch h {
	case ResizeTopLeft:
		return "resize-top-left"
	case ResizeTopRight:
		return "resize-top-right"
	case ResizeBottomRight:
		return "resize-bottom-right"
	case ResizeBottomLeft:
		return "resize-bottom-left"
	case RotateTopLeft:
		return "rotation-top-left"
	case RotateTopRight:
		return "rotation-top-right"
	case RotateBottomRight:
		return "rotation-bottom-right"
	case RotateBottomLeft:
		return "rotation-bottom-left"
	default:
		return "none"
	}
}

// ParseHandle maps a handle name (as used in element part attributes) back
// to its Handle value.
func ParseHandle(s string) (Handle, bool) {
	for h := ResizeTopLeft; h <= RotateBottomLeft; h++ {
		if h.String() == s {
			return h, true
		}
	}
	return HandleNone, false
}

// IsResize reports whether h is one of the four resize corners.
func (h Handle) IsResize() bool {
	switch h {
	case ResizeTopLeft, ResizeTopRight, ResizeBottomRight, ResizeBottomLeft:
		return true
	}
	return false
}

// IsRotate reports whether h is one of the four rotate corners.
func (h Handle) IsRotate() bool {
	switch h {
	case RotateTopLeft, RotateTopRight, RotateBottomRight, RotateBottomLeft:
		return true
	}
	return false
}

// Opposite returns the diagonally opposite resize handle, used when a drag
// inverts both axes. Non-resize handles map to themselves.
func (h Handle) Opposite() Handle {
	switch h {
	case ResizeTopLeft:
		return ResizeBottomRight
	case ResizeTopRight:
		return ResizeBottomLeft
	case ResizeBottomRight:
		return ResizeTopLeft
	case ResizeBottomLeft:
		return ResizeTopRight
	default:
		return h
	}
}

// FlipX returns the handle mirrored across the X axis, used when a drag
// inverts only the width. Non-resize handles map to themselves.
func (h Handle) FlipX() Handle {
	switch h {
	case ResizeTopLeft:
		return ResizeTopRight
	case ResizeTopRight:
		return ResizeTopLeft
	case ResizeBottomRight:
		return ResizeBottomLeft
	case ResizeBottomLeft:
		return ResizeBottomRight
	default:
		return h
	}
}

// FlipY returns the handle mirrored across the Y axis, used when a drag
// inverts only the height. Non-resize handles map to themselves.
func (h Handle) FlipY() Handle {
	switch h {
	case ResizeTopLeft:
		return ResizeBottomLeft
	case ResizeBottomLeft:
		return ResizeTopLeft
	case ResizeTopRight:
		return ResizeBottomRight
	case ResizeBottomRight:
		return ResizeTopRight
	default:
		return h
	}
}

// rotationOffset returns the cursor glyph offset in degrees for a rotate
// handle, so the glyph points along the locally-correct diagonal whichever
// corner is grasped.
func (h Handle) rotationOffset() float64 {
	switch h {
	case RotateTopLeft:
		return 0
	case RotateTopRight:
		return 90
	case RotateBottomRight:
		return 180
	case RotateBottomLeft:
		return 270
	default:
		return 0
	}
}
