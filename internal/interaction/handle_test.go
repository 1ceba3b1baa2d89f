package interaction

import "testing"

func TestHandleFlipTables(t *testing.T) {
	cases := []struct {
		h, opposite, flipX, flipY Handle
	}{
		{ResizeTopLeft, ResizeBottomRight, ResizeTopRight, ResizeBottomLeft},
		{ResizeTopRight, ResizeBottomLeft, ResizeTopLeft, ResizeBottomRight},
		{ResizeBottomRight, ResizeTopLeft, ResizeBottomLeft, ResizeTopRight},
		{ResizeBottomLeft, ResizeTopRight, ResizeBottomRight, ResizeTopLeft},
	}

	for _, c := range cases {
		if got := c.h.Opposite(); got != c.opposite {
			t.Errorf("%v.Opposite() = %v, want %v", c.h, got, c.opposite)
		}
		if got := c.h.FlipX(); got != c.flipX {
			t.Errorf("%v.FlipX() = %v, want %v", c.h, got, c.flipX)
		}
		if got := c.h.FlipY(); got != c.flipY {
			t.Errorf("%v.FlipY() = %v, want %v", c.h, got, c.flipY)
		}
	}
}

func TestHandleFlipsAreInvolutions(t *testing.T) {
	for h := ResizeTopLeft; h <= ResizeBottomLeft; h++ {
		if h.Opposite().Opposite() != h {
			t.Errorf("Opposite not an involution for %v", h)
		}
		if h.FlipX().FlipX() != h {
			t.Errorf("FlipX not an involution for %v", h)
		}
		if h.FlipY().FlipY() != h {
			t.Errorf("FlipY not an involution for %v", h)
		}
	}
}

func TestRotateHandlesDoNotRemap(t *testing.T) {
	for h := RotateTopLeft; h <= RotateBottomLeft; h++ {
		if h.Opposite() != h || h.FlipX() != h || h.FlipY() != h {
			t.Errorf("rotate handle %v should map to itself", h)
		}
	}
}

func TestParseHandle(t *testing.T) {
	for h := ResizeTopLeft; h <= RotateBottomLeft; h++ {
		got, ok := ParseHandle(h.String())
		if !ok || got != h {
			t.Errorf("ParseHandle(%q) = %v, %v", h.String(), got, ok)
		}
	}
	if _, ok := ParseHandle("resize-middle"); ok {
		t.Errorf("ParseHandle accepted an unknown handle name")
	}
}

func TestHandleKinds(t *testing.T) {
	if HandleNone.IsResize() || HandleNone.IsRotate() {
		t.Errorf("HandleNone misclassified")
	}
	if !ResizeTopLeft.IsResize() || ResizeTopLeft.IsRotate() {
		t.Errorf("ResizeTopLeft misclassified")
	}
	if !RotateBottomRight.IsRotate() || RotateBottomRight.IsResize() {
		t.Errorf("RotateBottomRight misclassified")
	}
}
