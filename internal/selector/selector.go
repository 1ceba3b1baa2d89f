// Package selector parses connection endpoint specifications: a literal
// coordinate pair, a CSS-style selector, or a cross-frame selector
// namespaced with the ">>>" separator.
package selector

import (
	"strconv"
	"strings"

	"github.com/folkcanvas/folk/backend-go/internal/engine"
)

// CrossFrameSeparator splits a frame name from a selector inside the frame.
const CrossFrameSeparator = ">>>"

// Kind discriminates the parsed vertex forms.
type Kind int

const (
	KindPoint Kind = iota
	KindSelector
	KindCrossFrame
)

// Vertex is one parsed endpoint.
type Vertex struct {
	Kind     Kind
	Point    engine.Point // KindPoint
	Selector string       // KindSelector, KindCrossFrame
	Frame    string       // KindCrossFrame
}

// Resolver turns a selector into an observable target; the host environment
// supplies it. A false return means the selector matched nothing.
type Resolver func(selector string) (any, bool)

// Parse interprets a vertex spec. "12,34" parses as a point; anything with
// the ">>>" separator as a cross-frame selector; the rest as a plain
// selector. Empty specs are rejected.
func Parse(spec string) (Vertex, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Vertex{}, false
	}

	if frame, sel, ok := strings.Cut(spec, CrossFrameSeparator); ok {
		frame = strings.TrimSpace(frame)
		sel = strings.TrimSpace(sel)
		if frame == "" || sel == "" {
			return Vertex{}, false
		}
		return Vertex{Kind: KindCrossFrame, Frame: frame, Selector: sel}, true
	}

	if p, ok := parsePoint(spec); ok {
		return Vertex{Kind: KindPoint, Point: p}, true
	}

	return Vertex{Kind: KindSelector, Selector: spec}, true
}

func parsePoint(spec string) (engine.Point, bool) {
	xs, ys, ok := strings.Cut(spec, ",")
	if !ok {
		return engine.Point{}, false
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return engine.Point{}, false
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return engine.Point{}, false
	}
	return engine.Point{X: x, Y: y}, true
}

// String renders the vertex back to its spec form.
func (v Vertex) String() string {
	switch v.Kind {
	case KindPoint:
		return strconv.FormatFloat(v.Point.X, 'g', -1, 64) + "," + strconv.FormatFloat(v.Point.Y, 'g', -1, 64)
	case KindCrossFrame:
		return v.Frame + " " + CrossFrameSeparator + " " + v.Selector
	default:
		return v.Selector
	}
}
