package interaction

import (
	"fmt"
	"math"
	"net/url"
)

const rotateCursorArrow = `<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32" viewBox="0 0 32 32"><g transform="rotate(%d 16 16)"><path d="M22.4789 9.45728L25.9935 12.9942L22.4789 16.5283V14.1032C18.126 14.1502 14.6071 17.6737 14.5675 22.0283H17.05L13.513 25.543L9.97889 22.0283H12.5674C12.6071 16.5691 17.0214 12.1503 22.4789 12.1031L22.4789 9.45728Z" fill="black"/></g></svg>`

// RotateCursor returns a CSS cursor value for a rotate handle: an arrow
// glyph rotated so it points along the locally-correct diagonal for the
// grasped corner at the shape's current rotation.
func RotateCursor(rotation float64, h Handle) string {
	deg := math.Mod(rotation*180/math.Pi+h.rotationOffset(), 360)
	if deg < 0 {
		deg += 360
	}
	svg := fmt.Sprintf(rotateCursorArrow, int(math.Round(deg)))
	return fmt.Sprintf(`url("data:image/svg+xml,%s") 16 16, pointer`, url.PathEscape(svg))
}
