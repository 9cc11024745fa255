package core

import "math"

// Viewport maps a fixed logical world onto a screen of arbitrary size.
// Game objects live in world units; only the renderer sees cells.
type Viewport struct {
	worldW, worldH float64
	cols, rows     int
	scaleX, scaleY float64
}

// NewViewport creates a viewport for a world of worldW x worldH units
// shown on cols x rows cells.
func NewViewport(worldW, worldH float64, cols, rows int) Viewport {
	v := Viewport{worldW: worldW, worldH: worldH}
	v.Resize(cols, rows)
	return v
}

// Resize updates the scale factors for new screen dimensions.
func (v *Viewport) Resize(cols, rows int) {
	v.cols = cols
	v.rows = rows
	if v.worldW > 0 {
		v.scaleX = float64(cols) / v.worldW
	}
	if v.worldH > 0 {
		v.scaleY = float64(rows) / v.worldH
	}
}

// Col converts a world x-coordinate to a screen column.
func (v Viewport) Col(x float64) int {
	return int(math.Floor(x * v.scaleX))
}

// Row converts a world y-coordinate to a screen row.
func (v Viewport) Row(y float64) int {
	return int(math.Floor(y * v.scaleY))
}

// Rect converts a world box to the covering cell rectangle.
// Any box with positive size covers at least one cell.
func (v Viewport) Rect(b Box) Rect {
	x0 := v.Col(b.X)
	y0 := v.Row(b.Y)
	x1 := int(math.Ceil(b.Right() * v.scaleX))
	y1 := int(math.Ceil(b.Bottom() * v.scaleY))
	if b.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if b.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// X converts a screen column back to the world x-coordinate of its center.
func (v Viewport) X(col int) float64 {
	if v.scaleX == 0 {
		return 0
	}
	return (float64(col) + 0.5) / v.scaleX
}
