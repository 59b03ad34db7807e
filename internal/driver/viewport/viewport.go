// Package viewport converts between the three coordinate systems drivers
// deal with: screen space (origin top-left, +Y down), window space (origin
// bottom-left, +Y up) and world space (origin centre, +Y up).
package viewport

import (
	"math"

	"github.com/topdown/shooter/internal/vmath"
)

// Viewport is a window of Width×Height logical pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// ScreenToWindow flips the Y axis.
func (v Viewport) ScreenToWindow(x, y float64) vmath.Vec2 {
	return vmath.Vec2{X: x, Y: v.Height - y}
}

// WorldToScreen maps a world point to screen pixels.
func (v Viewport) WorldToScreen(p vmath.Vec2) (x, y float64) {
	return p.X + v.Width/2, v.Height/2 - p.Y
}

// ScreenAngle converts a world rotation (counter-clockwise, +Y up) to the
// clockwise angle used when drawing in screen space.
func ScreenAngle(rotation float64) float64 {
	return -rotation
}

// Grid lays the viewport over Cols×Rows terminal cells.
type Grid struct {
	Viewport
	Cols int
	Rows int
}

func (g Grid) cellSize() (w, h float64) {
	return g.Width / float64(g.Cols), g.Height / float64(g.Rows)
}

// CellToWindow returns the window-space centre of a cell.
func (g Grid) CellToWindow(cx, cy int) vmath.Vec2 {
	w, h := g.cellSize()
	return g.ScreenToWindow((float64(cx)+0.5)*w, (float64(cy)+0.5)*h)
}

// WorldToCell returns the cell containing p. ok is false off-grid.
func (g Grid) WorldToCell(p vmath.Vec2) (cx, cy int, ok bool) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, false
	}
	w, h := g.cellSize()
	sx, sy := g.WorldToScreen(p)
	cx, cy = int(math.Floor(sx/w)), int(math.Floor(sy/h))
	if cx < 0 || cy < 0 || cx >= g.Cols || cy >= g.Rows {
		return cx, cy, false
	}
	return cx, cy, true
}

// CellsFor is how many cells an extent spans, at least one.
func (g Grid) CellsFor(width, height float64) (cols, rows int) {
	w, h := g.cellSize()
	cols, rows = int(math.Round(width/w)), int(math.Round(height/h))
	return max(cols, 1), max(rows, 1)
}
