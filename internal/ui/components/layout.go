package components

import (
	"math"

	"github.com/uoon-dev/sancho/internal/sheet"
)

// Terminal cells are converted to device units at a nominal cell size so
// the sheet's distance and velocity thresholds keep their usual feel.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// LayoutManager centralizes the geometry of the sheet on the terminal. Rects
// are in cells; points, extents and offsets are in device units.
type LayoutManager struct {
	width  int
	height int
	edge   sheet.Edge
	size   float64 // fraction of the terminal along the travel axis
	footer int     // lines reserved below the page for the help line
}

// NewLayoutManager creates a layout manager for a terminal of the given size
func NewLayoutManager(width, height int, edge sheet.Edge, size float64) *LayoutManager {
	return &LayoutManager{
		width:  width,
		height: height,
		edge:   edge,
		size:   size,
		footer: 1,
	}
}

// SetSize updates the terminal size
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// SetFraction updates the share of the terminal the sheet takes
func (lm *LayoutManager) SetFraction(size float64) {
	lm.size = size
}

// Edge returns the edge the sheet is anchored to
func (lm *LayoutManager) Edge() sheet.Edge {
	return lm.edge
}

// Page returns the area of the background page
func (lm *LayoutManager) Page() Rect {
	return Rect{Width: lm.width, Height: max(lm.height-lm.footer, 1)}
}

// SheetRect returns the sheet's rectangle at its fully open resting position
func (lm *LayoutManager) SheetRect() Rect {
	page := lm.Page()

	switch lm.edge {
	case sheet.EdgeLeft:
		w := lm.span(page.Width)
		return Rect{X: 0, Y: 0, Width: w, Height: page.Height}
	case sheet.EdgeRight:
		w := lm.span(page.Width)
		return Rect{X: page.Width - w, Y: 0, Width: w, Height: page.Height}
	case sheet.EdgeTop:
		h := lm.span(page.Height)
		return Rect{X: 0, Y: 0, Width: page.Width, Height: h}
	default:
		h := lm.span(page.Height)
		return Rect{X: 0, Y: page.Height - h, Width: page.Width, Height: h}
	}
}

// span is the sheet length along the travel axis, at least one cell
func (lm *LayoutManager) span(total int) int {
	n := int(math.Round(float64(total) * lm.size))
	return min(max(n, 1), max(total, 1))
}

// Extent returns the measured size of a rendered block of the given cells
func (lm *LayoutManager) Extent(width, height int) sheet.Extent {
	return sheet.Extent{
		Width:  float64(width) * CellWidth,
		Height: float64(height) * CellHeight,
	}
}

// Point converts a cell to device units
func (lm *LayoutManager) Point(x, y int) sheet.Point {
	return sheet.Point{X: float64(x) * CellWidth, Y: float64(y) * CellHeight}
}

// Origin returns the top-left cell of the sheet displaced by an untapered
// offset. The taper is applied here, at render time only.
func (lm *LayoutManager) Origin(offset sheet.Offset) (int, int) {
	rest := lm.SheetRect()
	shown := sheet.TaperOffset(offset, lm.edge)
	return rest.X + int(math.Round(shown.X/CellWidth)), rest.Y + int(math.Round(shown.Y/CellHeight))
}

// SheetAt returns the rectangle the sheet occupies at the given offset
func (lm *LayoutManager) SheetAt(offset sheet.Offset) Rect {
	r := lm.SheetRect()
	r.X, r.Y = lm.Origin(offset)
	return r
}

// HitSheet reports whether the cell (x, y) falls on the displayed sheet
func (lm *LayoutManager) HitSheet(x, y int, offset sheet.Offset) bool {
	return lm.SheetAt(offset).Contains(x, y)
}

// HitOverlay reports whether the cell (x, y) falls on the page outside the
// displayed sheet
func (lm *LayoutManager) HitOverlay(x, y int, offset sheet.Offset) bool {
	return lm.Page().Contains(x, y) && !lm.HitSheet(x, y, offset)
}
