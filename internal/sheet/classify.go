package sheet

import "math"

// ShouldCaptureGesture decides whether a drag belongs to the sheet. A gesture
// whose dominant axis differs from the edge's travel axis is left to the
// content underneath (for example vertical scrolling under a left sheet).
// Equal movement on both axes, including none at all, is never captured.
func ShouldCaptureGesture(initial, current Point, edge Edge) bool {
	xDiff := math.Abs(initial.X - current.X)
	yDiff := math.Abs(initial.Y - current.Y)

	if xDiff == yDiff {
		return false
	}
	if xDiff > yDiff {
		return edge.Horizontal()
	}
	return !edge.Horizontal()
}
