package sheet

import "math"

// ResolveOpacity returns the overlay opacity in [0,1] for a gesture sample.
// The overlay fades linearly as the sheet is dragged toward closed and never
// brightens past fully visible.
func ResolveOpacity(s GestureSample, ext Extent, open bool, edge Edge) float64 {
	if !open {
		return 0
	}
	if !s.Down {
		return 1
	}

	d := axisValue(s.Delta, edge)
	if d*edge.ClosingSign() <= 0 {
		return 1
	}

	e := math.Max(ext.along(edge), 1)
	return clamp01(1 - math.Abs(d)/e)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func axisValue(p Point, edge Edge) float64 {
	if edge.Axis() == AxisX {
		return p.X
	}
	return p.Y
}
