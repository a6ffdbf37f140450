package sheet

// TaperFactor damps motion that overshoots the open resting position
const TaperFactor = 0.4

// Taper maps a travel-axis value to the value that should be displayed.
// Closing motion passes through; motion past the open position is damped.
// Only ever apply it to rendered values, never to targets.
func Taper(value float64, edge Edge) float64 {
	if value*edge.ClosingSign() >= 0 {
		return value
	}
	return value * TaperFactor
}

// TaperOffset applies Taper to the travel-axis component of an offset
func TaperOffset(o Offset, edge Edge) Offset {
	return offsetAlong(edge, Taper(o.Along(edge), edge))
}
