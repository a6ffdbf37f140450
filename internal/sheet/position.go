package sheet

// DefaultOffset returns the resting offset for the open or closed state
func DefaultOffset(open bool, edge Edge, ext Extent) Offset {
	if open {
		return Offset{}
	}
	return offsetAlong(edge, edge.ClosingSign()*ext.orDefault(edge))
}
