package sheet

// DefaultExtent stands in for an unmeasured panel dimension so a closed
// sheet never flashes at a zero offset before its first measurement.
const DefaultExtent = 400.0

// Point is a position or displacement in device units
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Extent is the measured size of the panel
type Extent struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Known reports whether the panel has been measured along the edge's axis
func (e Extent) Known(edge Edge) bool {
	return e.along(edge) > 0
}

func (e Extent) along(edge Edge) float64 {
	if edge.Axis() == AxisX {
		return e.Width
	}
	return e.Height
}

// orDefault returns the travel-axis extent or DefaultExtent when unmeasured
func (e Extent) orDefault(edge Edge) float64 {
	if v := e.along(edge); v > 0 {
		return v
	}
	return DefaultExtent
}

// Offset is a displacement from the fully open resting position. Only the
// travel-axis component of an edge is ever non-zero.
type Offset struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Along returns the component of the offset on the edge's travel axis
func (o Offset) Along(edge Edge) float64 {
	if edge.Axis() == AxisX {
		return o.X
	}
	return o.Y
}

// offsetAlong builds an axis-constrained offset
func offsetAlong(edge Edge, v float64) Offset {
	if edge.Axis() == AxisX {
		return Offset{X: v}
	}
	return Offset{Y: v}
}

// GestureSample is one update of an in-progress drag
type GestureSample struct {
	// Delta is the cumulative movement since the press.
	Delta Point `json:"delta" yaml:"delta"`
	// Velocity is the release speed in units per millisecond.
	Velocity float64 `json:"velocity" yaml:"velocity"`
	// Direction carries the sign of the latest movement per axis.
	Direction Point `json:"direction" yaml:"direction"`
	Down      bool  `json:"down" yaml:"down"`
	Initial   Point `json:"initial" yaml:"initial"`
	Current   Point `json:"current" yaml:"current"`
}

// PanelState is threaded through every resolution step
type PanelState struct {
	Open   bool   `json:"open"`
	Edge   Edge   `json:"edge"`
	Extent Extent `json:"extent"`
	// PendingReleaseVelocity is written by a close commit and consumed
	// once by Settle.
	PendingReleaseVelocity *float64 `json:"pending_release_velocity,omitempty"`
}

// ClosedEvent is emitted when a release commits the sheet to closing
type ClosedEvent struct {
	Velocity float64 `json:"velocity"`
}

// Resolution is the output of resolving one gesture sample
type Resolution struct {
	Offset    Offset
	Closed    *ClosedEvent
	Immediate bool
}
