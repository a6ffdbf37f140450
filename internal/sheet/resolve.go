package sheet

import "math"

// FlickVelocity is the release speed (units/ms) above which a flick toward
// the closing side closes the sheet regardless of distance
const FlickVelocity = 0.2

// ResolvePosition computes the target offset for a gesture sample.
//
// While the pointer is down the target tracks the raw delta 1:1 on the
// travel axis. On release exactly one decision is made: a flick toward the
// closing side or a drag past half the extent commits the close, and the
// returned state carries the release velocity for the following Settle.
// Anything else settles back to fully open.
func ResolvePosition(s GestureSample, st PanelState) (PanelState, Resolution) {
	edge := st.Edge
	rule := edge.rule()
	d := axisValue(s.Delta, edge)

	if s.Down {
		return st, Resolution{Offset: offsetAlong(edge, d), Immediate: true}
	}

	flick := s.Velocity > FlickVelocity && rule.flickClosing(axisValue(s.Direction, edge))
	towardClosed := d*rule.closingSign > 0 || !st.Open
	dragged := towardClosed && math.Abs(d) > st.Extent.orDefault(edge)/2

	if flick || dragged {
		v := s.Velocity
		st.PendingReleaseVelocity = &v
		return st, Resolution{
			Offset: offsetAlong(edge, d),
			Closed: &ClosedEvent{Velocity: v},
		}
	}

	return st, Resolution{Offset: Offset{}}
}

// Settle returns the resting target for the current open state and the
// initial velocity for the animation toward it. A pending release velocity
// is consumed and cleared; otherwise the velocity is zero.
func Settle(st PanelState) (PanelState, Offset, float64) {
	target := DefaultOffset(st.Open, st.Edge, st.Extent)

	var velocity float64
	if st.PendingReleaseVelocity != nil {
		velocity = *st.PendingReleaseVelocity
		st.PendingReleaseVelocity = nil
	}
	return st, target, velocity
}
