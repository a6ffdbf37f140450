package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEdges = []Edge{EdgeLeft, EdgeTop, EdgeRight, EdgeBottom}

func TestResolvePosition_DragTracksRawDeltaOnAxis(t *testing.T) {
	deltas := []Point{{X: -37.5, Y: 12}, {X: 80, Y: -3}, {X: 0, Y: 55}, {X: 1e-3, Y: -1e3}}

	for _, edge := range allEdges {
		for _, open := range []bool{true, false} {
			for _, d := range deltas {
				st := PanelState{Open: open, Edge: edge, Extent: Extent{Width: 300, Height: 200}}
				next, res := ResolvePosition(GestureSample{Delta: d, Down: true, Velocity: 3}, st)

				assert.Equal(t, st, next, "dragging must not touch state")
				assert.Nil(t, res.Closed)
				assert.True(t, res.Immediate)
				if edge.Horizontal() {
					assert.Equal(t, d.X, res.Offset.X, edge.String())
					assert.Zero(t, res.Offset.Y, edge.String())
				} else {
					assert.Equal(t, d.Y, res.Offset.Y, edge.String())
					assert.Zero(t, res.Offset.X, edge.String())
				}
			}
		}
	}
}

func TestResolvePosition_LeftDistanceClose(t *testing.T) {
	st := PanelState{Open: true, Edge: EdgeLeft, Extent: Extent{Width: 300}}
	next, res := ResolvePosition(GestureSample{Delta: Point{X: -200}, Velocity: 0.1}, st)

	require.NotNil(t, res.Closed)
	assert.Equal(t, 0.1, res.Closed.Velocity)
	assert.Equal(t, Offset{X: -200}, res.Offset)
	require.NotNil(t, next.PendingReleaseVelocity)
	assert.Equal(t, 0.1, *next.PendingReleaseVelocity)
}

func TestResolvePosition_LeftFlickClose(t *testing.T) {
	st := PanelState{Open: true, Edge: EdgeLeft, Extent: Extent{Width: 300}}
	_, res := ResolvePosition(GestureSample{
		Delta:     Point{X: -10},
		Velocity:  0.5,
		Direction: Point{X: -1},
	}, st)

	require.NotNil(t, res.Closed)
	assert.Equal(t, 0.5, res.Closed.Velocity)
	assert.Equal(t, Offset{X: -10}, res.Offset)
}

func TestResolvePosition_RightSettlesOpen(t *testing.T) {
	st := PanelState{Open: true, Edge: EdgeRight, Extent: Extent{Width: 300}}
	next, res := ResolvePosition(GestureSample{Delta: Point{X: 50}, Velocity: 0.05, Direction: Point{X: 1}}, st)

	assert.Nil(t, res.Closed)
	assert.Equal(t, Offset{}, res.Offset)
	assert.Nil(t, next.PendingReleaseVelocity)
}

func TestResolvePosition_ReleaseTable(t *testing.T) {
	ext := Extent{Width: 300, Height: 200}

	tests := []struct {
		name   string
		edge   Edge
		open   bool
		sample GestureSample
		closed bool
	}{
		{"left drag past half", EdgeLeft, true, GestureSample{Delta: Point{X: -151}}, true},
		{"left drag short", EdgeLeft, true, GestureSample{Delta: Point{X: -150}}, false},
		{"left overshoot is not closing", EdgeLeft, true, GestureSample{Delta: Point{X: 250}}, false},
		{"left closed and far", EdgeLeft, false, GestureSample{Delta: Point{X: 250}}, true},
		{"left slow flick", EdgeLeft, true, GestureSample{Delta: Point{X: -5}, Velocity: 0.2, Direction: Point{X: -1}}, false},
		{"left flick wrong way", EdgeLeft, true, GestureSample{Delta: Point{X: 5}, Velocity: 0.9, Direction: Point{X: 1}}, false},

		{"right drag past half", EdgeRight, true, GestureSample{Delta: Point{X: 151}}, true},
		{"right flick", EdgeRight, true, GestureSample{Delta: Point{X: 4}, Velocity: 0.3, Direction: Point{X: 1}}, true},
		{"right partial direction is not a flick", EdgeRight, true, GestureSample{Delta: Point{X: 4}, Velocity: 0.3, Direction: Point{X: 0.7}}, false},

		{"top drag past half", EdgeTop, true, GestureSample{Delta: Point{Y: -101}}, true},
		{"top flick", EdgeTop, true, GestureSample{Delta: Point{Y: -2}, Velocity: 0.25, Direction: Point{Y: -1}}, true},
		{"top partial direction is not a flick", EdgeTop, true, GestureSample{Delta: Point{Y: -2}, Velocity: 0.25, Direction: Point{Y: -0.5}}, false},
		{"top horizontal drag ignored", EdgeTop, true, GestureSample{Delta: Point{X: -290}}, false},

		{"bottom drag past half", EdgeBottom, true, GestureSample{Delta: Point{Y: 101}}, true},
		{"bottom flick partial direction", EdgeBottom, true, GestureSample{Delta: Point{Y: 2}, Velocity: 0.25, Direction: Point{Y: 0.5}}, true},
		{"bottom overshoot", EdgeBottom, true, GestureSample{Delta: Point{Y: -180}}, false},
		{"bottom closed and far", EdgeBottom, false, GestureSample{Delta: Point{Y: -180}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := PanelState{Open: tt.open, Edge: tt.edge, Extent: ext}
			next, res := ResolvePosition(tt.sample, st)

			if !tt.closed {
				assert.Nil(t, res.Closed)
				assert.Equal(t, Offset{}, res.Offset)
				assert.Nil(t, next.PendingReleaseVelocity)
				return
			}
			require.NotNil(t, res.Closed)
			assert.Equal(t, tt.sample.Velocity, res.Closed.Velocity)
			assert.Equal(t, axisValue(tt.sample.Delta, tt.edge), res.Offset.Along(tt.edge))
			require.NotNil(t, next.PendingReleaseVelocity)
		})
	}
}

func TestResolvePosition_UnmeasuredUsesDefaultExtent(t *testing.T) {
	st := PanelState{Open: true, Edge: EdgeLeft}

	_, res := ResolvePosition(GestureSample{Delta: Point{X: -150}}, st)
	assert.Nil(t, res.Closed, "half of the default extent is 200")

	_, res = ResolvePosition(GestureSample{Delta: Point{X: -201}}, st)
	assert.NotNil(t, res.Closed)
}

func TestSettle_ConsumesPendingVelocityOnce(t *testing.T) {
	v := 0.7
	st := PanelState{Open: false, Edge: EdgeBottom, Extent: Extent{Height: 120}, PendingReleaseVelocity: &v}

	st, target, velocity := Settle(st)
	assert.Equal(t, Offset{Y: 120}, target)
	assert.Equal(t, 0.7, velocity)
	assert.Nil(t, st.PendingReleaseVelocity)

	_, _, velocity = Settle(st)
	assert.Zero(t, velocity)
}

func TestResolvePosition_Reproducible(t *testing.T) {
	samples := []GestureSample{
		{Delta: Point{X: -3}, Down: true},
		{Delta: Point{X: -90}, Down: true},
		{Delta: Point{X: -170}, Velocity: 0.15, Direction: Point{X: -1}},
	}

	run := func() []Resolution {
		st := PanelState{Open: true, Edge: EdgeLeft, Extent: Extent{Width: 300}}
		var out []Resolution
		for _, s := range samples {
			var res Resolution
			st, res = ResolvePosition(s, st)
			out = append(out, res)
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestEdge_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() {
		DefaultOffset(false, Edge(9), Extent{})
	})
}

func TestParseEdge(t *testing.T) {
	for _, edge := range allEdges {
		parsed, err := ParseEdge(edge.String())
		require.NoError(t, err)
		assert.Equal(t, edge, parsed)
	}

	parsed, err := ParseEdge(" Bottom ")
	require.NoError(t, err)
	assert.Equal(t, EdgeBottom, parsed)

	_, err = ParseEdge("middle")
	assert.Error(t, err)
}
