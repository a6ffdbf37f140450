// Package gesture converts raw pointer events into gesture samples.
package gesture

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/uoon-dev/sancho/internal/sheet"
)

// VelocityWindow is how far back the velocity estimate looks
const VelocityWindow = 100 * time.Millisecond

const maxSamples = 16

type sample struct {
	at time.Time
	p  sheet.Point
}

// Tracker accumulates one press/move/release sequence at a time
type Tracker struct {
	active    bool
	moved     bool
	initial   sheet.Point
	current   sheet.Point
	direction sheet.Point
	history   []sample
}

// NewTracker creates an idle tracker
func NewTracker() *Tracker {
	return &Tracker{
		history: make([]sample, 0, maxSamples),
	}
}

// Active reports whether a press is in progress
func (t *Tracker) Active() bool {
	return t.active
}

// Moved reports whether the pointer moved since the press
func (t *Tracker) Moved() bool {
	return t.moved
}

// Press starts a new gesture at p
func (t *Tracker) Press(p sheet.Point, at time.Time) {
	t.active = true
	t.moved = false
	t.initial = p
	t.current = p
	t.direction = sheet.Point{}
	t.history = append(t.history[:0], sample{at: at, p: p})
}

// Move records pointer motion. ok is false when no gesture is active.
func (t *Tracker) Move(p sheet.Point, at time.Time) (sheet.GestureSample, bool) {
	if !t.active {
		return sheet.GestureSample{}, false
	}

	if p != t.current {
		t.moved = true
		t.direction = sheet.Point{
			X: sign(p.X - t.current.X),
			Y: sign(p.Y - t.current.Y),
		}
	}
	t.current = p
	t.record(p, at)

	return t.sample(true, at), true
}

// Release ends the gesture and returns its final sample
func (t *Tracker) Release(p sheet.Point, at time.Time) (sheet.GestureSample, bool) {
	if !t.active {
		return sheet.GestureSample{}, false
	}

	if p != t.current {
		t.moved = true
		t.direction = sheet.Point{
			X: sign(p.X - t.current.X),
			Y: sign(p.Y - t.current.Y),
		}
		t.current = p
		t.record(p, at)
	}

	s := t.sample(false, at)
	t.active = false
	return s, true
}

// Cancel drops the gesture without producing a sample
func (t *Tracker) Cancel() {
	t.active = false
	t.history = t.history[:0]
}

func (t *Tracker) record(p sheet.Point, at time.Time) {
	if len(t.history) == maxSamples {
		copy(t.history, t.history[1:])
		t.history = t.history[:maxSamples-1]
	}
	t.history = append(t.history, sample{at: at, p: p})
}

func (t *Tracker) sample(down bool, at time.Time) sheet.GestureSample {
	return sheet.GestureSample{
		Delta: sheet.Point{
			X: t.current.X - t.initial.X,
			Y: t.current.Y - t.initial.Y,
		},
		Velocity:  t.velocity(at),
		Direction: t.direction,
		Down:      down,
		Initial:   t.initial,
		Current:   t.current,
	}
}

// velocity fits a line through the recent samples on each axis and returns
// the magnitude of the slopes in units per millisecond.
func (t *Tracker) velocity(now time.Time) float64 {
	cutoff := now.Add(-VelocityWindow)

	var ts, xs, ys []float64
	for _, s := range t.history {
		if s.at.Before(cutoff) {
			continue
		}
		ts = append(ts, float64(s.at.Sub(cutoff))/float64(time.Millisecond))
		xs = append(xs, s.p.X)
		ys = append(ys, s.p.Y)
	}

	if len(ts) < 2 || ts[len(ts)-1] == ts[0] {
		return 0
	}

	_, vx := stat.LinearRegression(ts, xs, nil, false)
	_, vy := stat.LinearRegression(ts, ys, nil, false)
	v := math.Hypot(vx, vy)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
