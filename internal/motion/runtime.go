// Package motion is the spring-based animation runtime behind the sheet.
package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/uoon-dev/sancho/internal/sheet"
)

const (
	// Default spring tuning
	DefaultFPS       = 60
	DefaultFrequency = 7.0
	DefaultDamping   = 0.85

	restDistance = 0.01
	restVelocity = 0.05
)

// channel is one animated scalar
type channel struct {
	pos, vel, target float64
}

func (c *channel) set(target float64, immediate bool, velocity float64) {
	c.target = target
	if immediate {
		c.pos = target
		c.vel = 0
		return
	}
	if velocity != 0 {
		// velocity arrives as an unsigned magnitude in units/ms
		c.vel = math.Copysign(math.Abs(velocity)*1000, target-c.pos)
	}
}

func (c *channel) step(s harmonica.Spring) bool {
	if c.resting() {
		c.pos, c.vel = c.target, 0
		return false
	}
	c.pos, c.vel = s.Update(c.pos, c.vel, c.target)
	if c.resting() {
		c.pos, c.vel = c.target, 0
		return false
	}
	return true
}

func (c *channel) resting() bool {
	return math.Abs(c.pos-c.target) < restDistance && math.Abs(c.vel) < restVelocity
}

// Runtime animates the sheet position and overlay opacity. It implements
// sheet.Animator.
type Runtime struct {
	fps    int
	spring harmonica.Spring

	x, y    channel
	opacity channel
}

// NewRuntime creates a runtime stepping at fps frames per second
func NewRuntime(fps int, frequency, damping float64) *Runtime {
	r := &Runtime{}
	r.Retune(fps, frequency, damping)
	return r
}

// Retune replaces the spring parameters without disturbing current motion
func (r *Runtime) Retune(fps int, frequency, damping float64) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	r.fps = fps
	r.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
}

// FPS returns the frame rate Step assumes
func (r *Runtime) FPS() int {
	return r.fps
}

// AnimatePosition implements sheet.Animator
func (r *Runtime) AnimatePosition(target sheet.Offset, immediate bool, velocity float64) {
	// Split a scalar speed across both axes by the direction of travel.
	dx, dy := target.X-r.x.pos, target.Y-r.y.pos
	dist := math.Hypot(dx, dy)
	vx, vy := 0.0, 0.0
	if dist > 0 {
		vx = velocity * math.Abs(dx) / dist
		vy = velocity * math.Abs(dy) / dist
	}
	r.x.set(target.X, immediate, vx)
	r.y.set(target.Y, immediate, vy)
}

// AnimateOpacity implements sheet.Animator
func (r *Runtime) AnimateOpacity(target float64, immediate bool, velocity float64) {
	r.opacity.set(target, immediate, velocity)
}

// Step advances one frame and reports whether anything is still moving
func (r *Runtime) Step() bool {
	movingX := r.x.step(r.spring)
	movingY := r.y.step(r.spring)
	movingO := r.opacity.step(r.spring)
	return movingX || movingY || movingO
}

// Settled reports whether every channel is at rest on its target
func (r *Runtime) Settled() bool {
	return r.x.resting() && r.y.resting() && r.opacity.resting()
}

// Position returns the current, untapered position
func (r *Runtime) Position() sheet.Offset {
	return sheet.Offset{X: r.x.pos, Y: r.y.pos}
}

// Target returns the position the runtime is heading to
func (r *Runtime) Target() sheet.Offset {
	return sheet.Offset{X: r.x.target, Y: r.y.target}
}

// Opacity returns the current overlay opacity clamped to [0,1]
func (r *Runtime) Opacity() float64 {
	return math.Max(0, math.Min(1, r.opacity.pos))
}
