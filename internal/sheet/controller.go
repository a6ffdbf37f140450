package sheet

import (
	"context"

	"github.com/uoon-dev/sancho/internal/logging"
)

//go:generate mockgen -source=controller.go -destination=mocks/mock_sheet.go -package=mocks

// Animator is the smoothing runtime the controller drives. Any runtime that
// accepts a target, an immediate flag and an initial velocity will do.
type Animator interface {
	AnimatePosition(target Offset, immediate bool, velocity float64)
	AnimateOpacity(target float64, immediate bool, velocity float64)
}

// Guard is the scroll-lock and focus-trap pair. It is engaged exactly while
// the sheet is open.
type Guard interface {
	Engage()
	Release()
}

// CloseFunc receives close requests from gestures, overlay clicks and Escape
type CloseFunc func(ClosedEvent)

// Options configures a Controller
type Options struct {
	Edge          Edge
	Open          bool
	CloseOnClick  bool
	CloseOnEscape bool
	OnClose       CloseFunc
	Guard         Guard
}

// DefaultOptions returns options for a left sheet that starts closed
func DefaultOptions() Options {
	return Options{
		Edge:          EdgeLeft,
		CloseOnClick:  true,
		CloseOnEscape: true,
	}
}

// Controller applies the engine to gesture and state events and forwards the
// results to an Animator. It is not safe for concurrent use; call it from a
// single event loop, in arrival order.
type Controller struct {
	ctx   context.Context
	anim  Animator
	opts  Options
	state PanelState

	mounted bool

	// gesture bookkeeping
	engaged bool
	stale   bool
	// an extent arrived while a gesture held the sheet
	deferred bool

	// overlay click bookkeeping
	clickArmed bool
}

// NewController creates a controller. The initial position is sent
// immediately so the sheet never animates in from an arbitrary place.
func NewController(ctx context.Context, anim Animator, opts Options) *Controller {
	c := &Controller{
		ctx:  ctx,
		anim: anim,
		opts: opts,
		state: PanelState{
			Open: opts.Open,
			Edge: opts.Edge,
		},
	}

	c.anim.AnimatePosition(DefaultOffset(c.state.Open, c.state.Edge, c.state.Extent), true, 0)
	c.anim.AnimateOpacity(openOpacity(c.state.Open), true, 0)
	if c.state.Open && c.opts.Guard != nil {
		c.opts.Guard.Engage()
	}

	logging.FromContext(ctx).Debug().
		Str("edge", opts.Edge.String()).
		Bool("open", opts.Open).
		Msg("sheet controller created")
	return c
}

// State returns a copy of the current panel state
func (c *Controller) State() PanelState {
	st := c.state
	if st.PendingReleaseVelocity != nil {
		v := *st.PendingReleaseVelocity
		st.PendingReleaseVelocity = &v
	}
	return st
}

// Mounted reports whether the first measurement has been applied
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Dragging reports whether a captured gesture is in progress
func (c *Controller) Dragging() bool {
	return c.engaged
}

// Gesture applies one gesture sample.
func (c *Controller) Gesture(s GestureSample) {
	log := logging.FromContext(c.ctx)

	if c.stale {
		// The state flipped under this drag; drop it until release.
		if !s.Down {
			c.stale = false
			log.Debug().Msg("stale gesture released")
			c.applyDeferredMeasure()
		}
		return
	}

	if !c.engaged {
		if !s.Down {
			// Released without ever being captured.
			return
		}
		if !ShouldCaptureGesture(s.Initial, s.Current, c.state.Edge) {
			return
		}
		c.engaged = true
		// A close request nobody honoured leaves its velocity behind.
		c.state.PendingReleaseVelocity = nil
	}

	next, res := ResolvePosition(s, c.state)
	c.state = next

	if s.Down {
		c.anim.AnimatePosition(res.Offset, res.Immediate, 0)
		c.anim.AnimateOpacity(ResolveOpacity(s, c.state.Extent, c.state.Open, c.state.Edge), true, 0)
		return
	}

	c.engaged = false
	c.deferred = false
	if !c.mounted && c.state.Extent.Known(c.state.Edge) {
		// A measurement arrived mid-drag; the release animation places the
		// sheet, so no snap is needed.
		c.mounted = true
	}

	if res.Closed == nil {
		// Release speed only seeds a close.
		c.anim.AnimatePosition(res.Offset, false, 0)
		c.anim.AnimateOpacity(ResolveOpacity(s, c.state.Extent, c.state.Open, c.state.Edge), false, 0)
		return
	}

	log.Debug().
		Str("edge", c.state.Edge.String()).
		Float64("velocity", res.Closed.Velocity).
		Float64("offset", res.Offset.Along(c.state.Edge)).
		Msg("gesture committed close")

	c.anim.AnimatePosition(res.Offset, false, res.Closed.Velocity)
	c.requestClose(*res.Closed)
}

// SetOpen applies an open or close request from the host. It always wins
// over an in-progress drag.
func (c *Controller) SetOpen(open bool) {
	if c.state.Open == open {
		return
	}
	c.state.Open = open

	if c.engaged {
		c.engaged = false
		c.stale = true
		logging.FromContext(c.ctx).Debug().
			Bool("open", open).
			Msg("state changed during drag, dropping gesture")
	}

	if c.opts.Guard != nil {
		if open {
			c.opts.Guard.Engage()
		} else {
			c.opts.Guard.Release()
		}
	}

	c.settle()
}

// Measure records a new panel extent. The first usable measurement snaps the
// sheet into place without animation; later changes animate.
func (c *Controller) Measure(ext Extent) {
	prev := c.state.Extent
	c.state.Extent = ext
	if prev == ext {
		return
	}
	if c.engaged || c.stale {
		c.deferred = true
		return
	}

	if !c.mounted {
		c.resnapIfMeasured()
		return
	}
	c.settle()
}

// applyDeferredMeasure places the sheet for an extent that arrived while a
// dropped gesture still held it
func (c *Controller) applyDeferredMeasure() {
	if !c.deferred {
		return
	}
	c.deferred = false
	if !c.mounted {
		c.resnapIfMeasured()
		return
	}
	c.settle()
}

// OverlayPress starts a potential overlay click
func (c *Controller) OverlayPress() {
	c.clickArmed = true
}

// OverlayMove invalidates a pending overlay click
func (c *Controller) OverlayMove() {
	c.clickArmed = false
}

// OverlayRelease requests a close when the press/release pair was a click
func (c *Controller) OverlayRelease() {
	armed := c.clickArmed
	c.clickArmed = false
	if !armed || !c.opts.CloseOnClick || !c.state.Open {
		return
	}
	c.requestClose(ClosedEvent{})
}

// Escape requests a close when Escape handling is enabled
func (c *Controller) Escape() {
	if !c.opts.CloseOnEscape || !c.state.Open {
		return
	}
	c.requestClose(ClosedEvent{})
}

// settle animates to the resting target, consuming any pending release velocity
func (c *Controller) settle() {
	next, target, velocity := Settle(c.state)
	c.state = next
	c.anim.AnimatePosition(target, false, velocity)
	c.anim.AnimateOpacity(openOpacity(c.state.Open), false, 0)
}

func (c *Controller) resnapIfMeasured() {
	if c.mounted || !c.state.Extent.Known(c.state.Edge) {
		return
	}
	c.mounted = true
	c.anim.AnimatePosition(DefaultOffset(c.state.Open, c.state.Edge, c.state.Extent), true, 0)

	logging.FromContext(c.ctx).Debug().
		Float64("width", c.state.Extent.Width).
		Float64("height", c.state.Extent.Height).
		Msg("first measurement, snapped to resting offset")
}

func (c *Controller) requestClose(ev ClosedEvent) {
	if c.opts.OnClose != nil {
		c.opts.OnClose(ev)
	}
}

func openOpacity(open bool) float64 {
	if open {
		return 1
	}
	return 0
}
