package trace

import (
	"context"
	"fmt"
	"sync"

	"github.com/uoon-dev/sancho/internal/logging"
	"github.com/uoon-dev/sancho/internal/sheet"
)

// EventHandler defines the interface for handling replay events
type EventHandler interface {
	HandleEvent(event Event)
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc func(Event)

// HandleEvent implements EventHandler
func (f EventHandlerFunc) HandleEvent(event Event) {
	f(event)
}

// Collector is an EventHandler that keeps every event
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// HandleEvent implements EventHandler
func (c *Collector) HandleEvent(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of the collected events
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// Options configures a Replayer
type Options struct {
	Edge sheet.Edge
	Open bool
	// Extent, when known, is applied as a measurement before the first record.
	Extent        sheet.Extent
	CloseOnClick  bool
	CloseOnEscape bool
	// HonorClose flips the state closed on every close request, the way a
	// controlled host reacting to the close callback would.
	HonorClose bool
}

// DefaultOptions returns options for an open left sheet whose close
// requests are honored
func DefaultOptions() Options {
	return Options{
		Edge:          sheet.EdgeLeft,
		Open:          true,
		CloseOnClick:  true,
		CloseOnEscape: true,
		HonorClose:    true,
	}
}

// Replayer drives a sheet.Controller from records and emits what the
// controller asks of its animator. Handlers run synchronously and in
// registration order so the emitted order is the controller's call order.
type Replayer struct {
	ctx  context.Context
	opts Options
	ctrl *sheet.Controller

	handlers     []EventHandler
	handlerMutex sync.RWMutex

	step     int
	seq      int
	lastOpen bool
	result   Result
}

// NewReplayer creates a replayer. The controller is created lazily so that
// handlers registered before the first record also see the initial events.
func NewReplayer(ctx context.Context, opts Options) *Replayer {
	return &Replayer{
		ctx:  logging.WithComponent(ctx, "replay"),
		opts: opts,
		step: -1,
	}
}

// AddEventHandler registers an event handler
func (r *Replayer) AddEventHandler(handler EventHandler) {
	r.handlerMutex.Lock()
	defer r.handlerMutex.Unlock()
	r.handlers = append(r.handlers, handler)
}

// Run applies every record in order
func (r *Replayer) Run(records []Record) error {
	for _, rec := range records {
		if err := r.Apply(rec); err != nil {
			return err
		}
	}
	r.start()
	return nil
}

// Apply applies one record
func (r *Replayer) Apply(rec Record) error {
	r.start()
	r.step++

	log := logging.FromContext(r.ctx)
	log.Trace().Int("step", r.step).Str("type", string(rec.Type)).Msg("applying record")

	switch rec.Type {
	case RecordMeasure:
		r.ctrl.Measure(rec.Extent())
	case RecordGesture:
		r.ctrl.Gesture(rec.GestureSample)
	case RecordOpen:
		r.ctrl.SetOpen(true)
	case RecordClose:
		r.ctrl.SetOpen(false)
	case RecordOverlayPress:
		r.ctrl.OverlayPress()
	case RecordOverlayMove:
		r.ctrl.OverlayMove()
	case RecordOverlayRelease:
		r.ctrl.OverlayRelease()
	case RecordEscape:
		r.ctrl.Escape()
	default:
		return fmt.Errorf("step %d: unknown record type %q", r.step, rec.Type)
	}

	r.syncState()
	return nil
}

// Controller returns the driven controller
func (r *Replayer) Controller() *sheet.Controller {
	r.start()
	return r.ctrl
}

// Result returns the summary of everything applied so far
func (r *Replayer) Result() Result {
	r.start()
	res := r.result
	res.Closes = append([]sheet.ClosedEvent(nil), r.result.Closes...)
	res.Open = r.ctrl.State().Open
	return res
}

func (r *Replayer) start() {
	if r.ctrl != nil {
		return
	}

	r.lastOpen = r.opts.Open
	r.ctrl = sheet.NewController(r.ctx, recorder{r}, sheet.Options{
		Edge:          r.opts.Edge,
		Open:          r.opts.Open,
		CloseOnClick:  r.opts.CloseOnClick,
		CloseOnEscape: r.opts.CloseOnEscape,
		OnClose:       r.handleClose,
	})
	if r.opts.Extent.Known(r.opts.Edge) {
		r.ctrl.Measure(r.opts.Extent)
	}
}

func (r *Replayer) handleClose(ev sheet.ClosedEvent) {
	r.result.Closes = append(r.result.Closes, ev)
	r.emit(Event{Type: EventClosed, Velocity: ev.Velocity})

	if r.opts.HonorClose {
		r.ctrl.SetOpen(false)
		r.syncState()
	}
}

// syncState emits a state event when the open flag changed
func (r *Replayer) syncState() {
	open := r.ctrl.State().Open
	if open == r.lastOpen {
		return
	}
	r.lastOpen = open
	r.emit(Event{Type: EventState, Open: &open})
}

// emit sends an event to all registered handlers
func (r *Replayer) emit(event Event) {
	r.handlerMutex.RLock()
	defer r.handlerMutex.RUnlock()

	event.Seq = r.seq
	event.Step = r.step
	r.seq++
	r.result.Events++

	for _, handler := range r.handlers {
		handler.HandleEvent(event)
	}
}

// recorder is the sheet.Animator handed to the controller
type recorder struct {
	r *Replayer
}

func (a recorder) AnimatePosition(target sheet.Offset, immediate bool, velocity float64) {
	a.r.result.Target = target
	a.r.emit(Event{
		Type:      EventPosition,
		Offset:    &target,
		Immediate: immediate,
		Velocity:  velocity,
	})
}

func (a recorder) AnimateOpacity(target float64, immediate bool, velocity float64) {
	a.r.result.Opacity = target
	a.r.emit(Event{
		Type:      EventOpacity,
		Opacity:   &target,
		Immediate: immediate,
		Velocity:  velocity,
	})
}
