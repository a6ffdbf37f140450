package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uoon-dev/sancho/internal/config"
	"github.com/uoon-dev/sancho/internal/gesture"
	"github.com/uoon-dev/sancho/internal/logging"
	"github.com/uoon-dev/sancho/internal/motion"
	"github.com/uoon-dev/sancho/internal/sheet"
	"github.com/uoon-dev/sancho/internal/trace"
	"github.com/uoon-dev/sancho/internal/ui/components"
)

// pointerMode tracks what the current mouse press belongs to
type pointerMode int

const (
	pointerNone pointerMode = iota
	pointerSheet
	pointerOverlay
)

// Application represents the main TUI application
type Application struct {
	ctx      context.Context
	cfg      *config.Config
	edge     sheet.Edge
	eventBus *EventBus
	program  *tea.Program

	width  int
	height int

	// Sheet machinery
	controller *sheet.Controller
	tracker    *gesture.Tracker
	runtime    *motion.Runtime
	guard      *guard
	pointer    pointerMode
	animating  bool

	// Rendering
	layout        *components.LayoutManager
	page          *components.Document
	compositor    *components.Compositor
	pageRenderer  *components.MarkdownRenderer
	sheetRenderer *components.MarkdownRenderer
	sheetBlock    []string

	keys   keyMap
	help   help.Model
	styles *Styles
	status string

	recorder *trace.Writer
	now      func() time.Time
}

// Styles contains all the styling for the application
type Styles struct {
	Sheet  lipgloss.Style
	Page   lipgloss.Style
	Footer lipgloss.Style
	Status lipgloss.Style
}

// NewStyles creates styles from the appearance configuration
func NewStyles(appearance config.AppearanceConfig) *Styles {
	return &Styles{
		Sheet: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(appearance.Accent)).
			Background(lipgloss.Color(appearance.Background)).
			Padding(0, 1),
		Page: lipgloss.NewStyle().
			Background(lipgloss.Color(appearance.Background)),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("235")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(appearance.Accent)).
			Bold(true),
	}
}

// Option customizes an Application
type Option func(*Application)

// WithRecorder appends every sheet input to w as a trace
func WithRecorder(w io.Writer) Option {
	return func(a *Application) {
		a.recorder = trace.NewWriter(w)
	}
}

// WithClock replaces the clock used to timestamp pointer events
func WithClock(now func() time.Time) Option {
	return func(a *Application) {
		a.now = now
	}
}

// NewApplication creates a new TUI application
func NewApplication(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	edge, err := sheet.ParseEdge(cfg.Sheet.Edge)
	if err != nil {
		return nil, err
	}

	compositor, err := newCompositor(cfg.Appearance)
	if err != nil {
		return nil, err
	}

	pageRenderer, err := components.NewMarkdownRenderer(80, "dark")
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	sheetRenderer, err := components.NewMarkdownRenderer(40, "dark")
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	ctx = logging.WithComponent(ctx, "app")
	a := &Application{
		ctx:           ctx,
		cfg:           cfg,
		edge:          edge,
		eventBus:      NewEventBus(ctx),
		tracker:       gesture.NewTracker(),
		runtime:       motion.NewRuntime(cfg.Animation.FPS, cfg.Animation.Frequency, cfg.Animation.Damping),
		layout:        components.NewLayoutManager(0, 0, edge, cfg.Sheet.Size),
		page:          components.NewDocument(),
		compositor:    compositor,
		pageRenderer:  pageRenderer,
		sheetRenderer: sheetRenderer,
		keys:          defaultKeyMap(),
		help:          help.New(),
		styles:        NewStyles(cfg.Appearance),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.page.SetStyle(a.styles.Page)
	a.guard = &guard{page: a.page}

	a.controller = sheet.NewController(ctx, a.runtime, sheet.Options{
		Edge:          edge,
		Open:          cfg.Sheet.Open,
		CloseOnClick:  cfg.Sheet.CloseOnClick,
		CloseOnEscape: cfg.Sheet.CloseOnEscape,
		OnClose:       a.handleClose,
		Guard:         a.guard,
	})
	return a, nil
}

func newCompositor(appearance config.AppearanceConfig) (*components.Compositor, error) {
	return components.NewCompositor(appearance.Background, "#F8F8F2", appearance.Overlay, appearance.OverlayStrength)
}

// EventBus returns the bus background sources publish to
func (a *Application) EventBus() *EventBus {
	return a.eventBus
}

// SetProgram sets the bubbletea program reference
func (a *Application) SetProgram(program *tea.Program) {
	a.program = program
	a.eventBus.SetProgram(program)
}

// Init initializes the application (bubbletea interface)
func (a *Application) Init() tea.Cmd {
	return nil
}

// Update handles messages (bubbletea interface)
func (a *Application) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, a.startFrames()

	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, a.startFrames()

	case frameMsg:
		if a.runtime.Step() {
			return a, a.frame()
		}
		a.animating = false
		return a, nil

	case ConfigReloadedMsg:
		a.applyConfig(msg.Config)
		return a, a.startFrames()

	case ErrorMsg:
		a.status = msg.Error.Error()
		return a, nil

	default:
		return a, nil
	}
}

// handleKeyPress handles keyboard input
func (a *Application) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.eventBus.Shutdown()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Toggle):
		a.setOpen(!a.controller.State().Open)

	case key.Matches(msg, a.keys.Close):
		a.record(trace.Record{Type: trace.RecordEscape})
		a.controller.Escape()

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll

	case key.Matches(msg, a.keys.Up):
		a.page.ScrollUp()
	case key.Matches(msg, a.keys.Down):
		a.page.ScrollDown()
	case key.Matches(msg, a.keys.PageUp):
		a.page.ScrollPageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.page.ScrollPageDown()
	}
	return a, a.startFrames()
}

// handleMouse routes presses on the sheet to the gesture tracker and presses
// elsewhere on the page to the overlay click rule
func (a *Application) handleMouse(msg tea.MouseMsg) {
	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.page.ScrollUp()
		case tea.MouseButtonWheelDown:
			a.page.ScrollDown()
		}
		return
	}

	now := a.now()
	p := a.layout.Point(msg.X, msg.Y)
	offset := a.runtime.Position()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || a.pointer != pointerNone {
			return
		}
		switch {
		case a.layout.HitSheet(msg.X, msg.Y, offset):
			a.pointer = pointerSheet
			a.tracker.Press(p, now)
		case a.layout.HitOverlay(msg.X, msg.Y, offset):
			a.pointer = pointerOverlay
			a.record(trace.Record{Type: trace.RecordOverlayPress})
			a.controller.OverlayPress()
		}

	case tea.MouseActionMotion:
		switch a.pointer {
		case pointerSheet:
			if s, ok := a.tracker.Move(p, now); ok {
				a.gesture(s)
			}
		case pointerOverlay:
			a.record(trace.Record{Type: trace.RecordOverlayMove})
			a.controller.OverlayMove()
		}

	case tea.MouseActionRelease:
		switch a.pointer {
		case pointerSheet:
			if s, ok := a.tracker.Release(p, now); ok {
				a.gesture(s)
			}
		case pointerOverlay:
			a.record(trace.Record{Type: trace.RecordOverlayRelease})
			a.controller.OverlayRelease()
		}
		a.pointer = pointerNone
	}
}

func (a *Application) gesture(s sheet.GestureSample) {
	a.record(trace.Record{Type: trace.RecordGesture, GestureSample: s})
	a.controller.Gesture(s)
}

func (a *Application) setOpen(open bool) {
	typ := trace.RecordClose
	if open {
		typ = trace.RecordOpen
	}
	a.record(trace.Record{Type: typ})
	a.controller.SetOpen(open)
}

// handleClose is the controller's close callback. The application owns the
// open state, so honoring the request is a state change like any other.
func (a *Application) handleClose(ev sheet.ClosedEvent) {
	logging.FromContext(a.ctx).Debug().
		Float64("velocity", ev.Velocity).
		Msg("close requested")
	a.setOpen(false)
}

func (a *Application) record(rec trace.Record) {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.Write(rec); err != nil {
		logging.FromContext(a.ctx).Warn().Err(err).Msg("failed to record input")
		a.recorder = nil
	}
}

// resize lays everything out for a new terminal size and reports the sheet's
// measured extent to the controller
func (a *Application) resize(width, height int) {
	a.width = width
	a.height = height
	a.layout.SetSize(width, height)
	a.help.Width = width

	pageRect := a.layout.Page()
	a.page.SetDimensions(pageRect.Width, pageRect.Height)
	if err := a.pageRenderer.UpdateWidth(max(pageRect.Width-2, 10)); err == nil {
		if lines, err := a.pageRenderer.Render(pageMarkdown); err == nil {
			a.page.SetLines(lines)
		}
	}

	a.renderSheet()
	ext := a.layout.Extent(lipgloss.Width(strings.Join(a.sheetBlock, "\n")), len(a.sheetBlock))
	a.record(trace.Record{Type: trace.RecordMeasure, Width: ext.Width, Height: ext.Height})
	a.controller.Measure(ext)
}

// renderSheet renders the sheet block at its resting size
func (a *Application) renderSheet() {
	rect := a.layout.SheetRect()
	frameW, frameH := a.styles.Sheet.GetFrameSize()
	innerW := max(rect.Width-frameW, 1)
	innerH := max(rect.Height-frameH, 1)

	var body []string
	if err := a.sheetRenderer.UpdateWidth(innerW); err == nil {
		body, _ = a.sheetRenderer.Render(sheetMarkdown)
	}
	if len(body) > innerH {
		body = body[:innerH]
	}

	block := a.styles.Sheet.
		Width(innerW + a.styles.Sheet.GetHorizontalPadding()).
		Height(innerH).
		MaxWidth(rect.Width).
		MaxHeight(rect.Height).
		Render(strings.Join(body, "\n"))
	a.sheetBlock = strings.Split(block, "\n")
}

// applyConfig applies a reloaded configuration. Appearance and animation
// take effect immediately; the edge is fixed for the sheet's lifetime.
func (a *Application) applyConfig(cfg *config.Config) {
	log := logging.FromContext(a.ctx)

	if edge, err := sheet.ParseEdge(cfg.Sheet.Edge); err == nil && edge != a.edge {
		log.Warn().
			Str("current", a.edge.String()).
			Str("requested", edge.String()).
			Msg("sheet edge cannot change while running, ignoring")
	}

	compositor, err := newCompositor(cfg.Appearance)
	if err != nil {
		log.Warn().Err(err).Msg("invalid appearance, keeping previous colours")
	} else {
		a.compositor = compositor
		a.styles = NewStyles(cfg.Appearance)
		a.page.SetStyle(a.styles.Page)
	}

	a.runtime.Retune(cfg.Animation.FPS, cfg.Animation.Frequency, cfg.Animation.Damping)
	a.layout.SetFraction(cfg.Sheet.Size)
	a.cfg = cfg
	if a.width > 0 && a.height > 0 {
		a.resize(a.width, a.height)
	}

	a.status = "configuration reloaded"
	log.Info().Msg("configuration reloaded")
}

// startFrames starts the frame loop if the runtime has somewhere to go
func (a *Application) startFrames() tea.Cmd {
	if a.animating || a.runtime.Settled() {
		return nil
	}
	a.animating = true
	return a.frame()
}

func (a *Application) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.runtime.FPS()), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// View renders the application (bubbletea interface)
func (a *Application) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}

	opacity := a.runtime.Opacity()
	lines := a.compositor.Dim(a.page.Lines(), opacity)

	x, y := a.layout.Origin(a.runtime.Position())
	lines = a.compositor.Splice(lines, a.sheetBlock, x, y, a.width)

	return strings.Join(lines, "\n") + "\n" + a.renderFooter()
}

func (a *Application) renderFooter() string {
	footer := a.help.View(a.keys)
	if a.status != "" {
		footer = a.styles.Status.Render(a.status) + "  " + footer
	}
	if a.help.ShowAll {
		// full help spans several lines; keep only what fits the footer row
		footer = strings.SplitN(footer, "\n", 2)[0]
	}
	return a.styles.Footer.Width(a.width).MaxHeight(1).Render(footer)
}

// guard is the sheet's scroll lock and focus trap. While engaged the page
// refuses to scroll and keyboard focus stays with the sheet's bindings.
type guard struct {
	page    *components.Document
	engaged bool
}

func (g *guard) Engage() {
	g.engaged = true
	g.page.Lock()
}

func (g *guard) Release() {
	g.engaged = false
	g.page.Unlock()
}
