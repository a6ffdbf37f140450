package app

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uoon-dev/sancho/internal/config"
)

// EventType represents the kinds of events raised outside the program loop
type EventType string

const (
	EventConfigReloaded EventType = "config_reloaded"
	EventError          EventType = "error"
)

// Event is raised by a background source such as the config watcher
type Event struct {
	Type      EventType
	Data      any
	Timestamp time.Time
}

// EventBus manages event distribution from background goroutines into the
// bubbletea program
type EventBus struct {
	subscribers map[EventType][]chan Event
	mutex       sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	program     *tea.Program
}

// NewEventBus creates a new event bus
func NewEventBus(ctx context.Context) *EventBus {
	busCtx, cancel := context.WithCancel(ctx)
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		ctx:         busCtx,
		cancel:      cancel,
	}
}

// SetProgram sets the tea program for sending messages
func (eb *EventBus) SetProgram(program *tea.Program) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()
	eb.program = program
}

// Subscribe subscribes to specific event types
func (eb *EventBus) Subscribe(eventType EventType, bufferSize int) <-chan Event {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	eventCh := make(chan Event, bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], eventCh)
	return eventCh
}

// Publish raises an event stamped with the current time
func (eb *EventBus) Publish(eventType EventType, data any) {
	eb.HandleEvent(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// HandleEvent delivers an event to subscribers and to the program
func (eb *EventBus) HandleEvent(event Event) {
	eb.mutex.RLock()
	subscribers := eb.subscribers[event.Type]
	program := eb.program
	eb.mutex.RUnlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		case <-eb.ctx.Done():
			return
		default:
			// Non-blocking send - drop event if channel is full
		}
	}

	if program != nil {
		if msg := toMsg(event); msg != nil {
			program.Send(msg)
		}
	}
}

// Shutdown gracefully shuts down the event bus
func (eb *EventBus) Shutdown() {
	eb.cancel()

	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	for _, subscribers := range eb.subscribers {
		for _, ch := range subscribers {
			close(ch)
		}
	}
	eb.subscribers = make(map[EventType][]chan Event)
}

// ConfigReloadedMsg carries a configuration that was reloaded from disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ErrorMsg represents error events
type ErrorMsg struct {
	Error     error
	Timestamp time.Time
}

// frameMsg advances the spring runtime by one frame
type frameMsg time.Time

// toMsg converts a bus event to a tea message
func toMsg(event Event) tea.Msg {
	switch data := event.Data.(type) {
	case *config.Config:
		if event.Type == EventConfigReloaded {
			return ConfigReloadedMsg{Config: data}
		}
	case error:
		return ErrorMsg{Error: data, Timestamp: event.Timestamp}
	}
	return nil
}
