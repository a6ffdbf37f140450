// Package trace records, decodes and replays sheet input sequences.
package trace

import (
	"github.com/uoon-dev/sancho/internal/sheet"
)

// RecordType identifies one kind of input in a trace
type RecordType string

const (
	RecordMeasure        RecordType = "measure"
	RecordGesture        RecordType = "gesture"
	RecordOpen           RecordType = "open"
	RecordClose          RecordType = "close"
	RecordOverlayPress   RecordType = "overlay_press"
	RecordOverlayMove    RecordType = "overlay_move"
	RecordOverlayRelease RecordType = "overlay_release"
	RecordEscape         RecordType = "escape"
)

// Valid reports whether t is a known record type
func (t RecordType) Valid() bool {
	switch t {
	case RecordMeasure, RecordGesture, RecordOpen, RecordClose,
		RecordOverlayPress, RecordOverlayMove, RecordOverlayRelease, RecordEscape:
		return true
	}
	return false
}

// Record is one line of a trace. Width and Height are read for measure
// records and the gesture fields for gesture records; other types carry
// no payload.
type Record struct {
	Type   RecordType `json:"type" yaml:"type"`
	Width  float64    `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64    `json:"height,omitempty" yaml:"height,omitempty"`

	sheet.GestureSample `yaml:",inline"`
}

// Extent returns the measurement carried by a measure record
func (r Record) Extent() sheet.Extent {
	return sheet.Extent{Width: r.Width, Height: r.Height}
}

// EventType represents the different types of replay events
type EventType string

const (
	EventPosition EventType = "position"
	EventOpacity  EventType = "opacity"
	EventClosed   EventType = "closed"
	EventState    EventType = "state"
)

// Event is one observable output of the controller. Step is the index of
// the record that caused it, or -1 for events emitted while the controller
// was being created.
type Event struct {
	Seq       int           `json:"seq"`
	Step      int           `json:"step"`
	Type      EventType     `json:"type"`
	Offset    *sheet.Offset `json:"offset,omitempty"`
	Opacity   *float64      `json:"opacity,omitempty"`
	Immediate bool          `json:"immediate,omitempty"`
	Velocity  float64       `json:"velocity"`
	Open      *bool         `json:"open,omitempty"`
}

// Result summarizes a replay
type Result struct {
	Closes  []sheet.ClosedEvent `json:"closes"`
	Target  sheet.Offset        `json:"target"`
	Opacity float64             `json:"opacity"`
	Open    bool                `json:"open"`
	Events  int                 `json:"events"`
}

// Closed reports whether any close was requested
func (r Result) Closed() bool {
	return len(r.Closes) > 0
}
