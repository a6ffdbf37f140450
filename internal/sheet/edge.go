package sheet

import (
	"fmt"
	"strings"
)

// Edge is the side of the viewport the sheet is anchored to
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

// Axis identifies the travel axis of an edge
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// edgeRule holds everything that differs between edges. The flick
// predicates are deliberately not symmetric; keep them literal.
type edgeRule struct {
	name         string
	axis         Axis
	closingSign  float64
	flickClosing func(direction float64) bool
}

var edgeRules = [...]edgeRule{
	EdgeLeft: {
		name:         "left",
		axis:         AxisX,
		closingSign:  -1,
		flickClosing: func(d float64) bool { return d < 0 },
	},
	EdgeTop: {
		name:         "top",
		axis:         AxisY,
		closingSign:  -1,
		flickClosing: func(d float64) bool { return d <= -1 },
	},
	EdgeRight: {
		name:         "right",
		axis:         AxisX,
		closingSign:  1,
		flickClosing: func(d float64) bool { return d >= 1 },
	},
	EdgeBottom: {
		name:         "bottom",
		axis:         AxisY,
		closingSign:  1,
		flickClosing: func(d float64) bool { return d > 0 },
	},
}

// rule panics for edges outside the enum: that is a caller bug, not a
// runtime condition.
func (e Edge) rule() edgeRule {
	if e < EdgeLeft || e > EdgeBottom {
		panic(fmt.Sprintf("sheet: unknown edge %d", int(e)))
	}
	return edgeRules[e]
}

// String returns the lowercase edge name
func (e Edge) String() string {
	if e < EdgeLeft || e > EdgeBottom {
		return fmt.Sprintf("Edge(%d)", int(e))
	}
	return edgeRules[e].name
}

// Axis returns the axis the sheet travels along
func (e Edge) Axis() Axis {
	return e.rule().axis
}

// ClosingSign is -1 when closing moves toward negative offsets and +1 otherwise
func (e Edge) ClosingSign() float64 {
	return e.rule().closingSign
}

// Horizontal reports whether the edge travels along the x axis
func (e Edge) Horizontal() bool {
	return e.Axis() == AxisX
}

// ParseEdge converts a name such as "left" into an Edge
func ParseEdge(name string) (Edge, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, r := range edgeRules {
		if r.name == n {
			return Edge(i), nil
		}
	}
	return 0, fmt.Errorf("unknown edge %q (want left, top, right or bottom)", name)
}

// MarshalText implements encoding.TextMarshaler
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Edge) UnmarshalText(text []byte) error {
	parsed, err := ParseEdge(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
