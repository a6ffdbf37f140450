package trace

import (
	"context"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/uoon-dev/sancho/internal/sheet"
)

// tolerance for float comparisons in expectations
const tolerance = 1e-9

// Scenario is a named trace with its starting conditions and the outcome
// it should produce
type Scenario struct {
	Name   string       `yaml:"name"`
	Edge   string       `yaml:"edge"`
	Open   bool         `yaml:"open"`
	Extent sheet.Extent `yaml:"extent"`
	// HonorClose defaults to true when omitted.
	HonorClose *bool    `yaml:"honor_close,omitempty"`
	Steps      []Record `yaml:"steps"`
	Expect     Expect   `yaml:"expect"`
}

// Expect lists the optional expectations of a scenario. Unset fields are
// not checked.
type Expect struct {
	Closed   *bool    `yaml:"closed,omitempty"`
	Velocity *float64 `yaml:"velocity,omitempty"`
	// Target is the final position target along the travel axis.
	Target *float64 `yaml:"target,omitempty"`
	Open   *bool    `yaml:"open,omitempty"`
}

// LoadScenario decodes a YAML scenario
func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	for i, step := range s.Steps {
		if !step.Type.Valid() {
			return nil, fmt.Errorf("step %d: unknown record type %q", i, step.Type)
		}
	}
	if _, err := sheet.ParseEdge(s.Edge); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return &s, nil
}

// Options returns the replay options the scenario starts from
func (s *Scenario) Options() (Options, error) {
	edge, err := sheet.ParseEdge(s.Edge)
	if err != nil {
		return Options{}, err
	}

	opts := DefaultOptions()
	opts.Edge = edge
	opts.Open = s.Open
	opts.Extent = s.Extent
	if s.HonorClose != nil {
		opts.HonorClose = *s.HonorClose
	}
	return opts, nil
}

// Run replays the scenario, sending events to the given handlers
func (s *Scenario) Run(ctx context.Context, handlers ...EventHandler) (Result, error) {
	opts, err := s.Options()
	if err != nil {
		return Result{}, err
	}

	r := NewReplayer(ctx, opts)
	for _, h := range handlers {
		r.AddEventHandler(h)
	}
	if err := r.Run(s.Steps); err != nil {
		return Result{}, err
	}
	return r.Result(), nil
}

// Check compares a result against the expectations and returns one
// message per failed expectation
func (s *Scenario) Check(res Result) []string {
	var failures []string
	exp := s.Expect

	if exp.Closed != nil && res.Closed() != *exp.Closed {
		failures = append(failures, fmt.Sprintf("closed: want %t, got %t", *exp.Closed, res.Closed()))
	}
	if exp.Velocity != nil {
		if !res.Closed() {
			failures = append(failures, fmt.Sprintf("velocity: want %g, no close was requested", *exp.Velocity))
		} else if got := res.Closes[len(res.Closes)-1].Velocity; !approx(got, *exp.Velocity) {
			failures = append(failures, fmt.Sprintf("velocity: want %g, got %g", *exp.Velocity, got))
		}
	}
	if exp.Target != nil {
		edge, err := sheet.ParseEdge(s.Edge)
		if err != nil {
			failures = append(failures, err.Error())
		} else if got := res.Target.Along(edge); !approx(got, *exp.Target) {
			failures = append(failures, fmt.Sprintf("target: want %g, got %g", *exp.Target, got))
		}
	}
	if exp.Open != nil && res.Open != *exp.Open {
		failures = append(failures, fmt.Sprintf("open: want %t, got %t", *exp.Open, res.Open))
	}
	return failures
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}
