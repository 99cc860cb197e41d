// Package sim provides tunable options, result types, and error
// definitions for pressing a circuit.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/pulsim/circuit"
)

// Sentinel errors for simulation runs.
var (
	// ErrCircuitNil is returned if a nil circuit pointer is passed.
	ErrCircuitNil = errors.New("sim: circuit is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("sim: invalid option supplied")

	// ErrPressCount is returned when Run is asked for a non-positive
	// number of presses.
	ErrPressCount = errors.New("sim: press count must be positive")

	// ErrNilPredicate is returned when PressUntil gets a nil stop func.
	ErrNilPredicate = errors.New("sim: stop predicate is nil")

	// ErrPressBudget is returned when PressUntil runs out of presses
	// before the predicate matches.
	ErrPressBudget = errors.New("sim: press budget exhausted")
)

// Observer receives every delivered pulse, in delivery order, before the
// destination module acts on it. Observers must not mutate the circuit.
type Observer func(p circuit.Pulse)

// Option configures simulation behavior via functional arguments.
// An invalid Option is recorded internally and surfaced as
// ErrOptionViolation when the run starts.
type Option func(*SimOptions)

// SimOptions holds parameters and callbacks for Press, Run, and
// PressUntil.
type SimOptions struct {
	// Ctx allows cancellation and deadlines, checked between presses.
	Ctx context.Context

	// OnPulse is invoked for every delivered pulse.
	OnPulse Observer

	// MaxPresses, if > 0, bounds PressUntil. A value of 0 explicitly
	// disables the budget. Press and Run ignore it.
	MaxPresses int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns SimOptions with sane defaults:
//   - context.Background()
//   - no-op observer
//   - no press budget (MaxPresses == 0)
func DefaultOptions() SimOptions {
	return SimOptions{
		Ctx:        context.Background(),
		OnPulse:    func(circuit.Pulse) {},
		MaxPresses: 0,
		err:        nil,
	}
}

// WithContext sets a custom context for cancellation between presses.
func WithContext(ctx context.Context) Option {
	return func(o *SimOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithObserver registers a callback for every delivered pulse.
func WithObserver(fn Observer) Option {
	return func(o *SimOptions) {
		if fn != nil {
			o.OnPulse = fn
		}
	}
}

// WithMaxPresses bounds PressUntil to n presses.
//
//	n > 0:  abort with ErrPressBudget after n presses
//	n == 0: explicit no budget
//	n < 0:  invalid option, surfaces as ErrOptionViolation
func WithMaxPresses(n int) Option {
	return func(o *SimOptions) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: MaxPresses cannot be negative (%d)", ErrOptionViolation, n)
		default:
			o.MaxPresses = n
		}
	}
}

// PressResult totals the pulses delivered by a single press, the button
// pulse included.
type PressResult struct {
	Low  uint64
	High uint64
}

// Delivered returns the total number of pulses the press moved.
func (r PressResult) Delivered() uint64 { return r.Low + r.High }

// RunResult accumulates totals across a fixed number of presses.
type RunResult struct {
	Presses uint64
	Low     uint64
	High    uint64
}

// Product multiplies the low and high totals, the usual summary metric
// for a fixed-count run.
func (r RunResult) Product() uint64 { return r.Low * r.High }

// UntilResult reports a PressUntil search. Totals cover every press
// performed, including the one that matched.
type UntilResult struct {
	// Presses is the 1-based index of the matching press.
	Presses uint64
	Low     uint64
	High    uint64

	// Match is the first pulse the predicate accepted. The matching
	// press still ran to completion before PressUntil returned.
	Match circuit.Pulse
}
