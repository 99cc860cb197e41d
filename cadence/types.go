// Package cadence provides tunable options and error definitions for
// first-low prediction.
package cadence

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/pulsim/circuit"
	"github.com/katalvlaran/pulsim/sim"
)

// DefaultMaxPresses caps the observation phase when the caller sets no
// budget of their own. Counter rigs fire each feeder within one period,
// so hitting this cap almost always means the wiring cannot satisfy the
// decomposition.
const DefaultMaxPresses = 1 << 20

// Sentinel errors for cadence analysis.
var (
	// ErrCircuitNil is returned if a nil circuit pointer is passed.
	ErrCircuitNil = errors.New("cadence: circuit is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("cadence: invalid option supplied")

	// ErrTargetNotFound is returned when the target name is unknown.
	ErrTargetNotFound = errors.New("cadence: target module not found")

	// ErrGateCount is returned when the target is not fed by exactly one
	// module.
	ErrGateCount = errors.New("cadence: target needs exactly one feeding module")

	// ErrGateKind is returned when the module feeding the target is not
	// a conjunction.
	ErrGateKind = errors.New("cadence: gate is not a conjunction")

	// ErrNoFeeders is returned when the gate has no inputs to observe.
	ErrNoFeeders = errors.New("cadence: gate has no feeders")

	// ErrPressBudget is returned when feeders stay silent past the
	// press budget.
	ErrPressBudget = errors.New("cadence: press budget exhausted")

	// ErrOverflow is returned when the combined cycle length exceeds
	// uint64.
	ErrOverflow = errors.New("cadence: cycle length overflows uint64")
)

// Option configures cadence analysis via functional arguments.
// An invalid Option is recorded internally and surfaced as
// ErrOptionViolation when FirstLow is invoked.
type Option func(*Options)

// Options holds parameters for FirstLow.
type Options struct {
	// Ctx allows cancellation and deadlines, checked between presses.
	Ctx context.Context

	// OnPulse is forwarded to every underlying press.
	OnPulse sim.Observer

	// MaxPresses bounds the observation phase. 0 disables the bound.
	MaxPresses int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - context.Background()
//   - no-op observer
//   - DefaultMaxPresses budget
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		OnPulse:    func(circuit.Pulse) {},
		MaxPresses: DefaultMaxPresses,
		err:        nil,
	}
}

// WithContext sets a custom context for cancellation between presses.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithObserver forwards fn to every press performed by FirstLow.
func WithObserver(fn sim.Observer) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPulse = fn
		}
	}
}

// WithMaxPresses replaces the default observation budget.
//
//	n > 0:  abort with ErrPressBudget after n presses
//	n == 0: explicit no budget
//	n < 0:  invalid option, surfaces as ErrOptionViolation
func WithMaxPresses(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: MaxPresses cannot be negative (%d)", ErrOptionViolation, n)
		default:
			o.MaxPresses = n
		}
	}
}

// Result reports a successful prediction.
type Result struct {
	// Presses is the predicted 1-based press index of the first low
	// pulse into the target.
	Presses uint64

	// Periods maps each feeder name to the press index of its first
	// high pulse into the gate.
	Periods map[string]uint64

	// Gate names the conjunction feeding the target.
	Gate string
}
