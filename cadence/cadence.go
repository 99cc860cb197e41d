// Package cadence implements first-low prediction: observe one period of
// every feeder of the gate conjunction, then combine the periods.
package cadence

import (
	"fmt"

	"github.com/katalvlaran/pulsim/circuit"
	"github.com/katalvlaran/pulsim/sim"
)

// FirstLow predicts the press index of the first low pulse into target,
// applying any number of functional Options. The target must be fed by
// exactly one conjunction; see the package documentation for the shape
// and the soundness bargain.
func FirstLow(c *circuit.Circuit, target string, opts ...Option) (*Result, error) {
	if c == nil {
		return nil, ErrCircuitNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Structural checks: target <- gate (conjunction) <- feeders.
	targetID, ok := c.Lookup(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, target)
	}
	upstream := c.Inputs(targetID)
	if len(upstream) != 1 {
		return nil, fmt.Errorf("%w: %q has %d", ErrGateCount, target, len(upstream))
	}
	gate := upstream[0]
	if k := c.KindOf(gate); k != circuit.KindConjunction {
		return nil, fmt.Errorf("%w: %q is a %s", ErrGateKind, c.Name(gate), k)
	}
	feeders := c.Inputs(gate)
	if len(feeders) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoFeeders, c.Name(gate))
	}

	// Observation phase: press until every feeder has landed one high
	// pulse on the gate, remembering the press index of each first.
	firstHigh := make(map[circuit.ModuleID]uint64, len(feeders))
	var press uint64
	watch := func(p circuit.Pulse) {
		o.OnPulse(p)
		if p.Dest != gate || p.Level != circuit.High {
			return
		}
		if _, seen := firstHigh[p.Source]; !seen {
			firstHigh[p.Source] = press
		}
	}
	for len(firstHigh) < len(feeders) {
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}
		if o.MaxPresses > 0 && press >= uint64(o.MaxPresses) {
			return nil, fmt.Errorf("%w: %d presses", ErrPressBudget, o.MaxPresses)
		}
		press++
		if _, err := sim.Press(c, sim.WithObserver(watch)); err != nil {
			return nil, err
		}
	}

	// Combine: the gate first sees all feeders high on the least common
	// multiple of their periods. Fold in feeder order for reproducible
	// overflow reporting.
	res := &Result{
		Presses: 1,
		Periods: make(map[string]uint64, len(feeders)),
		Gate:    c.Name(gate),
	}
	for _, f := range feeders {
		n := firstHigh[f]
		res.Periods[c.Name(f)] = n
		combined, fits := lcm(res.Presses, n)
		if !fits {
			return nil, fmt.Errorf("%w: lcm(%d, %d)", ErrOverflow, res.Presses, n)
		}
		res.Presses = combined
	}
	return res, nil
}
