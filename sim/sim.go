// Package sim implements the press scheduler: a slice-backed FIFO that
// drains one button press at a time through circuit.Deliver.
package sim

import (
	"fmt"

	"github.com/katalvlaran/pulsim/circuit"
)

// initialQueueCap sizes the pulse queue for typical fan-outs; the queue
// grows as needed and is reused across presses.
const initialQueueCap = 64

// runner encapsulates mutable press state.
type runner struct {
	circ  *circuit.Circuit
	opts  SimOptions
	queue []circuit.Pulse
}

// prepare validates inputs and options and builds a runner.
func prepare(c *circuit.Circuit, opts []Option) (*runner, error) {
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
	// A press on an unprimed or damaged circuit would corrupt silently;
	// refuse it up front.
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &runner{
		circ:  c,
		opts:  o,
		queue: make([]circuit.Pulse, 0, initialQueueCap),
	}, nil
}

// press injects the button pulse and drains the queue. The queue must be
// empty on entry; it is empty again on return.
func (r *runner) press() (PressResult, error) {
	var res PressResult
	r.queue = append(r.queue, circuit.Pulse{
		Source: circuit.ButtonID,
		Dest:   circuit.BroadcasterID,
		Level:  circuit.Low,
	})
	for len(r.queue) > 0 {
		p := r.queue[0]
		r.queue = r.queue[1:]

		// Count and observe at delivery, before the module acts.
		if p.Level == circuit.High {
			res.High++
		} else {
			res.Low++
		}
		r.opts.OnPulse(p)

		out, err := r.circ.Deliver(p)
		if err != nil {
			return res, err
		}
		r.queue = append(r.queue, out...)
	}
	return res, nil
}

// cancelled reports a context error between presses, never inside one.
func (r *runner) cancelled() error {
	select {
	case <-r.opts.Ctx.Done():
		return r.opts.Ctx.Err()
	default:
		return nil
	}
}

// Press performs a single button press on c, applying any number of
// functional Options, and returns the low/high totals it delivered.
// Returns ErrCircuitNil or a circuit validation error for bad input,
// ErrOptionViolation for bad options.
func Press(c *circuit.Circuit, opts ...Option) (PressResult, error) {
	r, err := prepare(c, opts)
	if err != nil {
		return PressResult{}, err
	}
	return r.press()
}

// Run performs presses button presses and accumulates the totals.
// The context, if any, is consulted before each press; a cancellation
// returns the totals gathered so far alongside the context error.
func Run(c *circuit.Circuit, presses int, opts ...Option) (RunResult, error) {
	if presses <= 0 {
		return RunResult{}, fmt.Errorf("%w: %d", ErrPressCount, presses)
	}
	r, err := prepare(c, opts)
	if err != nil {
		return RunResult{}, err
	}
	var res RunResult
	for i := 0; i < presses; i++ {
		if err := r.cancelled(); err != nil {
			return res, err
		}
		pr, err := r.press()
		if err != nil {
			return res, err
		}
		res.Presses++
		res.Low += pr.Low
		res.High += pr.High
	}
	return res, nil
}

// PressUntil presses until stop accepts a delivered pulse. The matching
// press runs to completion; its totals are included. With a MaxPresses
// budget set and exhausted, PressUntil returns ErrPressBudget.
func PressUntil(c *circuit.Circuit, stop func(circuit.Pulse) bool, opts ...Option) (UntilResult, error) {
	if stop == nil {
		return UntilResult{}, ErrNilPredicate
	}
	r, err := prepare(c, opts)
	if err != nil {
		return UntilResult{}, err
	}

	var (
		res     UntilResult
		matched bool
	)
	// Chain the caller's observer with the match watch; only the first
	// accepted pulse is recorded.
	inner := r.opts.OnPulse
	r.opts.OnPulse = func(p circuit.Pulse) {
		inner(p)
		if !matched && stop(p) {
			matched = true
			res.Match = p
		}
	}

	for {
		if err := r.cancelled(); err != nil {
			return res, err
		}
		if r.opts.MaxPresses > 0 && res.Presses >= uint64(r.opts.MaxPresses) {
			return res, fmt.Errorf("%w: %d presses", ErrPressBudget, r.opts.MaxPresses)
		}
		pr, err := r.press()
		if err != nil {
			return res, err
		}
		res.Presses++
		res.Low += pr.Low
		res.High += pr.High
		if matched {
			return res, nil
		}
	}
}
