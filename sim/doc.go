// Package sim drives button presses through a primed circuit.Circuit,
// draining every resulting pulse in strict first-in first-out order and
// counting low and high deliveries.
//
// What
//
//   - Press performs one button press: it injects the low button pulse
//     into the broadcaster and processes the queue until silence.
//   - Run repeats Press a fixed number of times and accumulates totals;
//     RunResult.Product() multiplies the low and high counts.
//   - PressUntil keeps pressing until a caller predicate matches a
//     delivered pulse, with an optional press budget as the brake.
//   - WithObserver taps every delivered pulse, in delivery order, before
//     the destination module acts on it. Pulses into sinks are observed
//     too, so a watcher on an output-only module sees its traffic.
//
// Why
//
//   - Pulse order is causal: everything a pulse triggers queues behind
//     everything already in flight. A slice-backed FIFO gives exactly
//     that and keeps a press allocation-light.
//   - Counting happens at delivery, so the totals include the button
//     pulse itself and stay additive across presses.
//
// Determinism
//
//	circuit.Deliver emits in declared output order and the queue is
//	strictly FIFO, so the same circuit state and press count produce the
//	same pulse sequence and the same totals on every run.
//
// Cancellation
//
//	A press always runs to completion. WithContext is honored between
//	presses only: Run and PressUntil check it before each press.
//
// Complexity (P = pulses delivered by one press)
//
//   - Press: O(P) time, O(width of the pulse front) memory.
//   - Run(n): O(n * P) time, reusing one queue.
//
// Usage
//
//	c, _ := circuit.Parse(r)
//	_ = c.Prime()
//
//	total, err := sim.Run(c, 1000)
//	if err != nil { ... }
//	fmt.Println(total.Product())
//
//	hit, err := sim.PressUntil(c,
//	    func(p circuit.Pulse) bool { return p.Level == circuit.Low && p.Dest == rx },
//	    sim.WithMaxPresses(1_000_000),
//	)
//
// Options
//
//   - DefaultOptions(): background context, no-op observer, no budget.
//   - WithContext(ctx):    cancellation between presses.
//   - WithObserver(fn):    tap every delivered pulse.
//   - WithMaxPresses(n):   abort PressUntil after n presses (0 = none).
//
// Errors
//
//   - ErrCircuitNil       if the circuit pointer is nil.
//   - ErrOptionViolation  if an option is invalid (negative budget).
//   - ErrPressCount       if Run is asked for zero or fewer presses.
//   - ErrNilPredicate     if PressUntil has no predicate.
//   - ErrPressBudget      if PressUntil exhausts WithMaxPresses.
//   - circuit.ErrNotPrimed and friends, surfaced from Validate before
//     the first press.
package sim
