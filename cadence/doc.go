// Package cadence predicts when a circuit first sends a low pulse into a
// chosen module, without pressing the button that many times.
//
// What
//
//   - FirstLow(c, target) inspects the wiring upstream of target and
//     requires the shape counter rigs share: the target is fed by exactly
//     one conjunction (the gate), which in turn is fed by one or more
//     feeder modules.
//   - It then presses the circuit, recording for every feeder the press
//     index of the first high pulse it delivers into the gate.
//   - Once every feeder has fired, the predicted press count is the least
//     common multiple of those indices: the first press on which all
//     feeders go high together, making the gate emit low.
//
// Why
//
//   - Counter rigs reset themselves when they fire, so each feeder's
//     first high press equals its full period, and the direct search
//     (sim.PressUntil) would need the product-scale number of presses.
//     Observing one period per feeder costs only max(periods) presses.
//
// Preconditions
//
//	The decomposition is sound when each feeder fires on exact multiples
//	of its first-fire press, and only then. cadence checks the wiring
//	shape (single conjunction gate) and rejects anything else with a
//	typed error; the periodicity itself is the caller's bargain, so
//	Result carries the per-feeder indices for auditing, and
//	sim.PressUntil remains the exact fallback.
//
// Complexity (F = feeders, P = longest feeder period)
//
//   - Presses performed: P (budget-capped), each O(pulses delivered).
//   - Memory: O(F).
//
// Usage
//
//	res, err := cadence.FirstLow(c, "rx")
//	if err != nil { ... }
//	fmt.Println(res.Presses)          // predicted press index
//	fmt.Println(res.Periods["nf"])    // one feeder's observed period
//
// Options
//
//   - DefaultOptions(): background context, no-op observer, and a
//     1<<20 press budget.
//   - WithContext(ctx):   cancellation between presses.
//   - WithObserver(fn):   forwarded to the underlying presses.
//   - WithMaxPresses(n):  replace the default budget (0 disables it).
//
// Errors
//
//   - ErrCircuitNil       if the circuit pointer is nil.
//   - ErrOptionViolation  if an option is invalid.
//   - ErrTargetNotFound   if the target name is not in the circuit.
//   - ErrGateCount        if the target is not fed by exactly one module.
//   - ErrGateKind         if that module is not a conjunction.
//   - ErrNoFeeders        if the gate itself has no inputs.
//   - ErrPressBudget      if feeders stay silent past the budget.
//   - ErrOverflow         if the least common multiple leaves uint64.
package cadence
