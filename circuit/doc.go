// Package circuit provides the static wiring and the per-module state
// machine of a pulse circuit: broadcasters, flip-flops, conjunctions,
// and the sink modules referenced between them.
//
// What
//
//   - Parse the line-oriented module grammar ("%a -> b, c") or assemble a
//     circuit programmatically with Builder.
//   - Module names are interned once at construction into dense ModuleIDs;
//     every runtime structure is an ID-indexed slice, so the hot path never
//     hashes a string.
//   - Deliver applies one pulse to one module and returns the pulses it
//     emits, in declared output order:
//   - broadcast repeats the incoming level to every output
//   - flip-flop ignores high; low toggles it and emits its new state
//   - conjunction records the sender's level, then emits low when every
//     remembered input is high, otherwise high
//   - sink absorbs everything and emits nothing
//   - Prime installs the conjunction memory (one low entry per distinct
//     input) exactly once; Validate proves a circuit is ready to simulate.
//
// Why
//
//   - The module graph is the data plane of the simulator in package sim:
//     keeping wiring, state, and transition rules here keeps the scheduler
//     a pure queue loop.
//   - Dense IDs make a press allocation-light and give byte-for-byte
//     reproducible traces.
//
// Determinism
//
//	Outputs preserve declaration order and duplicates; inputs are
//	deduplicated in first-seen order. Conjunction memory is a slice
//	parallel to the input list, so inspection and emission never depend
//	on map iteration order.
//
// Reserved names
//
//	"button" and "broadcaster" are always interned first, at ButtonID (0)
//	and BroadcasterID (1). A circuit without a broadcaster declaration is
//	legal: the press still lands on ID 1, which then behaves as a sink.
//
// Complexity (V = modules, W = wires)
//
//   - Build/Parse: O(V + W) time, O(V + W) memory.
//   - Deliver:     O(in-degree + out-degree) of the destination.
//   - Prime/Validate/Reset/Clone: O(V + W).
//
// Usage
//
//	c, err := circuit.Parse(strings.NewReader(text))
//	if err != nil { ... }
//	if err := c.Prime(); err != nil { ... }
//	out, err := c.Deliver(circuit.Pulse{
//	    Source: circuit.ButtonID,
//	    Dest:   circuit.BroadcasterID,
//	    Level:  circuit.Low,
//	})
//
// Errors
//
//   - ErrBadModuleLine, ErrNotBroadcaster, ErrEmptyModuleName  from parsing
//   - ErrDuplicateModule                                       from Build
//   - ErrNotPrimed, ErrAlreadyPrimed, ErrMemoryIncomplete      from the
//     prime/validate lifecycle
//   - ErrUnknownModule, ErrUnknownSource                       from Deliver
package circuit
