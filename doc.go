// Package pulsim simulates pulse propagation through a circuit of named
// modules — build the wiring, press the button, watch the pulses cascade.
//
// 🚀 What is pulsim?
//
//	A small, deterministic discrete-event simulator that brings together:
//		• Circuit model: broadcasters, flip-flops, conjunctions and sinks
//		• Text parser: the "%a -> b, c" module-list format
//		• Press scheduler: strict FIFO causal delivery, pulse counting
//		• Observers: hook every delivered pulse for traces and analysis
//		• Cadence analysis: first-low prediction via cycle decomposition
//
// ✨ Why choose pulsim?
//
//   - Deterministic – same circuit, same press count, same totals, always
//   - Honest preconditions – structural assumptions are checked, not hoped
//   - Pure Go core – the simulation packages carry no third-party deps
//   - Extensible – observer hooks for custom per-pulse logic
//
// Everything is organized under three packages plus a CLI:
//
//	circuit/ — module graph, parser, builder, priming, state transitions
//	sim/     — the press scheduler: Press, Run, PressUntil
//	cadence/ — first-low prediction by feeder-period decomposition
//	cmd/pulsim — the command-line front end (totals, firstlow, trace, inspect)
//
// Quick ASCII example:
//
//	button ─low→ broadcaster ─→ %a ─→ %b ─→ %c ─→ &inv ─→ a
//
//	one press ripples through the flip-flop chain until the queue drains.
//
// Dive into the per-package documentation for the transition rules, the
// ordering contract, and the cycle-decomposition precondition.
//
//	go get github.com/katalvlaran/pulsim
package pulsim
