// Package circuit defines the value types and error sentinels shared by
// the parser, the builder, and the module state machine.
package circuit

import "errors"

// Level is the polarity of a pulse: Low or High.
type Level uint8

const (
	// Low is the level the button injects and the level conjunction
	// memory starts from.
	Low Level = iota
	// High is the level a flip-flop emits when it switches on.
	High
)

// String returns "low" or "high".
func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Kind discriminates the module behaviors. The zero value is KindSink,
// so a module that is only ever referenced needs no declaration.
type Kind uint8

const (
	// KindSink absorbs pulses and never emits.
	KindSink Kind = iota
	// KindBroadcast repeats the incoming level to every output.
	KindBroadcast
	// KindFlipFlop toggles on low pulses and ignores high ones.
	KindFlipFlop
	// KindConjunction remembers the last level per input and emits low
	// exactly when all remembered levels are high.
	KindConjunction
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindBroadcast:
		return "broadcast"
	case KindFlipFlop:
		return "flip-flop"
	case KindConjunction:
		return "conjunction"
	default:
		return "sink"
	}
}

// ModuleID is a dense index assigned at construction time. IDs are
// stable for the lifetime of a Circuit and of every Clone of it.
type ModuleID int

// Reserved names, interned before any declaration is processed.
const (
	// ButtonName is the implicit source of every press.
	ButtonName = "button"
	// BroadcasterName is the sole unprefixed declarable module.
	BroadcasterName = "broadcaster"
)

// Reserved IDs. NewBuilder interns the button first and the broadcaster
// second, so these hold for every Circuit.
const (
	ButtonID      ModuleID = 0
	BroadcasterID ModuleID = 1
)

// Pulse is one level in flight from Source to Dest. Pulses are values;
// the scheduler copies them freely.
type Pulse struct {
	Source ModuleID
	Dest   ModuleID
	Level  Level
}

// Sentinel errors for construction and delivery.
var (
	// ErrBadModuleLine is returned when a line starts with neither a kind
	// prefix nor the broadcaster name.
	ErrBadModuleLine = errors.New("circuit: indecipherable module line")

	// ErrNotBroadcaster is returned when an unprefixed name starts with
	// 'b' but is not exactly "broadcaster".
	ErrNotBroadcaster = errors.New("circuit: unprefixed module is not the broadcaster")

	// ErrEmptyModuleName is returned when a declaration or an output
	// carries an empty name.
	ErrEmptyModuleName = errors.New("circuit: empty module name")

	// ErrDuplicateModule is returned when the same name is declared twice.
	ErrDuplicateModule = errors.New("circuit: module declared twice")

	// ErrUnknownModule is returned when a ModuleID is out of range.
	ErrUnknownModule = errors.New("circuit: module id out of range")

	// ErrUnknownSource is returned when a pulse reaches a conjunction
	// from a module that is not wired into it.
	ErrUnknownSource = errors.New("circuit: pulse source not wired into destination")

	// ErrNotPrimed is returned when conjunction memory is used or
	// validated before Prime.
	ErrNotPrimed = errors.New("circuit: conjunction memory not primed")

	// ErrAlreadyPrimed is returned by a second Prime on the same circuit.
	ErrAlreadyPrimed = errors.New("circuit: already primed")

	// ErrMemoryIncomplete is returned by Validate when a conjunction
	// remembers fewer inputs than are wired into it.
	ErrMemoryIncomplete = errors.New("circuit: conjunction memory incomplete")
)

// Stats summarizes a circuit: module counts per kind, total wire count
// (duplicates included), and whether the circuit has been primed.
type Stats struct {
	Modules      int
	Broadcasts   int
	FlipFlops    int
	Conjunctions int
	Sinks        int
	Wires        int
	Primed       bool
}
