// Package circuit: Builder assembles a Circuit declaration by declaration.
package circuit

import "fmt"

// Builder collects module declarations and resolves them into a Circuit.
// Declaration methods chain; the first violation is recorded and every
// later call becomes a no-op, so a single error check at Build suffices.
type Builder struct {
	names   []string
	index   map[string]ModuleID
	kinds   []Kind
	outs    [][]ModuleID
	defined []bool
	err     error // first recorded violation
}

// NewBuilder returns an empty Builder with the reserved names interned:
// "button" at ButtonID, "broadcaster" at BroadcasterID.
func NewBuilder() *Builder {
	b := &Builder{index: make(map[string]ModuleID, 16)}
	b.intern(ButtonName)
	b.intern(BroadcasterName)
	return b
}

// intern returns the ID for name, creating a sink entry on first sight.
func (b *Builder) intern(name string) ModuleID {
	if id, ok := b.index[name]; ok {
		return id
	}
	id := ModuleID(len(b.names))
	b.index[name] = id
	b.names = append(b.names, name)
	b.kinds = append(b.kinds, KindSink)
	b.outs = append(b.outs, nil)
	b.defined = append(b.defined, false)
	return id
}

// Broadcast declares the broadcaster with its outputs.
func (b *Builder) Broadcast(outputs ...string) *Builder {
	return b.declare(BroadcasterName, KindBroadcast, outputs)
}

// FlipFlop declares a flip-flop module with its outputs.
func (b *Builder) FlipFlop(name string, outputs ...string) *Builder {
	return b.declare(name, KindFlipFlop, outputs)
}

// Conjunction declares a conjunction module with its outputs.
func (b *Builder) Conjunction(name string, outputs ...string) *Builder {
	return b.declare(name, KindConjunction, outputs)
}

// declare interns name, stamps its kind, and interns every output.
// Empty names and re-declarations are recorded as the builder error.
func (b *Builder) declare(name string, k Kind, outputs []string) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("%w: %s declaration", ErrEmptyModuleName, k)
		return b
	}
	id := b.intern(name)
	if b.defined[id] {
		b.err = fmt.Errorf("%w: %q", ErrDuplicateModule, name)
		return b
	}
	b.defined[id] = true
	b.kinds[id] = k
	for _, out := range outputs {
		if out == "" {
			b.err = fmt.Errorf("%w: output of %q", ErrEmptyModuleName, name)
			return b
		}
		b.outs[id] = append(b.outs[id], b.intern(out))
	}
	return b
}

// Err exposes the recorded violation, if any, without building.
func (b *Builder) Err() error { return b.err }

// Build resolves the declarations into an unprimed Circuit. The builder
// remains usable afterwards; the circuit shares no memory with it.
func (b *Builder) Build() (*Circuit, error) {
	if b.err != nil {
		return nil, b.err
	}
	n := len(b.names)
	c := &Circuit{
		names: append([]string(nil), b.names...),
		index: make(map[string]ModuleID, n),
		kinds: append([]Kind(nil), b.kinds...),
		outs:  make([][]ModuleID, n),
		ins:   make([][]ModuleID, n),
		on:    make([]bool, n),
		mem:   make([][]Level, n),
	}
	for name, id := range b.index {
		c.index[name] = id
	}
	for id, outs := range b.outs {
		c.outs[id] = append([]ModuleID(nil), outs...)
	}
	// Reverse wiring: outputs keep duplicates, inputs are deduplicated
	// in first-seen order so conjunction memory has one slot per sender.
	for src := ModuleID(0); src < ModuleID(n); src++ {
		for _, dst := range c.outs[src] {
			if !containsID(c.ins[dst], src) {
				c.ins[dst] = append(c.ins[dst], src)
			}
		}
	}
	return c, nil
}

// containsID reports whether id occurs in ids. Input lists are tiny
// (fan-in of a module), so a linear scan beats any set structure.
func containsID(ids []ModuleID, id ModuleID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
