// Package circuit implements the module arena: interned names, wiring,
// per-module state, and the single-pulse transition Deliver.
package circuit

import (
	"fmt"
	"strings"
)

// Circuit is the wired module graph plus its mutable state (flip-flop
// toggles and conjunction memory). Construction goes through Builder or
// Parse; zero-value Circuits are not usable.
//
// A Circuit is not safe for concurrent use. The simulator drives it from
// a single goroutine; callers needing parallel experiments should Clone.
type Circuit struct {
	names []string
	index map[string]ModuleID
	kinds []Kind
	outs  [][]ModuleID // declaration order, duplicates preserved
	ins   [][]ModuleID // first-seen order, deduplicated

	on     []bool    // flip-flop state, indexed by ModuleID
	mem    [][]Level // conjunction memory, parallel to ins[id]
	primed bool
}

// Size returns the number of interned modules, reserved names included.
func (c *Circuit) Size() int { return len(c.names) }

// Name returns the interned name for id, or "" when id is out of range.
func (c *Circuit) Name(id ModuleID) string {
	if id < 0 || int(id) >= len(c.names) {
		return ""
	}
	return c.names[id]
}

// Lookup resolves a module name to its ID.
func (c *Circuit) Lookup(name string) (ModuleID, bool) {
	id, ok := c.index[name]
	return id, ok
}

// KindOf returns the kind of id, or KindSink when id is out of range.
func (c *Circuit) KindOf(id ModuleID) Kind {
	if id < 0 || int(id) >= len(c.kinds) {
		return KindSink
	}
	return c.kinds[id]
}

// Outputs returns a copy of id's output list in declaration order,
// duplicates included.
func (c *Circuit) Outputs(id ModuleID) []ModuleID {
	if id < 0 || int(id) >= len(c.outs) {
		return nil
	}
	return append([]ModuleID(nil), c.outs[id]...)
}

// Inputs returns a copy of id's deduplicated input list in first-seen
// order. For a conjunction this is exactly its memory layout.
func (c *Circuit) Inputs(id ModuleID) []ModuleID {
	if id < 0 || int(id) >= len(c.ins) {
		return nil
	}
	return append([]ModuleID(nil), c.ins[id]...)
}

// FlipFlopOn reports whether flip-flop id is currently on. It returns
// false for every other kind and for out-of-range IDs.
func (c *Circuit) FlipFlopOn(id ModuleID) bool {
	if id < 0 || int(id) >= len(c.on) {
		return false
	}
	return c.on[id]
}

// MemoryLevel returns the level conjunction conj remembers for src.
// The second result is false when conj is not a primed conjunction or
// src is not wired into it.
func (c *Circuit) MemoryLevel(conj, src ModuleID) (Level, bool) {
	if conj < 0 || int(conj) >= len(c.kinds) ||
		c.kinds[conj] != KindConjunction || c.mem[conj] == nil {
		return Low, false
	}
	for i, s := range c.ins[conj] {
		if s == src {
			return c.mem[conj][i], true
		}
	}
	return Low, false
}

// Primed reports whether Prime has run.
func (c *Circuit) Primed() bool { return c.primed }

// Prime installs conjunction memory: one Low entry per distinct input of
// every conjunction. It must run exactly once, after construction and
// before the first Deliver; a second call returns ErrAlreadyPrimed.
//
// Priming to Low is what makes the very first press behave as if every
// upstream module had just sent a low pulse.
func (c *Circuit) Prime() error {
	if c.primed {
		return ErrAlreadyPrimed
	}
	for id, k := range c.kinds {
		if k == KindConjunction {
			c.mem[id] = make([]Level, len(c.ins[id]))
		}
	}
	c.primed = true
	return nil
}

// Validate proves the circuit is ready to simulate: primed, with every
// conjunction remembering exactly its wired inputs. It returns
// ErrNotPrimed or ErrMemoryIncomplete, naming the offending module.
func (c *Circuit) Validate() error {
	if !c.primed {
		return ErrNotPrimed
	}
	for id, k := range c.kinds {
		if k != KindConjunction {
			continue
		}
		if len(c.mem[id]) != len(c.ins[id]) {
			return fmt.Errorf("%w: %q remembers %d of %d inputs",
				ErrMemoryIncomplete, c.names[id], len(c.mem[id]), len(c.ins[id]))
		}
	}
	return nil
}

// Reset returns every flip-flop to off and every remembered level to Low,
// preserving wiring and primed-ness. After Reset the circuit is
// indistinguishable from a freshly primed one.
func (c *Circuit) Reset() {
	for i := range c.on {
		c.on[i] = false
	}
	for _, m := range c.mem {
		for i := range m {
			m[i] = Low
		}
	}
}

// Clone returns a deep copy sharing no memory with c. IDs, names, and
// state carry over, so a clone can replay or branch a simulation.
func (c *Circuit) Clone() *Circuit {
	n := len(c.names)
	cp := &Circuit{
		names:  append([]string(nil), c.names...),
		index:  make(map[string]ModuleID, n),
		kinds:  append([]Kind(nil), c.kinds...),
		outs:   make([][]ModuleID, n),
		ins:    make([][]ModuleID, n),
		on:     append([]bool(nil), c.on...),
		mem:    make([][]Level, n),
		primed: c.primed,
	}
	for name, id := range c.index {
		cp.index[name] = id
	}
	for id := 0; id < n; id++ {
		cp.outs[id] = append([]ModuleID(nil), c.outs[id]...)
		cp.ins[id] = append([]ModuleID(nil), c.ins[id]...)
		if c.mem[id] != nil {
			cp.mem[id] = append([]Level(nil), c.mem[id]...)
		}
	}
	return cp
}

// Stats counts modules per kind and wires (duplicates included).
func (c *Circuit) Stats() Stats {
	s := Stats{Modules: len(c.names), Primed: c.primed}
	for id, k := range c.kinds {
		switch k {
		case KindBroadcast:
			s.Broadcasts++
		case KindFlipFlop:
			s.FlipFlops++
		case KindConjunction:
			s.Conjunctions++
		default:
			s.Sinks++
		}
		s.Wires += len(c.outs[id])
	}
	return s
}

// Deliver applies pulse p to its destination and returns the emitted
// pulses in declared output order. Sinks and ignored levels emit nothing.
//
// Deliver mutates module state (flip-flop toggles, conjunction memory);
// it is the only mutation path besides Prime and Reset.
func (c *Circuit) Deliver(p Pulse) ([]Pulse, error) {
	if p.Dest < 0 || int(p.Dest) >= len(c.kinds) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModule, p.Dest)
	}
	switch c.kinds[p.Dest] {
	case KindBroadcast:
		return c.emit(p.Dest, p.Level), nil

	case KindFlipFlop:
		if p.Level == High {
			return nil, nil
		}
		c.on[p.Dest] = !c.on[p.Dest]
		if c.on[p.Dest] {
			return c.emit(p.Dest, High), nil
		}
		return c.emit(p.Dest, Low), nil

	case KindConjunction:
		m := c.mem[p.Dest]
		if m == nil && len(c.ins[p.Dest]) > 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotPrimed, c.names[p.Dest])
		}
		slot := -1
		for i, src := range c.ins[p.Dest] {
			if src == p.Source {
				slot = i
				break
			}
		}
		if slot < 0 {
			return nil, fmt.Errorf("%w: %q -> %q",
				ErrUnknownSource, c.Name(p.Source), c.names[p.Dest])
		}
		m[slot] = p.Level
		for _, lvl := range m {
			if lvl == Low {
				return c.emit(p.Dest, High), nil
			}
		}
		return c.emit(p.Dest, Low), nil

	default: // KindSink
		return nil, nil
	}
}

// emit fans level out to every declared output of src.
func (c *Circuit) emit(src ModuleID, level Level) []Pulse {
	outs := c.outs[src]
	if len(outs) == 0 {
		return nil
	}
	ps := make([]Pulse, len(outs))
	for i, dst := range outs {
		ps[i] = Pulse{Source: src, Dest: dst, Level: level}
	}
	return ps
}

// ModuleString renders one module for traces and inspection:
//
//	broadcaster -> a, b, c
//	%a off -> b
//	&inv [c=low] -> a
//	output (sink)
//
// Conjunction memory prints in input order; "[?]" marks an unprimed one.
func (c *Circuit) ModuleString(id ModuleID) string {
	if id < 0 || int(id) >= len(c.names) {
		return ""
	}
	var sb strings.Builder
	switch c.kinds[id] {
	case KindBroadcast:
		sb.WriteString(c.names[id])
	case KindFlipFlop:
		sb.WriteByte('%')
		sb.WriteString(c.names[id])
		if c.on[id] {
			sb.WriteString(" on")
		} else {
			sb.WriteString(" off")
		}
	case KindConjunction:
		sb.WriteByte('&')
		sb.WriteString(c.names[id])
		sb.WriteString(" [")
		if c.mem[id] == nil && len(c.ins[id]) > 0 {
			sb.WriteByte('?')
		} else {
			for i, src := range c.ins[id] {
				if i > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%s=%s", c.names[src], c.mem[id][i])
			}
		}
		sb.WriteByte(']')
	default:
		sb.WriteString(c.names[id])
		sb.WriteString(" (sink)")
		return sb.String()
	}
	if len(c.outs[id]) > 0 {
		sb.WriteString(" -> ")
		for i, dst := range c.outs[id] {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.names[dst])
		}
	}
	return sb.String()
}
