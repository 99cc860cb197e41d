// Package circuit: the line-oriented module grammar.
//
// Each line declares one module and its outputs:
//
//	broadcaster -> a, b, c
//	%a -> b
//	&inv -> out
//
// '%' marks a flip-flop, '&' a conjunction; the only unprefixed
// declarable name is "broadcaster". Blank lines are skipped.
package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// isDelim reports whether r separates tokens of the module grammar:
// the space, the dash and the arrow head of "->", and the comma.
func isDelim(r rune) bool {
	return r == ' ' || r == '-' || r == '>' || r == ','
}

// Parse reads module declarations from r and builds an unprimed Circuit.
// Per-line violations are wrapped with the 1-based line number; name
// collisions across lines surface from the final Build.
func Parse(r io.Reader) (*Circuit, error) {
	b := NewBuilder()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := parseLine(b, sc.Text(), line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("circuit: read: %w", err)
	}
	return b.Build()
}

// ParseLines is a convenience wrapper over Parse for fixtures and tests.
func ParseLines(lines ...string) (*Circuit, error) {
	return Parse(strings.NewReader(strings.Join(lines, "\n")))
}

// parseLine classifies one declaration and feeds it to the builder.
// An empty field list (blank or delimiter-only line) is skipped.
func parseLine(b *Builder, raw string, n int) error {
	fields := strings.FieldsFunc(raw, isDelim)
	if len(fields) == 0 {
		return nil
	}
	head, outputs := fields[0], fields[1:]
	switch {
	case head[0] == '%':
		if len(head) == 1 {
			return lineErr(n, raw, ErrEmptyModuleName)
		}
		b.FlipFlop(head[1:], outputs...)
	case head[0] == '&':
		if len(head) == 1 {
			return lineErr(n, raw, ErrEmptyModuleName)
		}
		b.Conjunction(head[1:], outputs...)
	case head == BroadcasterName:
		b.Broadcast(outputs...)
	case head[0] == 'b':
		return lineErr(n, raw, ErrNotBroadcaster)
	default:
		return lineErr(n, raw, ErrBadModuleLine)
	}
	return nil
}

// lineErr wraps a grammar sentinel with the offending line.
func lineErr(n int, raw string, sentinel error) error {
	return fmt.Errorf("%w: line %d: %q", sentinel, n, raw)
}
