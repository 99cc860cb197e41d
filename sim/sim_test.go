package sim_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/katalvlaran/pulsim/circuit"
	"github.com/katalvlaran/pulsim/sim"
)

// cascade is a loop of flip-flops closed by an inverting conjunction:
// one press delivers 8 low and 4 high pulses and returns the circuit to
// its initial state.
var cascade = []string{
	"broadcaster -> a, b, c",
	"%a -> b",
	"%b -> c",
	"%c -> inv",
	"&inv -> a",
}

// interference mixes two flip-flops through two conjunctions; its state
// cycles every 4 presses with uneven per-press totals.
var interference = []string{
	"broadcaster -> a",
	"%a -> inv, con",
	"&inv -> b",
	"%b -> con",
	"&con -> output",
}

// counters feeds a conjunction gate from two inverted flip-flop chains:
// the gate first sends low to rx on press 4.
var counters = []string{
	"broadcaster -> f1, g1",
	"%f1 -> nf",
	"&nf -> gate",
	"%g1 -> g2",
	"%g2 -> ng",
	"&ng -> gate",
	"&gate -> rx",
}

// build parses and primes a fixture.
func build(t *testing.T, lines []string) *circuit.Circuit {
	t.Helper()
	c, err := circuit.ParseLines(lines...)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if err := c.Prime(); err != nil {
		t.Fatalf("prime fixture: %v", err)
	}
	return c
}

// TestPress_Errors verifies that invalid inputs and options are rejected.
func TestPress_Errors(t *testing.T) {
	// nil circuit
	if _, err := sim.Press(nil); !errors.Is(err, sim.ErrCircuitNil) {
		t.Errorf("nil circuit: want ErrCircuitNil, got %v", err)
	}
	// unprimed circuit
	c, err := circuit.ParseLines(cascade...)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sim.Press(c); !errors.Is(err, circuit.ErrNotPrimed) {
		t.Errorf("unprimed: want ErrNotPrimed, got %v", err)
	}
	// negative budget is a violation
	if _, err := sim.Press(build(t, cascade), sim.WithMaxPresses(-1)); !errors.Is(err, sim.ErrOptionViolation) {
		t.Errorf("negative budget: want ErrOptionViolation, got %v", err)
	}
}

// TestPress_CountsIncludeButton checks the smallest possible press: the
// button pulse itself is the first delivery.
func TestPress_CountsIncludeButton(t *testing.T) {
	res, err := sim.Press(build(t, []string{"broadcaster -> rx"}))
	if err != nil {
		t.Fatal(err)
	}
	// button -> broadcaster, broadcaster -> rx
	if res.Low != 2 || res.High != 0 {
		t.Errorf("totals = %d low / %d high; want 2 / 0", res.Low, res.High)
	}
	if res.Delivered() != 2 {
		t.Errorf("Delivered() = %d; want 2", res.Delivered())
	}
}

// TestPress_MissingBroadcaster presses a circuit that never declares the
// broadcaster: the button pulse lands on a sink and nothing follows.
func TestPress_MissingBroadcaster(t *testing.T) {
	res, err := sim.Press(build(t, []string{"%a -> b"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Low != 1 || res.High != 0 {
		t.Errorf("totals = %d low / %d high; want 1 / 0", res.Low, res.High)
	}
}

// TestPress_CascadeTotals presses the cascade once and expects the
// canonical 8 low / 4 high split.
func TestPress_CascadeTotals(t *testing.T) {
	res, err := sim.Press(build(t, cascade))
	if err != nil {
		t.Fatal(err)
	}
	if res.Low != 8 || res.High != 4 {
		t.Errorf("totals = %d low / %d high; want 8 / 4", res.Low, res.High)
	}
}

// TestPress_CascadeReturnsToInitialState verifies the cascade's period
// is one press: every press repeats the same totals and the state
// renders like a freshly primed copy.
func TestPress_CascadeReturnsToInitialState(t *testing.T) {
	c := build(t, cascade)
	fresh := build(t, cascade)

	first, err := sim.Press(c)
	if err != nil {
		t.Fatal(err)
	}
	for m := circuit.ModuleID(0); int(m) < c.Size(); m++ {
		if got, want := c.ModuleString(m), fresh.ModuleString(m); got != want {
			t.Errorf("module %d after press = %q; want %q", m, got, want)
		}
	}
	second, err := sim.Press(c)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("second press = %+v; want %+v", second, first)
	}
}

// TestObserver_SequenceAndOrder records every delivery of one cascade
// press and compares the exact causal order.
func TestObserver_SequenceAndOrder(t *testing.T) {
	c := build(t, cascade)
	var got []string
	_, err := sim.Press(c, sim.WithObserver(func(p circuit.Pulse) {
		got = append(got, fmt.Sprintf("%s -%s-> %s", c.Name(p.Source), p.Level, c.Name(p.Dest)))
	}))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"button -low-> broadcaster",
		"broadcaster -low-> a",
		"broadcaster -low-> b",
		"broadcaster -low-> c",
		"a -high-> b",
		"b -high-> c",
		"c -high-> inv",
		"inv -low-> a",
		"a -low-> b",
		"b -low-> c",
		"c -low-> inv",
		"inv -high-> a",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pulse sequence mismatch:\n got %v\nwant %v", got, want)
	}
}

// TestObserver_SeesSinkDeliveries taps a pulse whose destination absorbs
// it: watchers on output-only modules must still fire.
func TestObserver_SeesSinkDeliveries(t *testing.T) {
	c := build(t, []string{"broadcaster -> rx"})
	rx, _ := c.Lookup("rx")
	seen := 0
	_, err := sim.Press(c, sim.WithObserver(func(p circuit.Pulse) {
		if p.Dest == rx {
			seen++
		}
	}))
	if err != nil {
		t.Fatal(err)
	}
	if seen != 1 {
		t.Errorf("sink deliveries observed = %d; want 1", seen)
	}
}

// TestRun_CascadeThousand multiplies out the classic fixed-count run.
func TestRun_CascadeThousand(t *testing.T) {
	res, err := sim.Run(build(t, cascade), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if res.Low != 8000 || res.High != 4000 {
		t.Errorf("totals = %d low / %d high; want 8000 / 4000", res.Low, res.High)
	}
	if got, want := res.Product(), uint64(32000000); got != want {
		t.Errorf("Product() = %d; want %d", got, want)
	}
}

// TestRun_InterferenceThousand covers the 4-press state cycle with
// uneven per-press totals.
func TestRun_InterferenceThousand(t *testing.T) {
	res, err := sim.Run(build(t, interference), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if res.Low != 4250 || res.High != 2750 {
		t.Errorf("totals = %d low / %d high; want 4250 / 2750", res.Low, res.High)
	}
	if got, want := res.Product(), uint64(11687500); got != want {
		t.Errorf("Product() = %d; want %d", got, want)
	}
}

// TestRun_InterferenceCycle pins the first four per-press splits of the
// interference fixture.
func TestRun_InterferenceCycle(t *testing.T) {
	c := build(t, interference)
	want := []sim.PressResult{
		{Low: 4, High: 4},
		{Low: 4, High: 2},
		{Low: 5, High: 3},
		{Low: 4, High: 2},
	}
	for i, w := range want {
		got, err := sim.Press(c)
		if err != nil {
			t.Fatalf("press %d: %v", i+1, err)
		}
		if got != w {
			t.Errorf("press %d = %+v; want %+v", i+1, got, w)
		}
	}
}

// TestRun_Errors rejects non-positive press counts.
func TestRun_Errors(t *testing.T) {
	c := build(t, cascade)
	for _, n := range []int{0, -5} {
		if _, err := sim.Run(c, n); !errors.Is(err, sim.ErrPressCount) {
			t.Errorf("Run(%d): want ErrPressCount, got %v", n, err)
		}
	}
}

// TestRun_Cancellation verifies that a cancelled context halts between
// presses and reports partial totals.
func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // immediate
	res, err := sim.Run(build(t, cascade), 10, sim.WithContext(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
	if res.Presses != 0 {
		t.Errorf("presses before cancel = %d; want 0", res.Presses)
	}
}

// TestRun_DeterministicAcrossClones runs the same press count on a
// circuit and its clone and expects identical totals.
func TestRun_DeterministicAcrossClones(t *testing.T) {
	c := build(t, interference)
	cp := c.Clone()

	a, err := sim.Run(c, 64)
	if err != nil {
		t.Fatal(err)
	}
	b, err := sim.Run(cp, 64)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("clone diverged: %+v vs %+v", a, b)
	}
}

// TestPressUntil_FirstLowToSink searches the counters fixture for the
// first low pulse into rx, known to land on press 4.
func TestPressUntil_FirstLowToSink(t *testing.T) {
	c := build(t, counters)
	rx, ok := c.Lookup("rx")
	if !ok {
		t.Fatal("fixture must intern rx")
	}
	res, err := sim.PressUntil(c, func(p circuit.Pulse) bool {
		return p.Dest == rx && p.Level == circuit.Low
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Presses != 4 {
		t.Errorf("Presses = %d; want 4", res.Presses)
	}
	gate, _ := c.Lookup("gate")
	if res.Match.Source != gate || res.Match.Dest != rx || res.Match.Level != circuit.Low {
		t.Errorf("Match = %+v; want low gate->rx", res.Match)
	}
	// Totals cover all four presses, hand-traced.
	if res.Low != 21 || res.High != 13 {
		t.Errorf("totals = %d low / %d high; want 21 / 13", res.Low, res.High)
	}
}

// TestPressUntil_MatchingPressCompletes ensures the matching press is
// not cut short: deliveries after the match still count.
func TestPressUntil_MatchingPressCompletes(t *testing.T) {
	c := build(t, []string{"broadcaster -> a, b"})
	a, _ := c.Lookup("a")
	res, err := sim.PressUntil(c, func(p circuit.Pulse) bool { return p.Dest == a })
	if err != nil {
		t.Fatal(err)
	}
	// button->broadcaster, broadcaster->a (match), broadcaster->b
	if res.Low != 3 {
		t.Errorf("Low = %d; want 3 (press drains past the match)", res.Low)
	}
}

// TestPressUntil_Budget exhausts WithMaxPresses on a predicate that can
// never match.
func TestPressUntil_Budget(t *testing.T) {
	c := build(t, cascade)
	res, err := sim.PressUntil(c,
		func(circuit.Pulse) bool { return false },
		sim.WithMaxPresses(3),
	)
	if !errors.Is(err, sim.ErrPressBudget) {
		t.Errorf("want ErrPressBudget, got %v", err)
	}
	if res.Presses != 3 {
		t.Errorf("presses performed = %d; want 3", res.Presses)
	}
}

// TestPressUntil_NilPredicate rejects a missing predicate.
func TestPressUntil_NilPredicate(t *testing.T) {
	if _, err := sim.PressUntil(build(t, cascade), nil); !errors.Is(err, sim.ErrNilPredicate) {
		t.Errorf("want ErrNilPredicate, got %v", err)
	}
}
