package cadence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pulsim/cadence"
	"github.com/katalvlaran/pulsim/circuit"
	"github.com/katalvlaran/pulsim/sim"
)

// counterRig feeds the gate conjunction from two inverted flip-flop
// chains: feeder nf fires every 2 presses, ng every 4, so the gate
// first emits low on press 4.
var counterRig = []string{
	"broadcaster -> f1, g1",
	"%f1 -> nf",
	"&nf -> gate",
	"%g1 -> g2",
	"%g2 -> ng",
	"&ng -> gate",
	"&gate -> rx",
}

type FirstLowSuite struct {
	suite.Suite
}

// build parses and primes a fixture.
func (s *FirstLowSuite) build(lines ...string) *circuit.Circuit {
	c, err := circuit.ParseLines(lines...)
	s.Require().NoError(err)
	s.Require().NoError(c.Prime())
	return c
}

func (s *FirstLowSuite) TestTwoCounterRig() {
	require := s.Require()
	res, err := cadence.FirstLow(s.build(counterRig...), "rx")
	require.NoError(err)
	require.Equal(uint64(4), res.Presses)
	require.Equal("gate", res.Gate)
	require.Equal(map[string]uint64{"nf": 2, "ng": 4}, res.Periods)
}

func (s *FirstLowSuite) TestMatchesDirectSearch() {
	require := s.Require()
	c := s.build(counterRig...)
	rx, ok := c.Lookup("rx")
	require.True(ok)

	// Predict on a clone, then replay the exact search on the original.
	predicted, err := cadence.FirstLow(c.Clone(), "rx")
	require.NoError(err)

	direct, err := sim.PressUntil(c, func(p circuit.Pulse) bool {
		return p.Dest == rx && p.Level == circuit.Low
	})
	require.NoError(err)
	require.Equal(direct.Presses, predicted.Presses)
}

func (s *FirstLowSuite) TestTargetNotFound() {
	_, err := cadence.FirstLow(s.build(counterRig...), "nowhere")
	s.Require().ErrorIs(err, cadence.ErrTargetNotFound)
}

func (s *FirstLowSuite) TestRejectsMultipleUpstreams() {
	c := s.build(
		"broadcaster -> rx",
		"&g -> rx",
	)
	_, err := cadence.FirstLow(c, "rx")
	s.Require().ErrorIs(err, cadence.ErrGateCount)
}

func (s *FirstLowSuite) TestRejectsNonConjunctionGate() {
	c := s.build(
		"broadcaster -> f",
		"%f -> rx",
	)
	_, err := cadence.FirstLow(c, "rx")
	s.Require().ErrorIs(err, cadence.ErrGateKind)
	s.Require().Contains(err.Error(), "flip-flop")
}

func (s *FirstLowSuite) TestRejectsUnfedGate() {
	c := s.build("&gate -> rx")
	_, err := cadence.FirstLow(c, "rx")
	s.Require().ErrorIs(err, cadence.ErrNoFeeders)
}

func (s *FirstLowSuite) TestPressBudget() {
	// dead never receives a pulse, so the gate never hears high.
	c := s.build(
		"broadcaster -> x",
		"%dead -> gate",
		"&gate -> rx",
	)
	_, err := cadence.FirstLow(c, "rx", cadence.WithMaxPresses(5))
	s.Require().ErrorIs(err, cadence.ErrPressBudget)
}

func (s *FirstLowSuite) TestNilCircuitAndBadOption() {
	require := s.Require()
	_, err := cadence.FirstLow(nil, "rx")
	require.ErrorIs(err, cadence.ErrCircuitNil)

	_, err = cadence.FirstLow(s.build(counterRig...), "rx", cadence.WithMaxPresses(-1))
	require.ErrorIs(err, cadence.ErrOptionViolation)
}

func (s *FirstLowSuite) TestUnprimedCircuit() {
	c, err := circuit.ParseLines(counterRig...)
	s.Require().NoError(err)
	_, err = cadence.FirstLow(c, "rx")
	s.Require().ErrorIs(err, circuit.ErrNotPrimed)
}

func (s *FirstLowSuite) TestCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cadence.FirstLow(s.build(counterRig...), "rx", cadence.WithContext(ctx))
	s.Require().ErrorIs(err, context.Canceled)
}

func (s *FirstLowSuite) TestObserverForwarded() {
	var pulses int
	_, err := cadence.FirstLow(s.build(counterRig...), "rx",
		cadence.WithObserver(func(circuit.Pulse) { pulses++ }),
	)
	s.Require().NoError(err)
	s.Require().Greater(pulses, 0, "observer must see the underlying presses")
}

func TestFirstLowSuite(t *testing.T) {
	suite.Run(t, new(FirstLowSuite))
}
