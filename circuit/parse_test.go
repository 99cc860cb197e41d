package circuit_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pulsim/circuit"
)

// TestParse_Grammar accepts the three declaration forms and tolerates
// ragged spacing around the delimiters.
func TestParse_Grammar(t *testing.T) {
	c, err := circuit.Parse(strings.NewReader(
		"broadcaster -> a, b\n" +
			"%a->con\n" + // no spaces at all
			"%b  ->   con\n" + // extra spaces
			"&con -> rx\n",
	))
	require.NoError(t, err)
	require.Equal(t, circuit.KindFlipFlop, c.KindOf(id(t, c, "a")))
	require.Equal(t, circuit.KindConjunction, c.KindOf(id(t, c, "con")))
	require.Equal(t,
		[]circuit.ModuleID{id(t, c, "a"), id(t, c, "b")},
		c.Inputs(id(t, c, "con")))
}

// TestParse_BlankLines skips empty and delimiter-only lines.
func TestParse_BlankLines(t *testing.T) {
	c, err := circuit.Parse(strings.NewReader("\nbroadcaster -> a\n\n   \n%a -> b\n,,,\n"))
	require.NoError(t, err)
	require.Equal(t, 1, c.Stats().FlipFlops)
	require.Equal(t, 1, c.Stats().Broadcasts)
}

// TestParse_NoOutputs keeps a dangling arrow legal: the module simply
// emits into nothing.
func TestParse_NoOutputs(t *testing.T) {
	c, err := circuit.ParseLines("broadcaster -> a", "%a ->")
	require.NoError(t, err)
	require.Empty(t, c.Outputs(id(t, c, "a")))
}

// TestParse_Errors maps each malformed line to its sentinel and keeps
// the 1-based line number in the message.
func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"misspelled broadcaster", "broadcast -> a", circuit.ErrNotBroadcaster},
		{"b-prefixed name", "button -> a", circuit.ErrNotBroadcaster},
		{"unprefixed name", "inv -> a", circuit.ErrBadModuleLine},
		{"bare percent", "% -> a", circuit.ErrEmptyModuleName},
		{"bare ampersand", "& -> a", circuit.ErrEmptyModuleName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := circuit.ParseLines("broadcaster -> x", tc.text)
			require.ErrorIs(t, err, tc.want)
			require.Contains(t, err.Error(), "line 2")
		})
	}
}

// TestParse_DuplicateDeclaration surfaces ErrDuplicateModule from Build,
// whatever kinds the two declarations carry.
func TestParse_DuplicateDeclaration(t *testing.T) {
	_, err := circuit.ParseLines("%a -> b", "&a -> c")
	require.ErrorIs(t, err, circuit.ErrDuplicateModule)
	require.Contains(t, err.Error(), `"a"`)

	_, err = circuit.ParseLines("broadcaster -> a", "broadcaster -> b")
	require.ErrorIs(t, err, circuit.ErrDuplicateModule)
}

// TestParse_ReaderError propagates scanner failures.
func TestParse_ReaderError(t *testing.T) {
	_, err := circuit.Parse(failingReader{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "read")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }
