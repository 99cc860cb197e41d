// Package render styles pulsim's terminal output: trace lines, module
// tables, and result summaries.
//
// Styles carry semantic names (one per pulse level, one per module
// kind) and collapse to plain text when color is disabled, either
// explicitly, through NO_COLOR, or because stdout is not a terminal.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/pulsim/circuit"
)

// Renderer writes styled circuit output to one destination.
type Renderer struct {
	w       io.Writer
	noColor bool

	low   lipgloss.Style
	high  lipgloss.Style
	name  map[circuit.Kind]lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
}

// New builds a Renderer over w. Color is dropped when noColor is set or
// the NO_COLOR convention asks for it; lipgloss itself degrades styles
// when w is not a terminal.
func New(w io.Writer, noColor bool) *Renderer {
	if os.Getenv("NO_COLOR") != "" {
		noColor = true
	}
	r := &Renderer{w: w, noColor: noColor}
	if noColor {
		plain := lipgloss.NewStyle()
		r.low, r.high, r.label, r.value = plain, plain, plain, plain
		r.name = map[circuit.Kind]lipgloss.Style{}
		return r
	}
	r.low = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	r.high = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "166", Dark: "214"}).Bold(true)
	r.label = lipgloss.NewStyle().Faint(true)
	r.value = lipgloss.NewStyle().Bold(true)
	r.name = map[circuit.Kind]lipgloss.Style{
		circuit.KindBroadcast:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"}),
		circuit.KindFlipFlop:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "77"}),
		circuit.KindConjunction: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "127", Dark: "213"}),
		circuit.KindSink:        lipgloss.NewStyle().Faint(true),
	}
	return r
}

// levelStyle picks the style for one pulse level.
func (r *Renderer) levelStyle(l circuit.Level) lipgloss.Style {
	if l == circuit.High {
		return r.high
	}
	return r.low
}

// moduleName styles a module name by its kind.
func (r *Renderer) moduleName(c *circuit.Circuit, id circuit.ModuleID) string {
	n := c.Name(id)
	if r.noColor {
		return n
	}
	if s, ok := r.name[c.KindOf(id)]; ok {
		return s.Render(n)
	}
	return n
}

// Pulse prints one delivered pulse as "source -level-> dest".
func (r *Renderer) Pulse(c *circuit.Circuit, p circuit.Pulse) {
	fmt.Fprintf(r.w, "%s -%s-> %s\n",
		r.moduleName(c, p.Source),
		r.levelStyle(p.Level).Render(p.Level.String()),
		r.moduleName(c, p.Dest))
}

// PulseFn adapts Pulse into an observer callback over a fixed circuit.
func (r *Renderer) PulseFn(c *circuit.Circuit) func(circuit.Pulse) {
	return func(p circuit.Pulse) { r.Pulse(c, p) }
}

// Module prints one module's diagnostic line with its name styled.
func (r *Renderer) Module(c *circuit.Circuit, id circuit.ModuleID) {
	fmt.Fprintln(r.w, c.ModuleString(id))
}

// Table prints every module of the circuit, one diagnostic line each,
// in interning order (button and broadcaster first).
func (r *Renderer) Table(c *circuit.Circuit) {
	for id := 0; id < c.Size(); id++ {
		r.Module(c, circuit.ModuleID(id))
	}
}

// Stats prints the circuit summary counters.
func (r *Renderer) Stats(s circuit.Stats) {
	r.KV("modules", fmt.Sprint(s.Modules))
	r.KV("broadcasts", fmt.Sprint(s.Broadcasts))
	r.KV("flip-flops", fmt.Sprint(s.FlipFlops))
	r.KV("conjunctions", fmt.Sprint(s.Conjunctions))
	r.KV("sinks", fmt.Sprint(s.Sinks))
	r.KV("wires", fmt.Sprint(s.Wires))
}

// KV prints one "label: value" result line.
func (r *Renderer) KV(label, value string) {
	fmt.Fprintf(r.w, "%s %s\n", r.label.Render(label+":"), r.value.Render(value))
}
