// Package sym defines the glyphs stackgrid prints next to its commands and
// log lines. They are stable across CLI help, logs and rendered output.
package sym

// Command glyphs.
const (
	AM     = "≡" // am: configuration
	Render = "▦" // render: draw the grid
	Stacks = "☰" // stacks: list resolved stacks
	Watch  = "◉" // watch: re-render on change
)

// Marker glyphs used inside output.
const (
	None  = "∅" // absent field
	Error = "✗" // failed stack or field
	OK    = "✓"
)

// CommandToSymbol maps each command name to its glyph.
var CommandToSymbol = map[string]string{
	"am":     AM,
	"render": Render,
	"stacks": Stacks,
	"watch":  Watch,
}

// CommandDescriptions gives the one-line purpose of each command.
var CommandDescriptions = map[string]string{
	"am":     "Show and validate configuration",
	"render": "Render technology stacks as a grid",
	"stacks": "List technology stacks resolved from an instance",
	"watch":  "Re-render whenever the instance file changes",
}

// Prefixed returns "<glyph> <text>" for a command, or text unchanged when
// the command has no glyph.
func Prefixed(command, text string) string {
	if glyph, ok := CommandToSymbol[command]; ok {
		return glyph + " " + text
	}
	return text
}
