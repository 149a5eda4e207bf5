package sym

import (
	"testing"
	"unicode/utf8"
)

func TestCommandGlyphsAreDistinct(t *testing.T) {
	seen := map[string]string{}
	for cmd, glyph := range CommandToSymbol {
		if other, ok := seen[glyph]; ok {
			t.Errorf("commands %q and %q share glyph %q", cmd, other, glyph)
		}
		seen[glyph] = cmd
	}
}

func TestCommandDescriptionsCoversAllCommands(t *testing.T) {
	for cmd := range CommandToSymbol {
		if CommandDescriptions[cmd] == "" {
			t.Errorf("command %q has no description", cmd)
		}
	}
}

func TestGlyphsAreSingleRunes(t *testing.T) {
	for _, g := range []string{AM, Render, Stacks, Watch, None, Error, OK} {
		if utf8.RuneCountInString(g) != 1 {
			t.Errorf("glyph %q is %d runes", g, utf8.RuneCountInString(g))
		}
	}
}

func TestPrefixed(t *testing.T) {
	if got := Prefixed("render", "Render stacks"); got != "▦ Render stacks" {
		t.Errorf("Prefixed(render) = %q", got)
	}
	if got := Prefixed("version", "Show version"); got != "Show version" {
		t.Errorf("Prefixed(version) = %q", got)
	}
}
