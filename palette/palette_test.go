package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teranos/stackgrid/errors"
)

func TestTechColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ReactJS", "#61DAFB"},
		{"ClerkAuth", "#6C47FF"},
		{"Postgres", "#336791"},
		{"NodeBackend", "#339933"},
		{"UnknownTech", Fallback},
		{"none", Fallback},
		{"", Fallback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TechColor(tt.name), tt.name)
	}
}

func TestQualityColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Security", "#f39c12"},
		{"Speed", "#e74c3c"},
		{"Pedagogy", "#d35400"},
		{"Unknown", Fallback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QualityColor(tt.name), tt.name)
	}
}

func TestFallbackIsGray(t *testing.T) {
	assert.Equal(t, "#888888", Fallback)
}

func TestNew_Overrides(t *testing.T) {
	p := New(
		map[string]string{"reactjs": "#000001", "htmx": "#3366cc"},
		map[string]string{"SPEED": "#000002"},
	)

	// Lowercased override keys replace the canonical entry
	assert.Equal(t, "#000001", p.TechColor("ReactJS"))
	// New names are found regardless of the caller's casing
	assert.Equal(t, "#3366cc", p.TechColor("HTMX"))
	assert.Equal(t, "#000002", p.QualityColor("Speed"))
	// Untouched entries keep defaults
	assert.Equal(t, "#336791", p.TechColor("Postgres"))

	// The default palette is not mutated by overrides
	assert.Equal(t, "#61DAFB", TechColor("ReactJS"))
	assert.Equal(t, "#e74c3c", Default().QualityColor("Speed"))
}

func TestValidColor(t *testing.T) {
	assert.NoError(t, ValidColor("#61DAFB"))
	assert.NoError(t, ValidColor("#fff"))

	for _, bad := range []string{"", "white", "#12", "61DAFB", "#GGGGGG"} {
		err := ValidColor(bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.IsInvalidRequestError(err), bad)
	}
}

func TestRGB(t *testing.T) {
	r, g, b := RGB("#61DAFB")
	assert.Equal(t, [3]uint8{0x61, 0xDA, 0xFB}, [3]uint8{r, g, b})

	r, g, b = RGB("white")
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	r, g, b = RGB("red")
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})

	r, g, b = RGB("not-a-color")
	assert.Equal(t, [3]uint8{0x88, 0x88, 0x88}, [3]uint8{r, g, b})
}
