package instance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/stackgrid/errors"
)

func TestLoadAlloyXML(t *testing.T) {
	inst, err := Load(filepath.Join("testdata", "stacks.xml"))
	require.NoError(t, err)

	assert.Equal(t, "run findStacks for 2 TechnologyStack", inst.Command)
	assert.Equal(t, 4, inst.Bitwidth)

	sig, err := inst.Signature("TechnologyStack")
	require.NoError(t, err)
	assert.False(t, sig.Builtin)
	assert.Equal(t, atoms("TechnologyStack0", "TechnologyStack1"), sig.Atoms())

	intSig, err := inst.Signature("Int")
	require.NoError(t, err)
	assert.True(t, intSig.Builtin)

	orm, err := inst.Field("orm")
	require.NoError(t, err)
	assert.Equal(t, "TechnologyStack", orm.Parent)

	rel, err := inst.Join(NewAtom("TechnologyStack0"), "overallQualities")
	require.NoError(t, err)
	assert.Equal(t, []string{"Quality/Security", "Quality/Speed"}, labels(rel))

	rel, err = inst.Join(NewAtom("TechnologyStack0"), "orm")
	require.NoError(t, err)
	assert.True(t, rel.Empty())
}

func TestAlloyXMLSubsignatureAtoms(t *testing.T) {
	inst, err := Load(filepath.Join("testdata", "stacks.xml"))
	require.NoError(t, err)

	component, err := inst.Signature("Component")
	require.NoError(t, err)
	got := make([]string, 0, len(component.Atoms()))
	for _, a := range component.Atoms() {
		got = append(got, a.String())
	}
	assert.Equal(t, []string{
		"TechStack/ReactJS", "TechStack/VueJS",
		"TechStack/NodeBackend", "TechStack/PythonBackend",
		"TechStack/Postgres", "TechStack/MongoDB",
		"TechStack/PrismaORM",
		"TechStack/ClerkAuth",
	}, got)
}

func TestAlloyXMLFirstInstanceWins(t *testing.T) {
	doc := `<alloy>
<instance command="first"><sig label="S" ID="1"><atom label="S0"/></sig></instance>
<instance command="second"><sig label="S" ID="1"><atom label="S1"/></sig></instance>
</alloy>`

	inst, err := ParseAlloyXML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "first", inst.Command)

	sig, err := inst.Signature("S")
	require.NoError(t, err)
	assert.Equal(t, atoms("S0"), sig.Atoms())
}

func TestAlloyXMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "<alloy><instance>"},
		{"no instance", "<alloy></alloy>"},
		{"wrong root", "<model><instance/></model>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAlloyXML(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidRequestError(err))
		})
	}
}

func TestFixturesMatch(t *testing.T) {
	for _, name := range []string{"stacks.yaml", "stacks.toml"} {
		t.Run(name, func(t *testing.T) {
			inst, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, "run findStacks", inst.Command)

			sig, err := inst.Signature("TechnologyStack")
			require.NoError(t, err)
			require.Len(t, sig.Atoms(), 1)

			rel, err := inst.Join(sig.Atoms()[0], "overallQualities")
			require.NoError(t, err)
			assert.Equal(t, []string{"Security", "Speed"}, labels(rel))

			rel, err = inst.Join(sig.Atoms()[0], "frontend")
			require.NoError(t, err)
			assert.Equal(t, []string{"ReactJS"}, labels(rel))
		})
	}
}

func TestFixtureErrors(t *testing.T) {
	tests := []struct {
		name  string
		ext   string
		input string
	}{
		{"yaml empty", ".yaml", ""},
		{"yaml unknown key", ".yaml", "sigs: []\n"},
		{"yaml nameless signature", ".yaml", "signatures:\n  - atoms: [a]\n"},
		{"yaml empty tuple", ".yml", "fields:\n  - name: f\n    tuples:\n      - []\n"},
		{"toml unknown key", ".toml", "colour = \"red\"\n"},
		{"toml nameless field", ".toml", "[[fields]]\nparent = \"S\"\n"},
		{"toml syntax", ".toml", "signatures = [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), tt.ext)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidRequestError(err), "got %v", err)
		})
	}
}

func TestParseSniffsXML(t *testing.T) {
	doc := "\n  <alloy><instance command=\"sniffed\"></instance></alloy>"

	inst, err := Parse(strings.NewReader(doc), "")
	require.NoError(t, err)
	assert.Equal(t, "sniffed", inst.Command)

	_, err = Parse(strings.NewReader("frontend = 1"), ".txt")
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoadWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.True(t, errors.IsInvalidRequestError(err))
}
