package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/extract"
	"github.com/teranos/stackgrid/grid"
	"github.com/teranos/stackgrid/instance"
	sgtest "github.com/teranos/stackgrid/internal/testing"
	"github.com/teranos/stackgrid/palette"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func defaultGrid() am.GridConfig {
	return am.GridConfig{
		LocationX:  am.DefaultLocation,
		LocationY:  am.DefaultLocation,
		CellWidth:  am.DefaultCellWidth,
		CellHeight: am.DefaultCellHeight,
		Columns:    am.DefaultColumns,
	}
}

func testContext(t *testing.T, stacks int) (Context, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return Context{
		Grid:    GridConfigFor(defaultGrid(), stacks),
		Palette: palette.Default(),
		Logger:  zap.New(core).Sugar(),
	}, logs
}

func atomsOf(t *testing.T, inst *instance.Instance) []instance.Atom {
	t.Helper()
	sig, err := inst.Signature(sgtest.StackSignature)
	require.NoError(t, err)
	return sig.Atoms()
}

// cell is a compact view of a placement for assertions
type cell struct {
	X, Y float64
	Text string
	Fill string
}

func cells(ps []grid.Placement) []cell {
	out := make([]cell, len(ps))
	for n, p := range ps {
		out[n] = cell{p.Position.X, p.Position.Y, p.Box.Text, p.Box.Fill}
	}
	return out
}

func resolver(src extract.Source, strict bool) *extract.Resolver {
	return &extract.Resolver{Source: src, Logger: zap.NewNop().Sugar(), Strict: strict}
}

func TestGridConfigFor(t *testing.T) {
	cfg := GridConfigFor(defaultGrid(), 3)
	assert.Equal(t, grid.Point{X: 10, Y: 10}, cfg.Location)
	assert.Equal(t, grid.Size{XSize: 160, YSize: 40}, cfg.CellSize)
	assert.Equal(t, grid.Size{XSize: 7, YSize: 30}, cfg.Dimensions)

	empty := GridConfigFor(am.GridConfig{CellWidth: 1, CellHeight: 1}, 0)
	assert.Equal(t, grid.Size{XSize: am.DefaultColumns, YSize: BlockRows}, empty.Dimensions)
}

func TestPlanEndToEnd(t *testing.T) {
	inst := sgtest.BuildInstance(t, sgtest.Stack{
		Frontend:         "TechStack/ReactJS",
		Backend:          "TechStack/NodeBackend",
		Database:         "TechStack/Postgres",
		Auth:             "TechStack/ClerkAuth",
		OverallQualities: []string{"Quality/Security", "Quality/Speed"},
	})
	ctx, _ := testContext(t, 1)

	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))
	require.Empty(t, res.Failures)
	assert.Equal(t, 1, res.Count)

	assert.Equal(t, []cell{
		{0, 0, "Stack 1", ""},
		{0, 1, "Component", ""},
		{1, 1, "Technology", ""},
		{2, 1, "Qualities", ""},
		{0, 2, "Frontend", ""},
		{1, 2, "ReactJS", "#61DAFB"},
		{0, 3, "Backend", ""},
		{1, 3, "NodeBackend", "#339933"},
		{0, 4, "Database", ""},
		{1, 4, "Postgres", "#336791"},
		{0, 6, "Authentication", ""},
		{1, 6, "ClerkAuth", "#6C47FF"},
		{0, 7.5, "Overall Qualities", ""},
		{0, 8.5, "Security", "#f39c12"},
		{1, 8.5, "Speed", "#e74c3c"},
	}, cells(res.Placements))

	title := res.Placements[0].Box
	assert.Equal(t, TitleFontSize, title.FontSize)
	assert.Equal(t, FontWeightBold, title.FontWeight)

	tech := res.Placements[5].Box
	assert.Equal(t, palette.TextOnFill, tech.Color)
	assert.Equal(t, TechPadding, tech.Padding)
	assert.Equal(t, BadgeRadius, tech.BorderRadius)

	overall := res.Placements[13].Box
	assert.Equal(t, OverallFontSize, overall.FontSize)
	assert.Equal(t, OverallPadding, overall.Padding)
}

func TestPlanQualityRows(t *testing.T) {
	inst := sgtest.BuildInstance(t, sgtest.Stack{
		Frontend:                 "VueJS",
		Backend:                  "GoBackend",
		Database:                 "Redis",
		ORM:                      "DrizzleORM",
		FrontendBackendQualities: []string{"Speed", "DevExperience"},
		BackendDatabaseQualities: []string{"Scalability"},
		DatabaseORMQualities:     []string{"Maintainability"},
		AuthQualities:            []string{"Security"},
	})
	ctx, _ := testContext(t, 1)

	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))
	require.Empty(t, res.Failures)

	got := cells(res.Placements)
	assert.Contains(t, got, cell{2, 2, "Speed", "#e74c3c"})
	assert.Contains(t, got, cell{3, 2, "DevExperience", "#1abc9c"})
	assert.Contains(t, got, cell{2, 3.5, "Scalability", "#3498db"})
	assert.Contains(t, got, cell{0, 5, "ORM", ""})
	assert.Contains(t, got, cell{1, 5, "DrizzleORM", "#8E44AD"})
	assert.Contains(t, got, cell{2, 5, "Maintainability", "#9b59b6"})

	// No auth: neither the auth row nor its qualities appear
	for _, c := range got {
		assert.NotEqual(t, 6.0, c.Y, "unexpected auth row cell %q", c.Text)
	}

	for _, p := range res.Placements {
		if p.Position.Y == 2 && p.Position.X >= QualityColumn {
			assert.Equal(t, PairQualityFontSize, p.Box.FontSize)
			assert.Equal(t, PairQualityPadding, p.Box.Padding)
		}
	}
}

func TestPlanMissingComponentsRenderNone(t *testing.T) {
	inst := sgtest.BuildInstance(t, sgtest.Stack{})
	ctx, _ := testContext(t, 1)

	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))
	require.Empty(t, res.Failures)

	got := cells(res.Placements)
	assert.Contains(t, got, cell{1, 2, extract.None, palette.Fallback})
	assert.Contains(t, got, cell{1, 3, extract.None, palette.Fallback})
	assert.Contains(t, got, cell{1, 4, extract.None, palette.Fallback})
	assert.Len(t, got, 4+6+1)
}

func TestPlanBlankORMNameSkipsRow(t *testing.T) {
	inst := sgtest.BuildInstance(t, sgtest.Stack{Frontend: "TechStack/ReactJS", ORM: "TechStack/"})
	ctx, _ := testContext(t, 1)

	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))
	require.Empty(t, res.Failures)

	for _, c := range cells(res.Placements) {
		assert.NotEqual(t, float64(RowORM), c.Y, "unexpected ORM row cell %+v", c)
	}
	assert.Len(t, res.Placements, 4+6+1)
}

func TestPlanBlocksOffsetByIndex(t *testing.T) {
	inst := sgtest.BuildInstance(t,
		sgtest.Stack{Frontend: "ReactJS"},
		sgtest.Stack{Frontend: "Angular", OverallQualities: []string{"Pedagogy"}},
	)
	ctx, _ := testContext(t, 2)

	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))
	require.Empty(t, res.Failures)
	require.Len(t, res.Stacks, 2)

	got := cells(res.Placements)
	assert.Contains(t, got, cell{0, 10, "Stack 2", ""})
	assert.Contains(t, got, cell{1, 12, "Angular", "#DD0031"})
	assert.Contains(t, got, cell{0, 18.5, "Pedagogy", "#d35400"})
}

// failOn returns an error or panics for one stack atom
type failOn struct {
	inner  Reader
	atom   string
	panics bool
}

func (f failOn) ReadStack(atom instance.Atom) (extract.Stack, error) {
	if atom.String() == f.atom {
		if f.panics {
			panic("reader blew up")
		}
		return extract.Stack{}, errors.New("backend join failed")
	}
	return f.inner.ReadStack(atom)
}

func TestPlanIsolatesFailedStack(t *testing.T) {
	stack := sgtest.Stack{Frontend: "ReactJS", Backend: "NodeBackend", Database: "Postgres"}
	inst := sgtest.BuildInstance(t, stack, stack, stack)

	tests := []struct {
		name    string
		panics  bool
		message string
	}{
		{"error", false, "Error: backend join failed"},
		{"panic", true, "Error: reader blew up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, logs := testContext(t, 3)
			reader := failOn{inner: resolver(inst, false), atom: "TechnologyStack1", panics: tt.panics}

			res := Plan(ctx, atomsOf(t, inst), reader)

			require.Len(t, res.Failures, 1)
			assert.Equal(t, 1, res.Failures[0].Index)
			assert.Equal(t, "TechnologyStack1", res.Failures[0].Stack)

			var failed []grid.Placement
			for _, p := range res.Placements {
				if p.Position.Y >= 10 && p.Position.Y < 20 {
					failed = append(failed, p)
				}
			}
			require.Len(t, failed, 5, "title, three headers and the error cell")
			assert.Equal(t, "Stack 2", failed[0].Box.Text)
			errCell := failed[4]
			assert.Equal(t, grid.Position{X: 0, Y: 12}, errCell.Position)
			assert.Equal(t, tt.message, errCell.Box.Text)
			assert.Equal(t, palette.ErrorText, errCell.Box.Color)
			assert.Empty(t, errCell.Box.Fill)

			got := cells(res.Placements)
			assert.Contains(t, got, cell{1, 2, "ReactJS", "#61DAFB"})
			assert.Contains(t, got, cell{1, 22, "ReactJS", "#61DAFB"})
			assert.Len(t, res.Stacks, 2)

			errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
			require.Len(t, errs, 1)
			assert.Equal(t, "TechnologyStack1", errs[0].ContextMap()["stack"])
		})
	}
}

func TestPlanTracePlacements(t *testing.T) {
	inst := sgtest.BuildInstance(t, sgtest.Stack{Frontend: "ReactJS"})

	quiet, quietLogs := testContext(t, 1)
	Plan(quiet, atomsOf(t, inst), resolver(inst, false))
	assert.Zero(t, quietLogs.FilterMessage("Placed cell").Len())

	traced, logs := testContext(t, 1)
	traced.Trace = true
	res := Plan(traced, atomsOf(t, inst), resolver(inst, false))

	placed := logs.FilterMessage("Placed cell").All()
	require.Len(t, placed, len(res.Placements))

	var found bool
	for _, entry := range placed {
		fields := entry.ContextMap()
		assert.Equal(t, "TechnologyStack0", fields["stack"])
		if fields["position"] == "(1, 2)" && fields["text"] == "ReactJS" {
			found = true
		}
	}
	assert.True(t, found, "frontend badge not traced")
}

func TestPlanOutOfBoundsDiscardsBlock(t *testing.T) {
	inst := sgtest.BuildInstance(t,
		sgtest.Stack{Frontend: "ReactJS", FrontendBackendQualities: []string{"Speed", "Security"}},
		sgtest.Stack{Frontend: "VueJS", FrontendBackendQualities: []string{"Speed"}},
	)
	ctx, _ := testContext(t, 2)
	ctx.Grid.Dimensions.XSize = 3

	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))

	require.Len(t, res.Failures, 1)
	assert.Equal(t, 0, res.Failures[0].Index)
	assert.True(t, errors.Is(res.Failures[0].Err, errors.ErrOutOfBounds))

	got := cells(res.Placements)
	assert.NotContains(t, got, cell{1, 2, "ReactJS", "#61DAFB"}, "partial rows must be discarded")
	assert.NotContains(t, got, cell{2, 2, "Speed", "#e74c3c"})
	assert.Contains(t, got, cell{1, 12, "VueJS", "#4FC08D"})
	assert.Contains(t, got, cell{2, 12, "Speed", "#e74c3c"})
}

func TestPlanStrictFieldFailure(t *testing.T) {
	inst := instance.New()
	inst.AddSignature("TechnologyStack", false, instance.NewAtom("TechnologyStack0"))
	ctx, _ := testContext(t, 1)

	lenient := Plan(ctx, atomsOf(t, inst), resolver(inst, false))
	assert.Empty(t, lenient.Failures)

	strict := Plan(ctx, atomsOf(t, inst), resolver(inst, true))
	require.Len(t, strict.Failures, 1)
	assert.True(t, errors.IsNotFoundError(strict.Failures[0].Err))
}

func TestPlanPaletteOverrides(t *testing.T) {
	inst := sgtest.BuildInstance(t, sgtest.Stack{Frontend: "ReactJS"})
	ctx, _ := testContext(t, 1)
	ctx.Palette = palette.New(map[string]string{"reactjs": "#123456"}, nil)

	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))
	assert.Contains(t, cells(res.Placements), cell{1, 2, "ReactJS", "#123456"})
}

func TestApply(t *testing.T) {
	inst := sgtest.BuildInstance(t, sgtest.Stack{Frontend: "ReactJS"})
	ctx, _ := testContext(t, 1)
	res := Plan(ctx, atomsOf(t, inst), resolver(inst, false))

	g, err := grid.New(ctx.Grid)
	require.NoError(t, err)
	require.NoError(t, Apply(g, res))
	assert.Equal(t, res.Placements, g.Placements())

	small := ctx.Grid
	small.Dimensions.YSize = 2
	g, err = grid.New(small)
	require.NoError(t, err)
	assert.True(t, errors.Is(Apply(g, res), errors.ErrOutOfBounds))
}
