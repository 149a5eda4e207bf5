package layout

import (
	"fmt"
	"time"

	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/extract"
	"github.com/teranos/stackgrid/grid"
	"github.com/teranos/stackgrid/instance"
	"github.com/teranos/stackgrid/logger"
	"github.com/teranos/stackgrid/palette"
)

// Plan lays out every stack in index order.
func Plan(ctx Context, stacks []instance.Atom, reader Reader) *Result {
	start := time.Now()
	log := ctx.Logger
	if log == nil {
		log = logger.ComponentLogger("layout")
	}
	pal := ctx.Palette
	if pal == nil {
		pal = palette.Default()
	}

	res := &Result{Config: ctx.Grid, Count: len(stacks)}
	for idx, atom := range stacks {
		baseRow := float64(idx * BlockRows)
		stackLog := logger.ChildLogger(log, logger.FieldStack, atom.String(), logger.FieldStackIdx, idx)
		commit := func(b *block) {
			res.Placements = append(res.Placements, b.placements...)
			if ctx.Trace {
				for _, p := range b.placements {
					stackLog.Debugw("Placed cell",
						logger.FieldPosition, p.Position.String(),
						logger.FieldText, p.Box.Text)
				}
			}
		}

		header := &block{cfg: ctx.Grid}
		if err := addHeader(header, idx, baseRow); err != nil {
			// The grid cannot even hold this stack's header; record it and move on
			res.fail(idx, atom, err)
			stackLog.Errorw("Stack header outside grid", logger.FieldError, err.Error())
			continue
		}
		commit(header)

		s, body, err := buildStack(ctx.Grid, pal, atom, baseRow, reader)
		if err != nil {
			stackLog.Errorw("Error rendering stack", logger.FieldError, err.Error())
			res.fail(idx, atom, err)

			errCell := &block{cfg: ctx.Grid}
			if cellErr := errCell.add(grid.Position{X: 0, Y: baseRow + RowError}, ErrorBox(err)); cellErr == nil {
				commit(errCell)
			}
			continue
		}

		res.Stacks = append(res.Stacks, s)
		commit(body)
	}

	log.Debugw("Planned layout",
		logger.FieldCount, len(stacks),
		"placements", len(res.Placements),
		"failures", len(res.Failures),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res
}

// ErrorBox is the cell that replaces a failed stack's rows
func ErrorBox(err error) grid.TextBox {
	return grid.TextBox{
		Text:  fmt.Sprintf("Error: %s", err.Error()),
		Color: palette.ErrorText,
	}
}

func (r *Result) fail(idx int, atom instance.Atom, err error) {
	r.Failures = append(r.Failures, Failure{
		Index:   idx,
		Stack:   atom.String(),
		Message: err.Error(),
		Err:     err,
	})
}

// block buffers one stack's placements, checking bounds as it goes
type block struct {
	cfg        grid.Config
	placements []grid.Placement
}

func (b *block) add(pos grid.Position, box grid.TextBox) error {
	if err := b.cfg.Contains(pos); err != nil {
		return errors.Wrapf(err, "cannot place %q", box.Text)
	}
	b.placements = append(b.placements, grid.Placement{Position: pos, Box: box})
	return nil
}

func addHeader(b *block, idx int, baseRow float64) error {
	cells := []struct {
		pos grid.Position
		box grid.TextBox
	}{
		{grid.Position{X: 0, Y: baseRow + RowTitle}, grid.TextBox{
			Text:       fmt.Sprintf("Stack %d", idx+1),
			FontSize:   TitleFontSize,
			FontWeight: FontWeightBold,
		}},
		{grid.Position{X: 0, Y: baseRow + RowHeader}, grid.TextBox{Text: HeaderComponent}},
		{grid.Position{X: 1, Y: baseRow + RowHeader}, grid.TextBox{Text: HeaderTechnology}},
		{grid.Position{X: 2, Y: baseRow + RowHeader}, grid.TextBox{Text: HeaderQualities}},
	}
	for _, c := range cells {
		if err := b.add(c.pos, c.box); err != nil {
			return err
		}
	}
	return nil
}

// buildStack reads one stack and fills its block. Panics from the reader or
// the palette become errors so a single stack cannot abort the pass.
func buildStack(cfg grid.Config, pal *palette.Palette, atom instance.Atom, baseRow float64, reader Reader) (s extract.Stack, b *block, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf("%v", rec)
		}
	}()

	if reader == nil {
		return s, nil, errors.New("no stack reader")
	}
	s, err = reader.ReadStack(atom)
	if err != nil {
		return s, nil, err
	}

	b = &block{cfg: cfg}
	if err := fillStack(b, pal, s, baseRow); err != nil {
		return s, nil, err
	}
	return s, b, nil
}

func fillStack(b *block, pal *palette.Palette, s extract.Stack, baseRow float64) error {
	steps := []func() error{
		func() error { return b.component(pal, LabelFrontend, s.Frontend, baseRow+RowFrontend) },
		func() error {
			return b.pairQualities(pal, s.FrontendBackendQualities, baseRow+RowFrontend)
		},
		func() error { return b.component(pal, LabelBackend, s.Backend, baseRow+RowBackend) },
		func() error { return b.component(pal, LabelDatabase, s.Database, baseRow+RowDatabase) },
		func() error {
			return b.pairQualities(pal, s.BackendDatabaseQualities, baseRow+RowBackendDB)
		},
	}
	if s.HasORM() {
		steps = append(steps,
			func() error { return b.component(pal, LabelORM, s.ORM, baseRow+RowORM) },
			func() error { return b.pairQualities(pal, s.DatabaseORMQualities, baseRow+RowORM) },
		)
	}
	if s.HasAuth() {
		steps = append(steps,
			func() error { return b.component(pal, LabelAuth, s.Auth, baseRow+RowAuth) },
			func() error { return b.pairQualities(pal, s.AuthQualities, baseRow+RowAuth) },
		)
	}
	steps = append(steps,
		func() error {
			return b.add(grid.Position{X: 0, Y: baseRow + RowOverallHeader}, grid.TextBox{
				Text:       LabelOverallQualities,
				FontWeight: FontWeightBold,
			})
		},
		func() error { return b.overallQualities(pal, s.OverallQualities, baseRow+RowOverall) },
	)

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// component writes a label cell and a technology badge on row
func (b *block) component(pal *palette.Palette, label, name string, row float64) error {
	if err := b.add(grid.Position{X: 0, Y: row}, grid.TextBox{Text: label}); err != nil {
		return err
	}
	return b.add(grid.Position{X: 1, Y: row}, TechBox(pal, name))
}

func (b *block) pairQualities(pal *palette.Palette, qualities []string, row float64) error {
	for i, q := range qualities {
		box := grid.TextBox{
			Text:         q,
			FontSize:     PairQualityFontSize,
			Fill:         pal.QualityColor(q),
			Color:        palette.TextOnFill,
			Padding:      PairQualityPadding,
			BorderRadius: BadgeRadius,
		}
		if err := b.add(grid.Position{X: float64(QualityColumn + i), Y: row}, box); err != nil {
			return err
		}
	}
	return nil
}

func (b *block) overallQualities(pal *palette.Palette, qualities []string, row float64) error {
	for i, q := range qualities {
		box := grid.TextBox{
			Text:         q,
			FontSize:     OverallFontSize,
			Fill:         pal.QualityColor(q),
			Color:        palette.TextOnFill,
			Padding:      OverallPadding,
			BorderRadius: BadgeRadius,
		}
		if err := b.add(grid.Position{X: float64(i), Y: row}, box); err != nil {
			return err
		}
	}
	return nil
}

// TechBox is the filled badge for a technology name
func TechBox(pal *palette.Palette, name string) grid.TextBox {
	return grid.TextBox{
		Text:         name,
		Fill:         pal.TechColor(name),
		Color:        palette.TextOnFill,
		Padding:      TechPadding,
		BorderRadius: BadgeRadius,
	}
}
