package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"
	"github.com/teranos/stackgrid/grid"
	"github.com/teranos/stackgrid/layout"
	"github.com/teranos/stackgrid/palette"
)

// Terminal prints each stack block as a section with a colored table
type Terminal struct{}

// Name implements Surface
func (Terminal) Name() string { return FormatTerminal }

// Draw implements Surface
func (Terminal) Draw(w io.Writer, scene Scene) error {
	for _, g := range scene.Grids {
		if err := drawGridTable(w, g); err != nil {
			return err
		}
	}
	if len(scene.Failures) > 0 {
		if _, err := fmt.Fprintln(w, pterm.Red(fmt.Sprintf("%d stack(s) failed to render", len(scene.Failures)))); err != nil {
			return err
		}
	}
	return nil
}

// terminalBlock is one stack's rows keyed by row position
type terminalBlock struct {
	title string
	rows  map[float64][]grid.Placement
}

func drawGridTable(w io.Writer, g *grid.Grid) error {
	columns := int(g.Config().Dimensions.XSize)

	blocks := make(map[int]*terminalBlock)
	var order []int
	for _, p := range g.Placements() {
		idx := int(p.Position.Y) / layout.BlockRows
		b, ok := blocks[idx]
		if !ok {
			b = &terminalBlock{rows: make(map[float64][]grid.Placement)}
			blocks[idx] = b
			order = append(order, idx)
		}
		if p.Position.Y == float64(idx*layout.BlockRows)+layout.RowTitle && p.Position.X == 0 {
			b.title = p.Box.Text
			continue
		}
		b.rows[p.Position.Y] = append(b.rows[p.Position.Y], p)
	}
	sort.Ints(order)

	for _, idx := range order {
		b := blocks[idx]
		if _, err := fmt.Fprint(w, pterm.DefaultSection.Sprint(b.title)); err != nil {
			return err
		}

		ys := make([]float64, 0, len(b.rows))
		for y := range b.rows {
			ys = append(ys, y)
		}
		sort.Float64s(ys)

		data := make(pterm.TableData, 0, len(ys))
		for _, y := range ys {
			row := make([]string, columns)
			for _, p := range b.rows[y] {
				col := int(p.Position.X)
				if col >= 0 && col < columns {
					row[col] = styleCell(p.Box)
				}
			}
			data = append(data, row)
		}

		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, table); err != nil {
			return err
		}
	}
	return nil
}

func styleCell(box grid.TextBox) string {
	text := " " + box.Text + " "
	switch {
	case box.Fill != "":
		fr, fg, fb := palette.RGB(box.Color)
		br, bg, bb := palette.RGB(box.Fill)
		text = pterm.NewRGBStyle(pterm.NewRGB(fr, fg, fb), pterm.NewRGB(br, bg, bb)).Sprint(text)
	case box.Color != "":
		r, g, b := palette.RGB(box.Color)
		text = pterm.NewRGB(r, g, b).Sprint(text)
	}
	if box.FontWeight == layout.FontWeightBold {
		text = pterm.Bold.Sprint(text)
	}
	return text
}
