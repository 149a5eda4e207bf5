package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/teranos/stackgrid/grid"
)

// Defaults for boxes that leave a style unset
const (
	DefaultFontSize  = 14
	DefaultTextColor = "black"
	FontFamily       = "sans-serif"
	Background       = "white"

	// badgeInset keeps adjacent filled cells visually apart
	badgeInset = 2
)

// SVG draws grids as an SVG document sized to hold every grid
type SVG struct{}

// Name implements Surface
func (SVG) Name() string { return FormatSVG }

// Draw implements Surface
func (SVG) Draw(w io.Writer, scene Scene) error {
	width, height := 0.0, 0.0
	for _, g := range scene.Grids {
		gw, gh := g.Config().Extent()
		width = math.Max(width, gw)
		height = math.Max(height, gh)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(px(width), px(height))
	canvas.Rect(0, 0, px(width), px(height), "fill:"+Background)
	for _, g := range scene.Grids {
		for _, p := range g.Placements() {
			drawBox(canvas, g, p)
		}
	}
	canvas.End()
	return ew.err
}

func drawBox(canvas *svg.SVG, g *grid.Grid, p grid.Placement) {
	x, y, w, h := g.Bounds(p.Position)
	box := p.Box

	if box.Fill != "" {
		canvas.Roundrect(
			px(x+badgeInset), px(y+badgeInset),
			px(w-2*badgeInset), px(h-2*badgeInset),
			box.BorderRadius, box.BorderRadius,
			"fill:"+box.Fill)
	}

	canvas.Text(px(x+w/2), px(y+h/2), box.Text, textStyle(box))
}

func textStyle(box grid.TextBox) string {
	size := box.FontSize
	if size == 0 {
		size = DefaultFontSize
	}
	color := box.Color
	if color == "" {
		color = DefaultTextColor
	}

	parts := []string{
		"text-anchor:middle",
		"dominant-baseline:central",
		"font-family:" + FontFamily,
		fmt.Sprintf("font-size:%dpx", size),
		"fill:" + color,
	}
	if box.FontWeight != "" {
		parts = append(parts, "font-weight:"+box.FontWeight)
	}
	return strings.Join(parts, ";")
}

func px(v float64) int {
	return int(math.Round(v))
}

// errWriter keeps the first write error; svgo does not report them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
