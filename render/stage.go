// Package render draws planned grids onto an output surface: SVG for
// documents, JSON placement commands for other tools, or a colored table in
// the terminal.
package render

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/grid"
	"github.com/teranos/stackgrid/layout"
	"github.com/teranos/stackgrid/logger"
	"go.uber.org/zap"
)

// Scene is everything a surface draws in one render
type Scene struct {
	ID          string
	GeneratedAt time.Time
	Grids       []*grid.Grid
	StackCount  int
	Failures    []layout.Failure
}

// Surface draws a scene to a writer
type Surface interface {
	Name() string
	Draw(w io.Writer, scene Scene) error
}

// Surface names accepted by SurfaceFor
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatTerminal = "terminal"
)

// SurfaceFor returns the surface registered under name
func SurfaceFor(name string) (Surface, error) {
	switch strings.ToLower(name) {
	case FormatSVG:
		return SVG{}, nil
	case FormatJSON:
		return JSON{}, nil
	case FormatTerminal:
		return Terminal{}, nil
	}
	return nil, errors.WithHint(
		errors.Wrapf(errors.ErrUnsupportedFormat, "output format %q", name),
		"supported: svg, json, terminal")
}

// Stage collects grids for one render pass
type Stage struct {
	grids    []*grid.Grid
	stacks   int
	failures []layout.Failure

	logger *zap.SugaredLogger
	now    func() time.Time
	newID  func() string
}

// NewStage returns an empty stage
func NewStage() *Stage {
	return &Stage{
		logger: logger.ComponentLogger("render"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Add appends a grid to the stage
func (s *Stage) Add(g *grid.Grid) {
	s.grids = append(s.grids, g)
}

// Record notes the stack count and failures of a planned layout so surfaces
// can report them
func (s *Stage) Record(res *layout.Result) {
	s.stacks += res.Count
	s.failures = append(s.failures, res.Failures...)
}

// Render draws every grid onto surface
func (s *Stage) Render(w io.Writer, surface Surface) error {
	if surface == nil {
		return errors.New("no render surface")
	}
	start := s.now()
	scene := Scene{
		ID:          s.newID(),
		GeneratedAt: start.UTC(),
		Grids:       s.grids,
		StackCount:  s.stacks,
		Failures:    s.failures,
	}

	if err := surface.Draw(w, scene); err != nil {
		return errors.Wrapf(err, "failed to render %s", surface.Name())
	}

	s.logger.Debugw("Rendered stage",
		logger.FieldRenderID, scene.ID,
		logger.FieldFormat, surface.Name(),
		logger.FieldCount, len(s.grids),
		logger.FieldDurationMS, s.now().Sub(start).Milliseconds())
	return nil
}
