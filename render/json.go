package render

import (
	"io"
	"time"

	"github.com/teranos/stackgrid/display"
	"github.com/teranos/stackgrid/grid"
	"github.com/teranos/stackgrid/layout"
	"github.com/teranos/stackgrid/version"
)

// JSON writes placement commands for consumption by other renderers
type JSON struct{}

// Document is the JSON surface's output
type Document struct {
	Meta  Meta           `json:"meta"`
	Grids []GridDocument `json:"grids"`
}

// Meta describes the render that produced a document
type Meta struct {
	RenderID    string           `json:"render_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Generator   string           `json:"generator"`
	StackCount  int              `json:"stack_count"`
	Failures    []layout.Failure `json:"failures"`
}

// GridDocument is one grid and its placements in insertion order
type GridDocument struct {
	Config     grid.Config      `json:"config"`
	Placements []grid.Placement `json:"placements"`
}

// Name implements Surface
func (JSON) Name() string { return FormatJSON }

// Draw implements Surface
func (JSON) Draw(w io.Writer, scene Scene) error {
	return display.WriteJSON(w, NewDocument(scene))
}

// NewDocument converts a scene to its JSON form. Failures and placements are
// never null.
func NewDocument(scene Scene) Document {
	doc := Document{
		Meta: Meta{
			RenderID:    scene.ID,
			GeneratedAt: scene.GeneratedAt,
			Generator:   version.Get().String(),
			StackCount:  scene.StackCount,
			Failures:    scene.Failures,
		},
		Grids: make([]GridDocument, 0, len(scene.Grids)),
	}
	if doc.Meta.Failures == nil {
		doc.Meta.Failures = []layout.Failure{}
	}
	for _, g := range scene.Grids {
		doc.Grids = append(doc.Grids, GridDocument{
			Config:     g.Config(),
			Placements: g.Placements(),
		})
	}
	return doc
}
