// Package grid holds the drawing primitives a layout is written into: a grid
// of fixed-size cells addressed by column and row, and text boxes placed at
// integer or half-integer cell positions.
package grid

import (
	"fmt"

	"github.com/teranos/stackgrid/errors"
)

// Point is a pixel offset
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height. For Dimensions, XSize counts columns and
// YSize counts rows.
type Size struct {
	XSize float64 `json:"x_size"`
	YSize float64 `json:"y_size"`
}

// Config places and sizes a grid
type Config struct {
	Location   Point `json:"grid_location"`
	CellSize   Size  `json:"cell_size"`
	Dimensions Size  `json:"grid_dimensions"`
}

// Validate checks that every size is positive
func (c Config) Validate() error {
	if c.CellSize.XSize <= 0 || c.CellSize.YSize <= 0 {
		return errors.NewInvalidRequestError("cell size must be positive, got %vx%v", c.CellSize.XSize, c.CellSize.YSize)
	}
	if c.Dimensions.XSize < 1 || c.Dimensions.YSize < 1 {
		return errors.NewInvalidRequestError("grid needs at least one column and one row, got %vx%v", c.Dimensions.XSize, c.Dimensions.YSize)
	}
	return nil
}

// Position is a cell coordinate. Half-integer values sit between cells.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// TextBox is a label drawn in one cell, optionally on a filled rounded
// rectangle.
type TextBox struct {
	Text         string `json:"text"`
	FontSize     int    `json:"font_size,omitempty"`
	FontWeight   string `json:"font_weight,omitempty"`
	Fill         string `json:"fill,omitempty"`
	Color        string `json:"color,omitempty"`
	Padding      int    `json:"padding,omitempty"`
	BorderRadius int    `json:"border_radius,omitempty"`
}

// Placement is a text box at a position
type Placement struct {
	Position Position `json:"position"`
	Box      TextBox  `json:"box"`
}

// Grid collects placements in insertion order
type Grid struct {
	config     Config
	placements []Placement
}

// New returns an empty grid
func New(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid grid config")
	}
	return &Grid{config: cfg}, nil
}

// Config returns the grid's configuration
func (g *Grid) Config() Config {
	return g.config
}

// Add places box at pos. Positions outside [0, columns) x [0, rows) are
// rejected with ErrOutOfBounds.
func (g *Grid) Add(pos Position, box TextBox) error {
	if err := g.config.Contains(pos); err != nil {
		return err
	}
	g.placements = append(g.placements, Placement{Position: pos, Box: box})
	return nil
}

// Contains returns ErrOutOfBounds when pos falls outside the grid
func (c Config) Contains(pos Position) error {
	if pos.X < 0 || pos.X >= c.Dimensions.XSize {
		return errors.NewOutOfBoundsError("column %g outside grid of %g columns", pos.X, c.Dimensions.XSize)
	}
	if pos.Y < 0 || pos.Y >= c.Dimensions.YSize {
		return errors.NewOutOfBoundsError("row %g outside grid of %g rows", pos.Y, c.Dimensions.YSize)
	}
	return nil
}

// Placements returns every placement in the order it was added
func (g *Grid) Placements() []Placement {
	out := make([]Placement, len(g.placements))
	copy(out, g.placements)
	return out
}

// Len is the number of placements
func (g *Grid) Len() int {
	return len(g.placements)
}

// Bounds returns the pixel rectangle of the cell at pos
func (c Config) Bounds(pos Position) (x, y, w, h float64) {
	w = c.CellSize.XSize
	h = c.CellSize.YSize
	x = c.Location.X + pos.X*w
	y = c.Location.Y + pos.Y*h
	return x, y, w, h
}

// Bounds returns the pixel rectangle of the cell at pos
func (g *Grid) Bounds(pos Position) (x, y, w, h float64) {
	return g.config.Bounds(pos)
}

// Extent is the pixel size of the canvas needed to hold the grid,
// including its offset from the origin on both sides.
func (c Config) Extent() (w, h float64) {
	w = 2*c.Location.X + c.Dimensions.XSize*c.CellSize.XSize
	h = 2*c.Location.Y + c.Dimensions.YSize*c.CellSize.YSize
	return w, h
}
