// Package layout turns resolved technology stacks into grid placements.
//
// Each stack owns a block of BlockRows rows starting at index*BlockRows:
//
//	row 0    Stack N
//	row 1    Component | Technology | Qualities
//	row 2    Frontend  | <frontend> | frontend-backend qualities...
//	row 3    Backend   | <backend>
//	row 3.5                         | backend-database qualities...
//	row 4    Database  | <database>
//	row 5    ORM       | <orm>      | database-ORM qualities...  (only with an ORM)
//	row 6    Authentication | <auth> | auth qualities...          (only with auth)
//	row 7.5  Overall Qualities
//	row 8.5  overall qualities from column 0...
//
// Planning is pure: Plan returns placements and failures and draws nothing.
// A stack that fails keeps its title and header rows and gets a single red
// error cell on its component row; other stacks are unaffected.
package layout

import (
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/extract"
	"github.com/teranos/stackgrid/grid"
	"github.com/teranos/stackgrid/instance"
	"github.com/teranos/stackgrid/palette"
	"go.uber.org/zap"
)

// BlockRows is the height of one stack block in row units
const BlockRows = 10

// Row offsets within a block
const (
	RowTitle         = 0.0
	RowHeader        = 1.0
	RowFrontend      = 2.0
	RowBackend       = 3.0
	RowBackendDB     = 3.5
	RowDatabase      = 4.0
	RowORM           = 5.0
	RowAuth          = 6.0
	RowOverallHeader = 7.5
	RowOverall       = 8.5

	// RowError is where a failed stack's error cell goes
	RowError = RowFrontend
)

// QualityColumn is the first column of pair quality badges
const QualityColumn = 2

// Text styles
const (
	TitleFontSize       = 18
	PairQualityFontSize = 12
	OverallFontSize     = 14
	TechPadding         = 4
	PairQualityPadding  = 2
	OverallPadding      = 4
	BadgeRadius         = 4
	FontWeightBold      = "bold"
)

// Fixed cell labels
const (
	HeaderComponent       = "Component"
	HeaderTechnology      = "Technology"
	HeaderQualities       = "Qualities"
	LabelFrontend         = "Frontend"
	LabelBackend          = "Backend"
	LabelDatabase         = "Database"
	LabelORM              = "ORM"
	LabelAuth             = "Authentication"
	LabelOverallQualities = "Overall Qualities"
)

// Context carries everything a layout pass needs
type Context struct {
	Grid    grid.Config
	Palette *palette.Palette
	Logger  *zap.SugaredLogger
	// Trace logs every committed placement at debug level (-vvv)
	Trace bool
}

// Reader resolves a stack atom to display names. *extract.Resolver
// satisfies it.
type Reader interface {
	ReadStack(atom instance.Atom) (extract.Stack, error)
}

// Failure records a stack whose block was replaced by an error cell
type Failure struct {
	Index   int    `json:"index"`
	Stack   string `json:"stack"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Result is the outcome of planning every stack
type Result struct {
	Config     grid.Config      `json:"grid"`
	Count      int              `json:"stack_count"`
	Stacks     []extract.Stack  `json:"-"`
	Placements []grid.Placement `json:"placements"`
	Failures   []Failure        `json:"failures,omitempty"`
}

// GridConfigFor sizes a grid for stackCount stacks. A zero stack count still
// yields one block so the grid is valid.
func GridConfigFor(cfg am.GridConfig, stackCount int) grid.Config {
	if stackCount < 1 {
		stackCount = 1
	}
	columns := cfg.Columns
	if columns <= 0 {
		columns = am.DefaultColumns
	}
	return grid.Config{
		Location: grid.Point{X: float64(cfg.LocationX), Y: float64(cfg.LocationY)},
		CellSize: grid.Size{XSize: float64(cfg.CellWidth), YSize: float64(cfg.CellHeight)},
		Dimensions: grid.Size{
			XSize: float64(columns),
			YSize: float64(stackCount * BlockRows),
		},
	}
}

// Apply places planned commands onto g in order
func Apply(g *grid.Grid, res *Result) error {
	for _, p := range res.Placements {
		if err := g.Add(p.Position, p.Box); err != nil {
			return err
		}
	}
	return nil
}
