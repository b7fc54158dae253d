// Package layout places the seats of a single section on the manifest
// plane. Every engine is a pure function of its numeric inputs: the same
// plan and params always produce the same coordinates, which keeps
// regeneration diffable and tests reproducible.
package layout

import (
	"fmt"
	"math"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/geometry"
)

// DefaultArcSpan is the angular extent of a curved section when the
// request does not supply one.
const DefaultArcSpan = math.Pi / 2

// SectionPlan describes one section to be laid out. The generator
// resolves capacity derivation and naming before handing the plan over,
// so engines only see concrete numbers.
type SectionPlan struct {
	Index       int
	Name        string
	Shape       domain.SectionShape
	Rows        int
	SeatsPerRow int
	RowConfig   []domain.RowSpec
	Capacity    int
}

// Params carries the placement parameters shared across a generation run.
// OffsetX/OffsetY position the section so neighbouring sections never
// overlap; the generator computes them before invoking the engine.
type Params struct {
	SeatSpacing float64
	RowSpacing  float64
	CenterX     float64
	CenterY     float64
	BaseRadius  float64
	TotalRows   int
	ArcSpan     float64
	OffsetX     float64
	OffsetY     float64
}

// SeatPos is one placed seat within a section
type SeatPos struct {
	Pos  geometry.Point
	Row  string
	Seat string
}

// Engine lays out exactly one section
type Engine interface {
	Layout(plan SectionPlan, params Params) ([]SeatPos, error)
}

// ForAlgorithm returns the engine for an auto-generation algorithm
func ForAlgorithm(alg domain.LayoutAlgorithm) (Engine, error) {
	switch alg {
	case domain.LayoutAlgorithmGrid, "":
		return GridEngine{}, nil
	case domain.LayoutAlgorithmCurved:
		return CurvedEngine{}, nil
	case domain.LayoutAlgorithmGeneral:
		return GeneralAdmissionEngine{}, nil
	default:
		return nil, domain.NewConfigurationError("layout_algorithm", fmt.Sprintf("unknown algorithm %q", alg))
	}
}

// ForShape returns the engine for a manually configured section's shape
func ForShape(shape domain.SectionShape) (Engine, error) {
	switch shape {
	case domain.SectionShapeRectangle, "":
		return GridEngine{}, nil
	case domain.SectionShapeCurved:
		return CurvedEngine{}, nil
	case domain.SectionShapeZone:
		return GeneralAdmissionEngine{}, nil
	default:
		return nil, domain.NewConfigurationError("section.shape", fmt.Sprintf("unknown shape %q", shape))
	}
}
