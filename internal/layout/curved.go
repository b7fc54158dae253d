package layout

import (
	"strconv"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/geometry"
	"github.com/seatforge/seatmap-service/internal/naming"
)

// CurvedEngine places seats on concentric arcs around a shared center.
// Row r sits at radius baseRadius + r*rowSpacing; seats within a row are
// spread symmetrically across the arc span. TotalRows caps the radial
// extent when set.
type CurvedEngine struct{}

// Layout places the section's seats along concentric arcs
func (CurvedEngine) Layout(plan SectionPlan, params Params) ([]SeatPos, error) {
	if params.SeatSpacing <= 0 || params.RowSpacing <= 0 {
		return nil, errNonPositiveSpacing(params)
	}
	if params.BaseRadius <= 0 {
		return nil, domain.NewConfigurationError("layout_config.base_radius", "must be positive for curved layout")
	}

	span := params.ArcSpan
	if span <= 0 {
		span = DefaultArcSpan
	}
	center := geometry.Point{X: params.CenterX, Y: params.CenterY}

	rows := rowSeatCounts(plan)
	if params.TotalRows > 0 && len(rows) > params.TotalRows {
		rows = rows[:params.TotalRows]
	}

	var seats []SeatPos
	for r, rowSpec := range rows {
		radius := params.BaseRadius + params.OffsetY + float64(r)*params.RowSpacing
		angles := geometry.RowArcAngles(span, rowSpec.count)
		for s, theta := range angles {
			seats = append(seats, SeatPos{
				Pos:  geometry.ArcPoint(center, radius, theta),
				Row:  rowSpec.label,
				Seat: strconv.Itoa(s + 1),
			})
		}
	}
	return seats, nil
}

type rowCount struct {
	label string
	count int
}

// rowSeatCounts resolves the per-row seat counts for a plan, preferring
// the explicit row config over the uniform fallback.
func rowSeatCounts(plan SectionPlan) []rowCount {
	if len(plan.RowConfig) > 0 {
		rows := make([]rowCount, len(plan.RowConfig))
		for i, r := range plan.RowConfig {
			label := r.RowLabel
			if label == "" {
				label = naming.Alphabetic(i)
			}
			rows[i] = rowCount{label: label, count: r.SeatCount}
		}
		return rows
	}
	rows := make([]rowCount, plan.Rows)
	for i := range rows {
		rows[i] = rowCount{label: naming.Alphabetic(i), count: plan.SeatsPerRow}
	}
	return rows
}

func errNonPositiveSpacing(params Params) error {
	if params.SeatSpacing <= 0 {
		return domain.NewConfigurationError("layout_config.seat_spacing", "must be positive")
	}
	return domain.NewConfigurationError("layout_config.row_spacing", "must be positive")
}
