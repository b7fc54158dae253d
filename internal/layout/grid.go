package layout

import (
	"strconv"

	"github.com/seatforge/seatmap-service/internal/geometry"
	"github.com/seatforge/seatmap-service/internal/naming"
)

// GridEngine arranges seats in straight rows. Seat s of row r sits at
// (offsetX + s*seatSpacing, offsetY + r*rowSpacing). Rows come from the
// plan's explicit row config when present, otherwise Rows x SeatsPerRow.
type GridEngine struct{}

// Layout places the section's seats on a rectangular grid
func (GridEngine) Layout(plan SectionPlan, params Params) ([]SeatPos, error) {
	if params.SeatSpacing <= 0 || params.RowSpacing <= 0 {
		return nil, errNonPositiveSpacing(params)
	}

	if len(plan.RowConfig) > 0 {
		seats := make([]SeatPos, 0, plan.Capacity)
		for r, row := range plan.RowConfig {
			label := row.RowLabel
			if label == "" {
				label = naming.Alphabetic(r)
			}
			for s := 0; s < row.SeatCount; s++ {
				seats = append(seats, SeatPos{
					Pos: geometry.Point{
						X: params.OffsetX + float64(s)*params.SeatSpacing,
						Y: params.OffsetY + float64(r)*params.RowSpacing,
					},
					Row:  label,
					Seat: strconv.Itoa(s + 1),
				})
			}
		}
		return seats, nil
	}

	seats := make([]SeatPos, 0, plan.Rows*plan.SeatsPerRow)
	for r := 0; r < plan.Rows; r++ {
		for s := 0; s < plan.SeatsPerRow; s++ {
			seats = append(seats, SeatPos{
				Pos: geometry.Point{
					X: params.OffsetX + float64(s)*params.SeatSpacing,
					Y: params.OffsetY + float64(r)*params.RowSpacing,
				},
				Row:  naming.Alphabetic(r),
				Seat: strconv.Itoa(s + 1),
			})
		}
	}
	return seats, nil
}
