package layout

import (
	"strconv"

	"github.com/seatforge/seatmap-service/internal/geometry"
)

// GeneralAdmissionEngine handles zone seating: the section has a capacity
// but no individual seat positions. One place record is still generated
// per admitted person, and every place in the zone shares the zone anchor
// point. The shared-anchor convention keeps the manifest shape uniform
// across algorithms and is applied consistently within a manifest.
type GeneralAdmissionEngine struct{}

// Layout emits one anchored place per unit of capacity
func (GeneralAdmissionEngine) Layout(plan SectionPlan, params Params) ([]SeatPos, error) {
	anchor := geometry.Point{
		X: params.CenterX + params.OffsetX,
		Y: params.CenterY + params.OffsetY,
	}
	seats := make([]SeatPos, plan.Capacity)
	for i := 0; i < plan.Capacity; i++ {
		seats[i] = SeatPos{
			Pos:  anchor,
			Row:  "GA",
			Seat: strconv.Itoa(i + 1),
		}
	}
	return seats, nil
}
