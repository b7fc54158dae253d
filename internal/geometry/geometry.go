// Package geometry provides the coordinate math shared by the layout
// engines. Everything here is a pure function of its numeric inputs so
// that generation stays deterministic and diffable.
package geometry

import "math"

// Point is a position on the manifest plane. Units are defined by the
// layout engine that produced it.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ArcPoint places a point on a circle of the given radius around center,
// at angle theta (radians, measured from the positive X axis).
func ArcPoint(center Point, radius, theta float64) Point {
	return Point{
		X: center.X + radius*math.Cos(theta),
		Y: center.Y + radius*math.Sin(theta),
	}
}

// RowArcAngles returns the angle for each of seatsInRow seats spread
// symmetrically across span radians. A single seat sits on the midline;
// otherwise seat s sits at -span/2 + s*(span/(seatsInRow-1)).
func RowArcAngles(span float64, seatsInRow int) []float64 {
	if seatsInRow <= 0 {
		return nil
	}
	angles := make([]float64, seatsInRow)
	if seatsInRow == 1 {
		return angles
	}
	half := span / 2
	step := span / float64(seatsInRow-1)
	for s := 0; s < seatsInRow; s++ {
		angles[s] = -half + float64(s)*step
	}
	return angles
}

// SectionOffsetX returns the X offset for the index-th section when
// sections of the given width are tiled left to right with spacing
// between them.
func SectionOffsetX(index int, width, spacing float64) float64 {
	return float64(index) * (width + spacing)
}

// GridWidth returns the horizontal extent of a row of seats placed
// seatSpacing apart. A single seat has zero extent.
func GridWidth(seatsPerRow int, seatSpacing float64) float64 {
	if seatsPerRow <= 1 {
		return 0
	}
	return float64(seatsPerRow-1) * seatSpacing
}

// Translate shifts a point by dx, dy
func Translate(p Point, dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}
