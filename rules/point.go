package rules

import "math"

// Point is a position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equal checks if 2 points are the same x,y coordinate
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// WrapDist is Dist across the seams of a width x height arena, each axis
// takes the shorter way round. A zero dimension does not wrap.
func (p Point) WrapDist(other Point, width, height float64) float64 {
	return math.Hypot(wrapDelta(p.X-other.X, width), wrapDelta(p.Y-other.Y, height))
}

func wrapDelta(d, size float64) float64 {
	d = math.Abs(d)
	if size > 0 {
		d = math.Mod(d, size)
		if d > size/2 {
			d = size - d
		}
	}
	return d
}

// Step moves the point dist units along angle, angle is in degrees with 0
// pointing along +X and 90 along +Y.
func (p Point) Step(angle, dist float64) Point {
	rad := angle * math.Pi / 180
	return Point{
		X: p.X + math.Cos(rad)*dist,
		Y: p.Y + math.Sin(rad)*dist,
	}
}

// Wrap folds the point back into a width x height arena. A zero dimension
// disables wrapping on that axis.
func (p Point) Wrap(width, height float64) Point {
	return Point{X: wrap(p.X, width), Y: wrap(p.Y, height)}
}

func wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}
