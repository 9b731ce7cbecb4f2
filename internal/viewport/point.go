package viewport

import "math"

// Point is a 2D vector used for both device-pixel and virtual-pixel
// coordinates. Which space a value lives in is part of the API contract
// of the function that produced it.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul scales both components by s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Div divides both components by s.
func (p Point) Div(s float64) Point {
	return Point{p.X / s, p.Y / s}
}

// Floor rounds both components toward negative infinity.
func (p Point) Floor() Point {
	return Point{math.Floor(p.X), math.Floor(p.Y)}
}

// Round rounds both components to the nearest integer, halves away from zero.
func (p Point) Round() Point {
	return Point{math.Round(p.X), math.Round(p.Y)}
}

// Rotate rotates the vector by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// Lerp interpolates linearly from p to q by t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Finite reports whether both components are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
