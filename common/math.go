package common

import (
	"math"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/floats/scalar"
)

// Point is a position on the board, y pointing up.
type Point = cp.Vector

// Pt is shorthand for building a Point.
func Pt(x, y float64) Point {
	return cp.Vector{X: x, Y: y}
}

// Round3 rounds v to three decimal places, the precision used by level documents.
func Round3(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := scalar.Round(v, 3)
	if r == 0 {
		// avoid "-0" in documents
		return 0
	}
	return r
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return a.Lerp(b, 0.5)
}

// BoundsOf returns the smallest box containing every point. An empty slice yields a zero box.
func BoundsOf(pts []Point) cp.BB {
	if len(pts) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: pts[0].X, B: pts[0].Y, R: pts[0].X, T: pts[0].Y}
	for _, p := range pts[1:] {
		bb = bb.Expand(p)
	}
	return bb
}

// PadBB grows bb by pad on every side.
func PadBB(bb cp.BB, pad float64) cp.BB {
	return cp.BB{L: bb.L - pad, B: bb.B - pad, R: bb.R + pad, T: bb.T + pad}
}
