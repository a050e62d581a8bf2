// Package interpolate converts between the coordinates of a backbone
// sequence (physical position and the three genetic maps) by binary search
// and piecewise-linear interpolation.
package interpolate

import (
	"math"
	"sort"

	"github.com/mgijax/genmapload/backbone"
)

// LocateBracket returns the largest index i such that
// points[i].Position <= target, or -1 if target precedes every point.
func LocateBracket(points backbone.Sequence, target float64) int {
	return Locate(points, target, backbone.Position)
}

// Locate is LocateBracket over an arbitrary column, which must be
// non-decreasing across points.
func Locate(points backbone.Sequence, target float64, from backbone.Column) int {
	return sort.Search(len(points), func(i int) bool {
		return points[i].Get(from) > target
	}) - 1
}

// Estimate returns the sex-averaged genetic position, in cM, of the physical
// position target.
func Estimate(points backbone.Sequence, target float64) float64 {
	return Convert(points, target, backbone.Position, backbone.Average)
}

// Convert maps value, expressed in column from, onto column to.
//
// Between two points the result is interpolated linearly. At or beyond the
// last point, and before the first, the result is scaled from the origin
// through the nearest point (value * to / from) instead of extending the
// slope of the last segment. When to is the physical position the result is
// truncated to a whole basepair. Convert returns NaN for an empty sequence.
func Convert(points backbone.Sequence, value float64, from, to backbone.Column) float64 {
	if len(points) == 0 {
		return math.NaN()
	}

	var out float64

	switch i := Locate(points, value, from); {
	case i >= 0 && points[i].Get(from) == value:
		out = points[i].Get(to)
	case i == len(points)-1:
		out = fromOrigin(points[i], value, from, to)
	case i < 0:
		out = fromOrigin(points[0], value, from, to)
	default:
		out = between(points[i], points[i+1], value, from, to)
	}

	if to == backbone.Position {
		out = math.Trunc(out)
	}

	return out
}

func fromOrigin(p backbone.ReferencePoint, value float64, from, to backbone.Column) float64 {
	x, y := p.Get(from), p.Get(to)
	if x == 0 {
		return y
	}

	return value * y / x
}

func between(lo, hi backbone.ReferencePoint, value float64, from, to backbone.Column) float64 {
	from1, from2 := lo.Get(from), hi.Get(from)
	to1, to2 := lo.Get(to), hi.Get(to)
	if from2 == from1 {
		return to1
	}

	f := (value - from1) / (from2 - from1)
	return to1 + f*(to2-to1)
}
