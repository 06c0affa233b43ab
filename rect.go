package strokedb

import (
	"fmt"
	"iter"
)

// Rect is an axis-aligned rectangle. It is used as the bounding box of point
// sets and stroke groups.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// BoundingBoxOf returns the smallest rectangle enclosing all points of seq. It
// returns false if seq is empty.
func BoundingBoxOf(seq iter.Seq[Point]) (Rect, bool) {
	var r Rect
	first := true
	for pt := range seq {
		if first {
			r = Rect{pt.X, pt.Y, pt.X, pt.Y}
			first = false
			continue
		}
		r = r.UnionPoint(pt)
	}
	return r, !first
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{(%g, %g), (%g, %g)}", r.X0, r.Y0, r.X1, r.Y1)
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Size() Size {
	return Size{
		Width:  r.Width(),
		Height: r.Height(),
	}
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// UnionPoint returns the smallest rectangle enclosing r and pt. Zero-area
// rectangles count their perimeter, so a succession of UnionPoint calls
// yields the bounding box of a point set.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}
