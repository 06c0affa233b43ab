package strokedb

import "iter"

// AllPoints returns an iterator over the points of all strokes, in order.
func AllPoints(strokes [][]Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, s := range strokes {
			for _, pt := range s {
				if !yield(pt) {
					return
				}
			}
		}
	}
}

// NormalizeScale returns the length of the larger side of box, or 1 if the box
// has zero extent.
func NormalizeScale(box Rect) float64 {
	sz := box.Size()
	if sz.IsZero() {
		return 1
	}
	return sz.MaxSide()
}

// NormalizeTransform returns the transform that centers box at the origin and
// scales it uniformly so that its larger side spans 2*unit.
func NormalizeTransform(box Rect, unit float64) Affine {
	k := 2 * unit / NormalizeScale(box)
	return Translate(Vec2(box.Center()).Negate()).ThenScale(k, k)
}

// Normalize maps the strokes of one character into a canonical frame. The
// bounding box of all points of all strokes is centered at the origin and its
// larger side is scaled to 2*unit, so that with a unit of 0.5 all coordinates
// lie in [-0.5, 0.5]. A character whose points all coincide is mapped to the
// origin.
//
// Stroke count, stroke order and point order are preserved. The input is not
// modified.
func Normalize(strokes [][]Point, unit float64) [][]Point {
	out := make([][]Point, len(strokes))
	box, ok := BoundingBoxOf(AllPoints(strokes))
	if !ok {
		for i := range strokes {
			out[i] = []Point{}
		}
		return out
	}
	aff := NormalizeTransform(box, unit)
	for i, s := range strokes {
		ns := make([]Point, len(s))
		for j, pt := range s {
			ns[j] = pt.Transform(aff)
		}
		out[i] = ns
	}
	return out
}

// RoundStrokes rounds all coordinates to the given number of decimal places,
// in place, and returns strokes.
func RoundStrokes(strokes [][]Point, places int) [][]Point {
	for _, s := range strokes {
		for j := range s {
			s[j] = s[j].RoundTo(places)
		}
	}
	return strokes
}
