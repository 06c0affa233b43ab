package strokedb

// Simplify reduces a polyline using the Douglas–Peucker algorithm and returns
// the points that were kept, in their original order.
//
// The first and last points are always kept. An interior point is kept if it
// is the point of maximum distance from the line through the endpoints of the
// range being considered and that distance exceeds tolerance, in which case the
// two halves are simplified in turn. Distances are measured to the infinite
// line; when a range's endpoints coincide, the euclidean distance to that point
// is used instead. On equal distances, the point with the lowest index wins.
//
// Polylines with fewer than three points are returned unchanged. The returned
// slice never aliases pts.
//
// Simplifying the output again with the same tolerance returns it unchanged,
// and a larger tolerance never produces more points.
func Simplify(pts []Point, tolerance float64) []Point {
	idx := SimplifyIndices(pts, tolerance)
	out := make([]Point, len(idx))
	for i, j := range idx {
		out[i] = pts[j]
	}
	return out
}

// SimplifyIndices is like [Simplify] but returns the indices of the kept points
// in increasing order.
func SimplifyIndices(pts []Point, tolerance float64) []int {
	if len(pts) < 3 {
		idx := make([]int, len(pts))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true
	n := 2

	// Ranges are processed with an explicit stack to bound memory use for
	// adversarial input, where recursion would reach a depth of len(pts).
	stack := []int{0, len(pts) - 1}
	for len(stack) > 0 {
		l := len(stack)
		start, end := stack[l-2], stack[l-1]
		stack = stack[:l-2]

		line := Line{pts[start], pts[end]}
		maxDist := 0.0
		maxIndex := -1
		for i := start + 1; i < end; i++ {
			if d := line.PerpendicularDistance(pts[i]); d > maxDist {
				maxDist = d
				maxIndex = i
			}
		}
		if maxIndex == -1 || !(maxDist > tolerance) {
			continue
		}
		keep[maxIndex] = true
		n++
		stack = append(stack, start, maxIndex, maxIndex, end)
	}

	idx := make([]int, 0, n)
	for i, k := range keep {
		if k {
			idx = append(idx, i)
		}
	}
	return idx
}
