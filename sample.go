package strokedb

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrEmptyPath is returned when sampling a path without any drawable
// segments.
var ErrEmptyPath = errors.New("path has no segments")

// ErrNotFinite is returned when a path evaluates to infinite or NaN
// coordinates, for example because its control points overflow.
var ErrNotFinite = errors.New("path coordinates are not finite")

// Sample evaluates the path at n parameter values T_k = k/(n-1) for k = 0, …,
// n-1 and returns the resulting points.
//
// The parameter evenly divides the path's segments: with m segments, T maps to
// segment ⌊T·m⌋ at local parameter T·m − ⌊T·m⌋, and T = 1 maps to the end of
// the last segment. Sampling is therefore uniform in parameter space, not in
// arc length, and a path's segments contribute equally many samples regardless
// of their lengths.
//
// The first sample is the path's start point and the last sample is its end
// point. Sample panics if n < 2.
//
// If any sample has an infinite or NaN coordinate, Sample returns an error
// wrapping [ErrNotFinite].
func Sample(p BezPath, n int) ([]Point, error) {
	if n < 2 {
		panic("sample count must be at least 2")
	}
	segs := slices.Collect(p.Segments())
	if len(segs) == 0 {
		return nil, ErrEmptyPath
	}
	s := sampler{segs}
	pts := make([]Point, n)
	for k := range n {
		t := float64(k) / float64(n-1)
		pt := s.eval(t)
		if pt.IsInf() || pt.IsNaN() {
			return nil, fmt.Errorf("sample at T=%g is %v: %w", t, pt, ErrNotFinite)
		}
		pts[k] = pt
	}
	return pts, nil
}

type sampler struct {
	segs []PathSegment
}

// scale maps the global parameter t to a segment index and a local parameter.
func (s sampler) scale(t float64) (int, float64) {
	tScale := t * float64(len(s.segs))
	tFloor := math.Floor(tScale)
	return int(tFloor), tScale - tFloor
}

func (s sampler) eval(t float64) Point {
	i, t0 := s.scale(t)
	if i >= len(s.segs) {
		i = len(s.segs) - 1
		t0 = 1.0
	}
	return s.segs[i].Eval(t0)
}
