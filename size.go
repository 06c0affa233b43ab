package strokedb

import "fmt"

type Size struct {
	Width  float64
	Height float64
}

// Sz returns the size x×y.
func Sz(w, h float64) Size {
	return Size{
		Width:  w,
		Height: h,
	}
}

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

// MaxSide returns the larger of width and height.
func (sz Size) MaxSide() float64 {
	return max(sz.Width, sz.Height)
}

// IsZero reports whether both sides are zero, as is the case for the bounding
// box of a single point.
func (sz Size) IsZero() bool {
	return sz.Width == 0 && sz.Height == 0
}
