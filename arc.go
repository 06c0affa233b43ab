package strokedb

import (
	"iter"
	"math"
)

// Arc is an elliptical arc, described by its center, radii, and angles.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// SVGArc is an elliptical arc in the endpoint parameterization used by the SVG
// "A" path command.
type SVGArc struct {
	From  Point
	To    Point
	Radii Vec2
	// XRotation is the rotation of the ellipse's x-axis, in radians.
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

// IsStraightLine reports whether the arc degenerates to a straight line, as
// SVG mandates for zero radii or coincident endpoints.
func (a SVGArc) IsStraightLine() bool {
	return math.Abs(a.Radii.X) <= 1e-5 || math.Abs(a.Radii.Y) <= 1e-5 || a.From == a.To
}

// NewArcFromSVG converts an SVG arc to center parameterization. It returns
// false if the arc is a straight line. Out-of-range radii are scaled up as
// described in the SVG implementation notes (F.6.6).
func NewArcFromSVG(a SVGArc) (Arc, bool) {
	if a.IsStraightLine() {
		return Arc{}, false
	}
	rx := math.Abs(a.Radii.X)
	ry := math.Abs(a.Radii.Y)
	sinPhi, cosPhi := math.Sincos(a.XRotation)
	hdX := (a.From.X - a.To.X) * 0.5
	hdY := (a.From.Y - a.To.Y) * 0.5
	hsX := (a.From.X + a.To.X) * 0.5
	hsY := (a.From.Y + a.To.Y) * 0.5

	// F.6.5.1
	p := Vec2{
		X: cosPhi*hdX + sinPhi*hdY,
		Y: -sinPhi*hdX + cosPhi*hdY,
	}

	if rf := p.X*p.X/(rx*rx) + p.Y*p.Y/(ry*ry); rf > 1.0 {
		rx *= math.Sqrt(rf)
		ry *= math.Sqrt(rf)
	}

	rxry := rx * ry
	rxpy := rx * p.Y
	rypx := ry * p.X
	sumOfSq := rxpy*rxpy + rypx*rypx

	// F.6.5.2
	signCoe := 1.0
	if a.LargeArc == a.Sweep {
		signCoe = -1.0
	}
	coe := signCoe * math.Sqrt(math.Abs((rxry*rxry-sumOfSq)/sumOfSq))
	tcx := coe * rxpy / ry
	tcy := -coe * rypx / rx

	// F.6.5.3
	center := Point{
		X: cosPhi*tcx - sinPhi*tcy + hsX,
		Y: sinPhi*tcx + cosPhi*tcy + hsY,
	}

	startV := Vec2{(p.X - tcx) / rx, (p.Y - tcy) / ry}
	endV := Vec2{(-p.X - tcx) / rx, (-p.Y - tcy) / ry}
	startAngle := startV.Angle()
	sweepAngle := math.Mod(endV.Angle()-startAngle, 2*math.Pi)
	if a.Sweep && sweepAngle < 0 {
		sweepAngle += 2 * math.Pi
	} else if !a.Sweep && sweepAngle > 0 {
		sweepAngle -= 2 * math.Pi
	}

	return Arc{
		Center:     center,
		Radii:      Vec2{rx, ry},
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  a.XRotation,
	}, true
}

// PathElements returns the arc as a MoveTo to its start point followed by
// cubic Béziers approximating it to within tolerance.
func (a Arc) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		p0 := sampleEllipse(a.Radii, a.XRotation, a.StartAngle)
		if !yield(MoveTo(a.Center.Translate(p0))) {
			return
		}

		scaledError := max(a.Radii.X, a.Radii.Y) / tolerance
		// Number of subdivisions per ellipse based on error tolerance.
		// Note: this may slightly underestimate the error for quadrants.
		nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
		n := math.Ceil(nError * math.Abs(a.SweepAngle) * (1.0 / (2.0 * math.Pi)))
		angleStep := a.SweepAngle / n
		armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.SweepAngle)
		angle0 := a.StartAngle

		for range int(n) {
			angle1 := angle0 + angleStep
			p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
			p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
			p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))

			angle0 = angle1
			p0 = p3

			if !yield(CubicTo(
				a.Center.Translate(p1),
				a.Center.Translate(p2),
				a.Center.Translate(p3),
			)) {
				break
			}
		}
	}
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and the
// sweep angle, and returns a point on the ellipse.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return Vec2(Point{u, v}.Transform(Rotate(xRotation)))
}
