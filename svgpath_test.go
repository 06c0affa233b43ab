package strokedb

import (
	"errors"
	"testing"
)

func TestParseSVGPath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want BezPath
	}{
		{"empty", "", nil},
		{"blank", " \n\t", nil},
		{
			"line",
			"M1,2 L3,4",
			BezPath{MoveTo(Pt(1, 2)), LineTo(Pt(3, 4))},
		},
		{
			"implicit line after relative move",
			"m1 2 3 4",
			BezPath{MoveTo(Pt(1, 2)), LineTo(Pt(4, 6))},
		},
		{
			"horizontal and vertical",
			"M0,0H10V5h-2v-1",
			BezPath{MoveTo(Pt(0, 0)), LineTo(Pt(10, 0)), LineTo(Pt(10, 5)), LineTo(Pt(8, 5)), LineTo(Pt(8, 4))},
		},
		{
			"abutting numbers",
			"M1.5.5l3-4",
			BezPath{MoveTo(Pt(1.5, 0.5)), LineTo(Pt(4.5, -3.5))},
		},
		{
			"exponents",
			"M1e1-2E-1",
			BezPath{MoveTo(Pt(10, -0.2))},
		},
		{
			"smooth cubic",
			"M0 0C1 1 2 2 3 3S5 5 6 6",
			BezPath{
				MoveTo(Pt(0, 0)),
				CubicTo(Pt(1, 1), Pt(2, 2), Pt(3, 3)),
				CubicTo(Pt(4, 4), Pt(5, 5), Pt(6, 6)),
			},
		},
		{
			"smooth cubic without previous cubic",
			"M0,0 s1,1 2,0",
			BezPath{MoveTo(Pt(0, 0)), CubicTo(Pt(0, 0), Pt(1, 1), Pt(2, 0))},
		},
		{
			"smooth quad",
			"M0 0Q1 1 2 0T4 0",
			BezPath{MoveTo(Pt(0, 0)), QuadTo(Pt(1, 1), Pt(2, 0)), QuadTo(Pt(3, -1), Pt(4, 0))},
		},
		{
			"relative smooth quad",
			"M0 0q1 1 2 0t2 0",
			BezPath{MoveTo(Pt(0, 0)), QuadTo(Pt(1, 1), Pt(2, 0)), QuadTo(Pt(3, -1), Pt(4, 0))},
		},
		{
			"close path resets pen",
			"M1,1 l1,0 z l0,1",
			BezPath{MoveTo(Pt(1, 1)), LineTo(Pt(2, 1)), ClosePath(), LineTo(Pt(1, 2))},
		},
		{
			"implicit cubic repetition",
			"M0,0 c1,0 1,1 1,1 0,1 -1,1 -1,1",
			BezPath{
				MoveTo(Pt(0, 0)),
				CubicTo(Pt(1, 0), Pt(1, 1), Pt(1, 1)),
				CubicTo(Pt(1, 2), Pt(0, 2), Pt(0, 2)),
			},
		},
		{
			"kanjivg stroke",
			"M31.5,24.5c1.12,0.38,3.39,0.48,4.5,0.38",
			BezPath{MoveTo(Pt(31.5, 24.5)), CubicTo(Pt(32.62, 24.88), Pt(34.89, 24.98), Pt(36, 24.88))},
		},
		{
			"degenerate arc",
			"M0,0 A0,1 0 0 1 3,4",
			BezPath{MoveTo(Pt(0, 0)), LineTo(Pt(3, 4))},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSVGPath(tt.d)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.want, got, approx(1e-9))
		})
	}
}

func TestParseSVGPathArc(t *testing.T) {
	tests := []struct {
		name   string
		d      string
		center Point
		radius float64
		end    Point
	}{
		{"absolute", "M0,0 A1,1 0 0 1 2,0", Pt(1, 0), 1, Pt(2, 0)},
		{"relative", "m1,1 a1,1 0 1,0 2,0", Pt(2, 1), 1, Pt(3, 1)},
		{"compact flags", "M0,0a1,1 0 012,0", Pt(1, 0), 1, Pt(2, 0)},
		// Radii that are too small are scaled up.
		{"scaled radii", "M0,0 A0.5,0.5 0 0 1 4,0", Pt(2, 0), 2, Pt(4, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseSVGPath(tt.d)
			if err != nil {
				t.Fatal(err)
			}
			if len(p) < 2 {
				t.Fatalf("got %d elements, want at least 2", len(p))
			}
			for _, el := range p[1:] {
				if el.Kind != CubicToKind {
					t.Fatalf("got %v, want cubic", el)
				}
			}
			diff(t, tt.end, p[len(p)-1].P2)
			for seg := range p.Segments() {
				for _, ts := range []float64{0.25, 0.5, 0.75} {
					r := seg.Eval(ts).Distance(tt.center)
					if d := r - tt.radius; d > 1e-3 || d < -1e-3 {
						t.Errorf("point at %g is %g from center, want %g", ts, r, tt.radius)
					}
				}
			}
		})
	}
}

func TestParseSVGPathErrors(t *testing.T) {
	tests := []struct {
		d      string
		offset int
	}{
		{"L1,2", 0},
		{"1,2", 0},
		{"M1", 2},
		{"M.,2", 1},
		{"M1e,2", 2},
		{"M1e999,0", 1},
		{"M1,2 X", 5},
		{"M1,2 L", 6},
		{"M1,2 Z 3", 7},
		{"M1,2 A1 1 0 2 1 3 3", 12},
	}
	for _, tt := range tests {
		t.Run(tt.d, func(t *testing.T) {
			_, err := ParseSVGPath(tt.d)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("got error %v, want *ParseError", err)
			}
			if perr.Offset != tt.offset {
				t.Errorf("got offset %d, want %d (%s)", perr.Offset, tt.offset, perr)
			}
			if perr.Data != tt.d {
				t.Errorf("got data %q, want %q", perr.Data, tt.d)
			}
		})
	}
}

func TestParseSVGPathRoundTrip(t *testing.T) {
	const d = "M52.25,14.5c0.25,1.25,0.23,2.78-0.17,4.46C49.5,29.5,41.5,50.75,25.5,63.75 m10,-5 q3,3 6,0 z"
	p, err := ParseSVGPath(d)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := ParseSVGPath(p.SVG(SVGOptions{}))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, p, p2)
}
