package strokedb

import (
	"fmt"
	"math"
	"strconv"
)

// arcTolerance is the accuracy, in path units, with which elliptical arcs are
// approximated by cubic Béziers.
const arcTolerance = 0.1

// ParseError describes malformed SVG path data.
type ParseError struct {
	// Data is the complete path data that failed to parse.
	Data string
	// Offset is the byte offset of the problem within Data.
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	data := e.Data
	if len(data) > 64 {
		data = data[:61] + "..."
	}
	return fmt.Sprintf("invalid path data %q at offset %d: %s", data, e.Offset, e.Msg)
}

// ParseSVGPath parses the contents of an SVG path's "d" attribute.
//
// All commands of the SVG 1.1 path grammar are supported, in both their
// absolute and relative forms. Smooth curves (S, T) reflect the previous
// control point, and elliptical arcs (A) are converted to cubic Béziers.
// Numbers may abut without separators where the grammar allows it, as in
// "M1.5.5" or "l3-4".
//
// Malformed data results in a [*ParseError].
func ParseSVGPath(d string) (BezPath, error) {
	sc := pathScanner{s: d}
	var (
		p     BezPath
		cmd   byte
		prev  byte
		pen   Point
		start Point
		// ctrl is the last control point of the previous C/S or Q/T command.
		ctrl Point
	)
	for {
		sc.skipSpace()
		if sc.done() {
			break
		}
		off := sc.i
		c := sc.peek()
		switch {
		case isCommand(c):
			cmd = c
			sc.i++
		case cmd == 0:
			return nil, sc.errorf(off, "expected command, got %q", c)
		case cmd == 'Z' || cmd == 'z':
			return nil, sc.errorf(off, "unexpected %q after close path", c)
		case !isNumberStart(c):
			return nil, sc.errorf(off, "unexpected %q", c)
		}
		if prev == 0 && cmd != 'M' && cmd != 'm' {
			return nil, sc.errorf(off, "path data must start with a move to, got %q", cmd)
		}

		rel := cmd >= 'a'
		abs := func(pt Point) Point {
			if rel {
				return pt.Translate(Vec2(pen))
			}
			return pt
		}

		switch cmd {
		case 'Z', 'z':
			p.ClosePath()
			pen = start
		case 'M', 'm':
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			pen = abs(pt)
			start = pen
			p.MoveTo(pen)
			// Subsequent coordinate pairs are implicit line to commands.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			pen = abs(pt)
			p.LineTo(pen)
		case 'H', 'h':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += pen.X
			}
			pen = Pt(x, pen.Y)
			p.LineTo(pen)
		case 'V', 'v':
			y, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += pen.Y
			}
			pen = Pt(pen.X, y)
			p.LineTo(pen)
		case 'C', 'c':
			pts, err := sc.points(3)
			if err != nil {
				return nil, err
			}
			p1, p2, p3 := abs(pts[0]), abs(pts[1]), abs(pts[2])
			p.CubicTo(p1, p2, p3)
			ctrl, pen = p2, p3
		case 'S', 's':
			pts, err := sc.points(2)
			if err != nil {
				return nil, err
			}
			p1 := pen
			if isCubic(prev) {
				p1 = reflect(ctrl, pen)
			}
			p2, p3 := abs(pts[0]), abs(pts[1])
			p.CubicTo(p1, p2, p3)
			ctrl, pen = p2, p3
		case 'Q', 'q':
			pts, err := sc.points(2)
			if err != nil {
				return nil, err
			}
			p1, p2 := abs(pts[0]), abs(pts[1])
			p.QuadTo(p1, p2)
			ctrl, pen = p1, p2
		case 'T', 't':
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			p1 := pen
			if isQuad(prev) {
				p1 = reflect(ctrl, pen)
			}
			p2 := abs(pt)
			p.QuadTo(p1, p2)
			ctrl, pen = p1, p2
		case 'A', 'a':
			arc, err := sc.arc()
			if err != nil {
				return nil, err
			}
			arc.From = pen
			arc.To = abs(arc.To)
			appendArc(&p, arc)
			pen = arc.To
		}
		prev = cmd
	}
	return p, nil
}

func appendArc(p *BezPath, a SVGArc) {
	arc, ok := NewArcFromSVG(a)
	if !ok {
		if a.From != a.To {
			p.LineTo(a.To)
		}
		return
	}
	first := true
	for el := range arc.PathElements(arcTolerance) {
		if first {
			// The arc starts at the pen.
			first = false
			continue
		}
		p.Push(el)
	}
	// Snap the final point to the exact end point to avoid accumulating error
	// in subsequent relative commands.
	if last := &(*p)[len(*p)-1]; last.Kind == CubicToKind {
		last.P2 = a.To
	}
}

func reflect(ctrl, pen Point) Point {
	return pen.Translate(pen.Sub(ctrl))
}

func isCubic(c byte) bool {
	switch c {
	case 'C', 'c', 'S', 's':
		return true
	}
	return false
}

func isQuad(c byte) bool {
	switch c {
	case 'Q', 'q', 'T', 't':
		return true
	}
	return false
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't',
		'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func isNumberStart(c byte) bool {
	return isDigit(c) || c == '.' || c == '-' || c == '+'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

type pathScanner struct {
	s string
	i int
}

func (sc *pathScanner) done() bool { return sc.i >= len(sc.s) }
func (sc *pathScanner) peek() byte { return sc.s[sc.i] }

func (sc *pathScanner) errorf(off int, format string, args ...any) error {
	return &ParseError{
		Data:   sc.s,
		Offset: off,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (sc *pathScanner) skipSpace() {
	for !sc.done() && isSpace(sc.peek()) {
		sc.i++
	}
}

// skipSep skips white space and at most one comma.
func (sc *pathScanner) skipSep() {
	sc.skipSpace()
	if !sc.done() && sc.peek() == ',' {
		sc.i++
		sc.skipSpace()
	}
}

// number scans a number, preceded by an optional separator.
func (sc *pathScanner) number() (float64, error) {
	sc.skipSep()
	start := sc.i
	if !sc.done() && (sc.peek() == '-' || sc.peek() == '+') {
		sc.i++
	}
	digits := 0
	for !sc.done() && isDigit(sc.peek()) {
		sc.i++
		digits++
	}
	if !sc.done() && sc.peek() == '.' {
		sc.i++
		for !sc.done() && isDigit(sc.peek()) {
			sc.i++
			digits++
		}
	}
	if digits == 0 {
		if sc.done() {
			return 0, sc.errorf(start, "expected number, got end of data")
		}
		return 0, sc.errorf(start, "expected number, got %q", sc.peek())
	}
	if !sc.done() && (sc.peek() == 'e' || sc.peek() == 'E') {
		// Only consume the exponent if it is well-formed; otherwise leave it
		// for the caller to report.
		j := sc.i + 1
		if j < len(sc.s) && (sc.s[j] == '-' || sc.s[j] == '+') {
			j++
		}
		if j < len(sc.s) && isDigit(sc.s[j]) {
			for j < len(sc.s) && isDigit(sc.s[j]) {
				j++
			}
			sc.i = j
		}
	}
	f, err := strconv.ParseFloat(sc.s[start:sc.i], 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, sc.errorf(start, "invalid number %q", sc.s[start:sc.i])
	}
	return f, nil
}

func (sc *pathScanner) point() (Point, error) {
	x, err := sc.number()
	if err != nil {
		return Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return Point{}, err
	}
	return Pt(x, y), nil
}

func (sc *pathScanner) points(n int) ([3]Point, error) {
	var pts [3]Point
	for i := range n {
		pt, err := sc.point()
		if err != nil {
			return pts, err
		}
		pts[i] = pt
	}
	return pts, nil
}

// flag scans an arc flag, which is a single 0 or 1 that need not be followed
// by a separator.
func (sc *pathScanner) flag() (bool, error) {
	sc.skipSep()
	if sc.done() {
		return false, sc.errorf(sc.i, "expected flag, got end of data")
	}
	switch c := sc.peek(); c {
	case '0', '1':
		sc.i++
		return c == '1', nil
	default:
		return false, sc.errorf(sc.i, "expected flag, got %q", c)
	}
}

// arc scans the arguments of an arc command. From is left unset and To is
// relative to the pen for relative commands.
func (sc *pathScanner) arc() (SVGArc, error) {
	var a SVGArc
	var err error
	if a.Radii.X, err = sc.number(); err != nil {
		return a, err
	}
	if a.Radii.Y, err = sc.number(); err != nil {
		return a, err
	}
	rot, err := sc.number()
	if err != nil {
		return a, err
	}
	a.XRotation = rot * math.Pi / 180
	if a.LargeArc, err = sc.flag(); err != nil {
		return a, err
	}
	if a.Sweep, err = sc.flag(); err != nil {
		return a, err
	}
	if a.To, err = sc.point(); err != nil {
		return a, err
	}
	return a, nil
}
