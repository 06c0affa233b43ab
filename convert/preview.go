package convert

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"io"

	"honnef.co/go/strokedb"
)

// PreviewOptions specifies optional settings for [WritePreview] and
// [WritePreviewPNG].
type PreviewOptions struct {
	// Columns is the number of characters per row. The default is 10.
	Columns int
	// CellSize is the width and height of a character's cell, in pixels. The
	// default is 100.
	CellSize int
	// StrokeWidth is the width of strokes, in pixels. The default is 3.
	StrokeWidth float64
	// Labels prints each character in the corner of its cell. Only SVG
	// previews support labels.
	Labels bool
}

func (opts PreviewOptions) withDefaults() PreviewOptions {
	if opts.Columns <= 0 {
		opts.Columns = 10
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 100
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 3
	}
	return opts
}

// strokeColors are cycled through in stroke order, so that the stroke order
// of a character can be read from a preview.
var strokeColors = []color.RGBA{
	{0xbf, 0x00, 0x00, 0xff},
	{0xbf, 0x5f, 0x00, 0xff},
	{0xbf, 0xbf, 0x00, 0xff},
	{0x00, 0xbf, 0x00, 0xff},
	{0x00, 0xbf, 0xbf, 0xff},
	{0x00, 0x00, 0xbf, 0xff},
	{0xbf, 0x00, 0xbf, 0xff},
}

func strokeColor(i int) color.RGBA {
	return strokeColors[i%len(strokeColors)]
}

// previewLayout computes the size of a preview and the cell of each character.
type previewLayout struct {
	opts PreviewOptions
	cols int
	rows int
}

func newPreviewLayout(n int, opts PreviewOptions) previewLayout {
	l := previewLayout{opts: opts, cols: min(n, opts.Columns)}
	if l.cols > 0 {
		l.rows = (n + l.cols - 1) / l.cols
	}
	return l
}

func (l previewLayout) size() image.Point {
	return image.Pt(l.cols*l.opts.CellSize, l.rows*l.opts.CellSize)
}

func (l previewLayout) cell(i int) image.Rectangle {
	s := l.opts.CellSize
	x := (i % l.cols) * s
	y := (i / l.cols) * s
	return image.Rect(x, y, x+s, y+s)
}

// transform maps a character's strokes into the cell at origin, leaving a
// margin of a tenth of the cell on every side.
func (l previewLayout) transform(strokes [][]strokedb.Point, origin image.Point) strokedb.Affine {
	box, ok := strokedb.BoundingBoxOf(strokedb.AllPoints(strokes))
	if !ok {
		return strokedb.Identity
	}
	s := float64(l.opts.CellSize)
	center := strokedb.Vec(float64(origin.X)+s/2, float64(origin.Y)+s/2)
	return strokedb.NormalizeTransform(box, 0.4*s).ThenTranslate(center)
}

// strokePath returns a stroke as a path of lines. A single point becomes a
// zero-length line so that it remains visible with round caps.
func strokePath(pts []strokedb.Point) strokedb.BezPath {
	var p strokedb.BezPath
	if len(pts) == 0 {
		return p
	}
	p.MoveTo(pts[0])
	if len(pts) == 1 {
		p.LineTo(pts[0])
	}
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	return p
}

// WritePreview draws the characters of db as an SVG contact sheet, one cell
// per character, with strokes colored by their position in the stroke order.
func WritePreview(w io.Writer, db *Database, opts PreviewOptions) error {
	opts = opts.withDefaults()
	l := newPreviewLayout(db.Len(), opts)
	size := l.size()

	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}

	writef(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %[1]d %[2]d">`+"\n", size.X, size.Y)
	writef(`<rect width="100%%" height="100%%" fill="white"/>`+"\n")
	i := 0
	for ch, strokes := range db.All() {
		cell := l.cell(i)
		i++
		aff := l.transform(strokes, cell.Min)

		writef(`<g fill="none" stroke-width="%g" stroke-linecap="round" stroke-linejoin="round">`+"\n", opts.StrokeWidth)
		if opts.Labels {
			writef(`<text x="%d" y="%d" font-size="%d" fill="gray">`, cell.Min.X+2, cell.Min.Y+opts.CellSize/8+2, opts.CellSize/8)
			if err == nil {
				err = xml.EscapeText(w, []byte(ch))
			}
			writef("</text>\n")
		}
		for j, s := range strokes {
			c := strokeColor(j)
			writef(`<path stroke="#%02x%02x%02x" d="`, c.R, c.G, c.B)
			if err == nil {
				err = strokePath(s).Transform(aff).WriteSVG(w, strokedb.SVGOptions{MaxPrecision: 2})
			}
			writef(`"/>` + "\n")
		}
		writef("</g>\n")
	}
	writef("</svg>\n")
	return err
}
