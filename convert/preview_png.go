package convert

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/vector"
	"honnef.co/go/strokedb"
)

// WritePreviewPNG is like [WritePreview] but renders a PNG image. An empty
// database produces a 1×1 image.
func WritePreviewPNG(w io.Writer, db *Database, opts PreviewOptions) error {
	return png.Encode(w, renderPreview(db, opts))
}

func renderPreview(db *Database, opts PreviewOptions) *image.RGBA {
	opts = opts.withDefaults()
	l := newPreviewLayout(db.Len(), opts)
	size := l.size()
	img := image.NewRGBA(image.Rect(0, 0, max(size.X, 1), max(size.Y, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	rast := vector.NewRasterizer(opts.CellSize, opts.CellSize)
	i := 0
	for _, strokes := range db.All() {
		cell := l.cell(i)
		i++
		// The rasterizer's origin is the cell's origin.
		aff := l.transform(strokes, image.Point{})
		for j, s := range strokes {
			rast.Reset(opts.CellSize, opts.CellSize)
			rast.DrawOp = draw.Over
			rasterizeStroke(rast, strokePath(s), aff, opts.StrokeWidth/2)
			rast.Draw(img, cell, image.NewUniform(strokeColor(j)), image.Point{})
		}
	}
	return img
}

// rasterizeStroke adds the outline of a polyline, transformed by aff, with the
// given half width to rast. Each line becomes a rectangle and each vertex a
// square, all wound in the same direction so that overlaps don't cancel out.
func rasterizeStroke(rast *vector.Rasterizer, p strokedb.BezPath, aff strokedb.Affine, hw float64) {
	pt := func(p strokedb.Point) (float32, float32) {
		return float32(p.X), float32(p.Y)
	}
	quad := func(a, b, c, d strokedb.Point) {
		rast.MoveTo(pt(a))
		rast.LineTo(pt(b))
		rast.LineTo(pt(c))
		rast.LineTo(pt(d))
		rast.ClosePath()
	}
	square := func(c strokedb.Point) {
		quad(
			strokedb.Pt(c.X-hw, c.Y-hw),
			strokedb.Pt(c.X-hw, c.Y+hw),
			strokedb.Pt(c.X+hw, c.Y+hw),
			strokedb.Pt(c.X+hw, c.Y-hw),
		)
	}

	for seg := range p.Segments() {
		l := seg.Transform(aff).Line()
		square(l.P0)
		square(l.P1)
		length := l.Length()
		if length == 0 {
			continue
		}
		d := l.P1.Sub(l.P0)
		n := strokedb.Vec(-d.Y, d.X).Mul(hw / length)
		quad(
			l.P0.Translate(n),
			l.P1.Translate(n),
			l.P1.Translate(n.Negate()),
			l.P0.Translate(n.Negate()),
		)
	}
}
