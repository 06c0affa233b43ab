// Package strokedb turns the vector strokes of a stroke-order font into
// compact point lists, suitable for storage and for animating stroke-order
// diagrams.
//
// # Pipeline
//
// A stroke is described by SVG path data, which [ParseSVGPath] turns into a
// [BezPath]. The path is then processed in three steps:
//
//   - [Sample] evaluates the path at a fixed number of evenly spaced parameter
//     values, producing a polyline.
//   - [Simplify] reduces the polyline with the Douglas–Peucker algorithm,
//     keeping only the points needed to stay within a tolerance of the
//     original.
//   - [Normalize] maps all strokes of a character into a canonical frame
//     centered at the origin, and [RoundStrokes] bounds the precision of the
//     result.
//
// Sampling is uniform in the path's parameter, not in arc length. Each segment
// of a path receives the same share of the parameter domain, regardless of its
// length.
//
// Only the parsed and normalized results are meant to be persisted. See the
// convert package for the batch driver that applies this pipeline to a whole
// font, and the kanjivg package for reading KanjiVG files.
//
// # Geometry
//
// The package includes the primitives needed by the pipeline: [Point], [Vec2],
// [Rect], [Affine], and the curves [Line], [QuadBez] and [CubicBez], all of
// which implement [ParametricCurve].
//
// This package provides two representations for paths: [PathElement] and
// [PathSegment]. Path elements are akin to drawing commands in graphics APIs
// like PostScript, consisting of pen moves ([MoveTo]) and various drawing
// commands ([LineTo], [QuadTo], etc.) Each command moves the current position
// of the pen, which acts as the start position of the following drawing
// command. Segments, on the other hand, are self-contained descriptions of a
// portion of the path, containing explicit start points. [Segments] converts
// from the former to the latter.
//
// Elliptical arcs in path data are approximated with cubic Béziers (see
// [Arc]), so that sampling only ever deals with lines and Béziers.
//
// # Iterators
//
// Functions that don't need random access accept and return iterators.
// Functions that cannot work with iterators directly will instead accept or
// return slices, to make it clear that they allocate.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [Implementation notes for SVG elliptical arcs]
//   - David Douglas and Thomas Peucker, "Algorithms for the reduction of the
//     number of points required to represent a digitized line or its
//     caricature", 1973
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Implementation notes for SVG elliptical arcs]: https://www.w3.org/TR/SVG11/implnote.html#ArcImplementationNotes
package strokedb
