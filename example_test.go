package strokedb_test

import (
	"fmt"

	"honnef.co/go/strokedb"
)

func Example() {
	p, err := strokedb.ParseSVGPath("M10,10 L30,10 L30,50")
	if err != nil {
		panic(err)
	}
	sampled, err := strokedb.Sample(p, 5)
	if err != nil {
		panic(err)
	}
	fmt.Println(sampled)

	simplified := strokedb.Simplify(sampled, 1)
	fmt.Println(simplified)

	strokes := strokedb.Normalize([][]strokedb.Point{simplified}, 0.5)
	strokedb.RoundStrokes(strokes, 4)
	fmt.Println(strokes[0])

	// Output:
	// [(10, 10) (20, 10) (30, 10) (30, 30) (30, 50)]
	// [(10, 10) (30, 10) (30, 50)]
	// [(-0.25, -0.5) (0.25, -0.5) (0.25, 0.5)]
}

func ExampleSimplify() {
	pts := []strokedb.Point{
		strokedb.Pt(0, 0),
		strokedb.Pt(1, 0.05),
		strokedb.Pt(2, -0.05),
		strokedb.Pt(3, 0),
	}
	fmt.Println(strokedb.Simplify(pts, 0.1))
	// Output: [(0, 0) (3, 0)]
}
