// Package convert turns the strokes of a stroke-order font into a
// [Database] of simplified, normalized point lists.
//
// Each character is converted independently: its stroke paths are parsed and
// sampled, each stroke is simplified with the Douglas–Peucker algorithm, and
// the character is normalized into a canonical frame and rounded.
//
// Problems with individual characters or strokes don't fail a run. Strokes
// whose path data can't be used are left out of their character and reported
// as a [StrokeFailure]; characters that can't be converted at all are
// reported as a [Skip].
package convert

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"honnef.co/go/strokedb"
	"honnef.co/go/strokedb/kanjivg"
)

// StrokeSource provides the SVG path data of a character's strokes, in stroke
// order. It is implemented by [kanjivg.Asset].
//
// Strokes must return errors wrapping [kanjivg.ErrNotFound] or
// [kanjivg.ErrNoStrokes] for characters that can't be provided. Any other
// error aborts a run.
type StrokeSource interface {
	Strokes(ch string) ([]string, error)
}

var _ StrokeSource = (*kanjivg.Asset)(nil)

// Reason is the reason a character was skipped.
type Reason int

const (
	// The character doesn't exist in the stroke source.
	NotFound Reason = iota + 1
	// The character exists but none of its strokes could be converted.
	NoStrokes
)

func (r Reason) String() string {
	switch r {
	case NotFound:
		return "not found"
	case NoStrokes:
		return "no strokes"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Skip records a character that wasn't converted.
type Skip struct {
	Char   string
	Reason Reason
	Err    error
}

// StrokeFailure records a stroke that was left out of its character.
type StrokeFailure struct {
	Char string
	// Stroke is the index of the stroke in the character's stroke order.
	Stroke int
	Err    error
}

// Character is the converted stroke data of a single character.
type Character struct {
	Char    string
	Strokes [][]strokedb.Point
}

// Converter converts characters using a stroke source.
type Converter struct {
	src StrokeSource
	cfg Config
}

// New returns a converter reading strokes from src.
func New(src StrokeSource, cfg Config) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{src: src, cfg: cfg}, nil
}

// Convert converts a single character.
//
// Strokes that can't be parsed, that have no segments or whose samples aren't
// finite are left out and returned as failures. If the character has no
// usable strokes, Convert returns an error wrapping [kanjivg.ErrNoStrokes].
//
// The tolerance is given in normalized units but decimation happens before
// normalization, so it is scaled by the character's sampled bounding box.
// Normalization uses the bounding box of the simplified strokes, which can be
// smaller when decimation drops extreme interior samples. The effective
// tolerance in output units can then exceed the configured one by the ratio
// of the two boxes.
func (c *Converter) Convert(ch string) (Character, []StrokeFailure, error) {
	paths, err := c.src.Strokes(ch)
	if err != nil {
		return Character{}, nil, err
	}

	var failures []StrokeFailure
	sampled := make([][]strokedb.Point, 0, len(paths))
	for i, d := range paths {
		pts, err := sampleStroke(d, c.cfg.Samples)
		if err != nil {
			failures = append(failures, StrokeFailure{Char: ch, Stroke: i, Err: err})
			continue
		}
		sampled = append(sampled, pts)
	}
	if len(sampled) == 0 {
		return Character{}, failures, fmt.Errorf("%q: none of %d strokes are usable: %w", ch, len(paths), kanjivg.ErrNoStrokes)
	}

	box, _ := strokedb.BoundingBoxOf(strokedb.AllPoints(sampled))
	tolerance := c.cfg.Tolerance * strokedb.NormalizeScale(box) / (2 * c.cfg.Unit)
	simplified := make([][]strokedb.Point, len(sampled))
	for i, pts := range sampled {
		simplified[i] = strokedb.Simplify(pts, tolerance)
	}

	strokes := strokedb.Normalize(simplified, c.cfg.Unit)
	strokedb.RoundStrokes(strokes, c.cfg.Precision)
	return Character{Char: ch, Strokes: strokes}, failures, nil
}

func sampleStroke(d string, n int) ([]strokedb.Point, error) {
	p, err := strokedb.ParseSVGPath(d)
	if err != nil {
		return nil, err
	}
	return strokedb.Sample(p, n)
}

// Result is the outcome of a run.
type Result struct {
	// DB holds the converted characters, in input order.
	DB *Database
	// Skipped lists the characters that weren't converted, in input order.
	Skipped []Skip
	// StrokeFailures lists the strokes that were left out of converted or
	// skipped characters.
	StrokeFailures []StrokeFailure
}

// Summary counts the outcomes of a run.
type Summary struct {
	Converted      int
	Skipped        map[Reason]int
	StrokeFailures int
}

// Summary returns the counts of converted and skipped characters.
func (r *Result) Summary() Summary {
	s := Summary{
		Converted:      r.DB.Len(),
		Skipped:        make(map[Reason]int),
		StrokeFailures: len(r.StrokeFailures),
	}
	for _, sk := range r.Skipped {
		s.Skipped[sk.Reason]++
	}
	return s
}

// TotalSkipped returns the number of skipped characters.
func (s Summary) TotalSkipped() int {
	n := 0
	for _, v := range s.Skipped {
		n += v
	}
	return n
}

type outcome struct {
	done     bool
	char     Character
	failures []StrokeFailure
	skip     *Skip
}

// Run converts chars and collects the results.
//
// Characters are converted by up to the configured number of workers. The
// result doesn't depend on the number of workers.
//
// If ctx is canceled, no further characters are started and Run returns the
// characters converted so far along with the context's error. Errors from the
// stroke source other than missing characters or strokes abort the run.
func (c *Converter) Run(ctx context.Context, chars []string) (*Result, error) {
	workers := c.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := Logger()
	log.Info("converting", "characters", len(chars), "workers", workers)

	outcomes := make([]outcome, len(chars))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ch := range chars {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			o, err := c.convertOne(ch)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{DB: new(Database)}
	for _, o := range outcomes {
		if !o.done {
			continue
		}
		res.StrokeFailures = append(res.StrokeFailures, o.failures...)
		if o.skip != nil {
			res.Skipped = append(res.Skipped, *o.skip)
			continue
		}
		res.DB.Set(o.char.Char, o.char.Strokes)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	log.Info("converted", "characters", res.DB.Len(), "skipped", len(res.Skipped))
	return res, nil
}

func (c *Converter) convertOne(ch string) (outcome, error) {
	log := Logger()
	char, failures, err := c.Convert(ch)
	for _, f := range failures {
		log.Warn("skipping stroke", "char", ch, "stroke", f.Stroke+1, "err", f.Err)
	}
	o := outcome{done: true, failures: failures}
	switch {
	case err == nil:
		o.char = char
		log.Debug("converted character", "char", ch, "strokes", len(char.Strokes))
	case errors.Is(err, kanjivg.ErrNotFound):
		o.skip = &Skip{Char: ch, Reason: NotFound, Err: err}
	case errors.Is(err, kanjivg.ErrNoStrokes):
		o.skip = &Skip{Char: ch, Reason: NoStrokes, Err: err}
	default:
		return outcome{}, err
	}
	if o.skip != nil {
		log.Warn("skipping character", "char", ch, "reason", o.skip.Reason, "err", err)
	}
	return o, nil
}
