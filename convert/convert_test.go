package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/strokedb"
	"honnef.co/go/strokedb/kanjivg"
)

var errBroken = errors.New("broken source")

type mapSource map[string][]string

func (m mapSource) Strokes(ch string) ([]string, error) {
	if ch == "!" {
		return nil, errBroken
	}
	d, ok := m[ch]
	if !ok {
		return nil, fmt.Errorf("%q: %w", ch, kanjivg.ErrNotFound)
	}
	if len(d) == 0 {
		return nil, fmt.Errorf("%q: %w", ch, kanjivg.ErrNoStrokes)
	}
	return d, nil
}

var testSource = mapSource{
	"一": {"M10,50 L90,50"},
	"コ": {"M10,10 L50,10 L50,50", "M10,50 L50,50"},
	"x": {"M0,0 L10,0", "Q", "M5,5"},
	"y": {"M1,1"},
	"z": {},
}

func testConfig() Config {
	c := DefaultConfig()
	// Puts a sample exactly on the corner of two-segment strokes.
	c.Samples = 41
	return c
}

func newTestConverter(t *testing.T, cfg Config) *Converter {
	t.Helper()
	c, err := New(testSource, cfg)
	require.NoError(t, err)
	return c
}

func TestConvert(t *testing.T) {
	c := newTestConverter(t, testConfig())

	got, failures, err := c.Convert("一")
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, Character{
		Char:    "一",
		Strokes: [][]strokedb.Point{{strokedb.Pt(-0.5, 0), strokedb.Pt(0.5, 0)}},
	}, got)

	got, failures, err = c.Convert("コ")
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, [][]strokedb.Point{
		{strokedb.Pt(-0.5, -0.5), strokedb.Pt(0.5, -0.5), strokedb.Pt(0.5, 0.5)},
		{strokedb.Pt(-0.5, 0.5), strokedb.Pt(0.5, 0.5)},
	}, got.Strokes)
}

func TestConvertKeepsDetailAboveTolerance(t *testing.T) {
	// The bump is 3% of the character's width, i.e. 0.03 normalized units.
	src := mapSource{"^": {"M0,0 L50,3 L100,0"}}
	cfg := testConfig()

	cfg.Tolerance = 0.01
	c, err := New(src, cfg)
	require.NoError(t, err)
	got, _, err := c.Convert("^")
	require.NoError(t, err)
	assert.Len(t, got.Strokes[0], 3)

	cfg.Tolerance = 0.04
	c, err = New(src, cfg)
	require.NoError(t, err)
	got, _, err = c.Convert("^")
	require.NoError(t, err)
	assert.Len(t, got.Strokes[0], 2)
}

func TestConvertStrokeFailures(t *testing.T) {
	c := newTestConverter(t, testConfig())

	got, failures, err := c.Convert("x")
	require.NoError(t, err)
	assert.Len(t, got.Strokes, 1)
	require.Len(t, failures, 2)

	assert.Equal(t, 1, failures[0].Stroke)
	var perr *strokedb.ParseError
	assert.ErrorAs(t, failures[0].Err, &perr)
	assert.Equal(t, 2, failures[1].Stroke)
	assert.ErrorIs(t, failures[1].Err, strokedb.ErrEmptyPath)

	_, failures, err = c.Convert("y")
	assert.ErrorIs(t, err, kanjivg.ErrNoStrokes)
	assert.Len(t, failures, 1)

	_, _, err = c.Convert("?")
	assert.ErrorIs(t, err, kanjivg.ErrNotFound)
}

func TestRunOverflowingStroke(t *testing.T) {
	src := mapSource{
		"a": {"M10,50 L90,50"},
		"b": {"M0,0 C1e308,1e308 1e308,1e308 0,0", "M0,0 L1,1"},
	}
	c, err := New(src, DefaultConfig())
	require.NoError(t, err)
	res, err := c.Run(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, res.DB.Characters())
	require.Len(t, res.StrokeFailures, 1)
	assert.Equal(t, "b", res.StrokeFailures[0].Char)
	assert.Equal(t, 0, res.StrokeFailures[0].Stroke)
	assert.ErrorIs(t, res.StrokeFailures[0].Err, strokedb.ErrNotFinite)

	strokes, _ := res.DB.Get("b")
	assert.Equal(t, [][]strokedb.Point{{strokedb.Pt(-0.5, -0.5), strokedb.Pt(0.5, 0.5)}}, strokes)

	var buf bytes.Buffer
	_, err = res.DB.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "NaN")
}

func TestNewInvalidConfig(t *testing.T) {
	_, err := New(testSource, Config{})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	c := newTestConverter(t, testConfig())
	res, err := c.Run(context.Background(), []string{"コ", "?", "x", "y", "一", "z"})
	require.NoError(t, err)

	assert.Equal(t, []string{"コ", "x", "一"}, res.DB.Characters())
	require.Len(t, res.Skipped, 3)
	assert.Equal(t, "?", res.Skipped[0].Char)
	assert.Equal(t, NotFound, res.Skipped[0].Reason)
	assert.Equal(t, "y", res.Skipped[1].Char)
	assert.Equal(t, NoStrokes, res.Skipped[1].Reason)
	assert.Equal(t, "z", res.Skipped[2].Char)
	assert.Equal(t, NoStrokes, res.Skipped[2].Reason)
	assert.Len(t, res.StrokeFailures, 3)

	s := res.Summary()
	assert.Equal(t, 3, s.Converted)
	assert.Equal(t, map[Reason]int{NotFound: 1, NoStrokes: 2}, s.Skipped)
	assert.Equal(t, 3, s.TotalSkipped())
	assert.Equal(t, 3, s.StrokeFailures)

	out := logs.String()
	assert.Contains(t, out, "skipping character")
	assert.Contains(t, out, "skipping stroke")
	assert.Contains(t, out, "converted character")
}

func TestRunWorkersDeterministic(t *testing.T) {
	chars := []string{"コ", "?", "x", "y", "一", "z", "一"}
	var outputs []string
	for _, workers := range []int{1, 3, 0} {
		cfg := testConfig()
		cfg.Workers = workers
		res, err := newTestConverter(t, cfg).Run(context.Background(), chars)
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = res.DB.WriteTo(&buf)
		require.NoError(t, err)
		outputs = append(outputs, buf.String())
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := newTestConverter(t, testConfig()).Run(ctx, []string{"一", "コ"})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.DB.Len())
}

func TestRunSourceError(t *testing.T) {
	_, err := newTestConverter(t, testConfig()).Run(context.Background(), []string{"一", "!"})
	assert.ErrorIs(t, err, errBroken)
}

func TestRunKanjiVG(t *testing.T) {
	const doc = `<kanjivg xmlns:kvg="http://kanjivg.tagaini.net">
<kanji id="kvg:kanji_04e8c">
<g id="kvg:04e8c" kvg:element="二">
	<path id="kvg:04e8c-s1" d="M29.5,29.75c1.64,0.5,4.63,0.55,6.27,0.5c11.48-0.37,27.73-2.5,37.09-2.5"/>
	<path id="kvg:04e8c-s2" d="M11.5,77.64c3.16,0.84,8.97,0.84,12.13,0.64C40.25,77.25,67,75,87.04,76.1"/>
</g>
</kanji>
</kanjivg>`
	asset, err := kanjivg.Load(strings.NewReader(doc))
	require.NoError(t, err)
	c, err := New(asset, DefaultConfig())
	require.NoError(t, err)

	res, err := c.Run(context.Background(), []string{"二", "三"})
	require.NoError(t, err)
	strokes, ok := res.DB.Get("二")
	require.True(t, ok)
	require.Len(t, strokes, 2)

	box, _ := strokedb.BoundingBoxOf(strokedb.AllPoints(strokes))
	assert.InDelta(t, 1, max(box.Width(), box.Height()), 1e-3)
	for _, s := range strokes {
		assert.GreaterOrEqual(t, len(s), 2)
		assert.Less(t, len(s), DefaultConfig().Samples)
	}
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, NotFound, res.Skipped[0].Reason)
}
