package kanjivg

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The 口 entry comes after 右, which uses 口 as a component, so the lookup of
// 口 must not settle for the first group it sees.
const testAsset = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE kanjivg [
<!ATTLIST g
xmlns:kvg CDATA #FIXED "http://kanjivg.tagaini.net"
kvg:element CDATA #IMPLIED >
]>
<kanjivg xmlns:kvg='http://kanjivg.tagaini.net'>
<kanji id="kvg:kanji_04e00">
<g id="kvg:04e00" kvg:element="一" kvg:radical="general">
	<path id="kvg:04e00-s1" kvg:type="㇐" d="M11,54.25c3.19,0.62,7.74,0.75,11.25,0.5"/>
</g>
</kanji>
<kanji id="kvg:kanji_053f3">
<g id="kvg:053f3" kvg:element="右">
	<g id="kvg:053f3-g1" kvg:element="𠂇">
		<path id="kvg:053f3-s1" d="M52.25,14.5c0.25,1.25,0.23,2.78-0.17,4.46"/>
		<path id="kvg:053f3-s2" d="M16.5,40.75c2.12,0.51,5.63,0.8,8.33,0.52"/>
	</g>
	<g id="kvg:053f3-g2" kvg:element="口">
		<path id="kvg:053f3-s3" d="M45.25,57.25c0.52,0.35,1.05,0.64,1.28,1.08"/>
		<path id="kvg:053f3-s4" d="M47.32,58.33c6.68-1.08,14.26-2.4,17.03-2.4"/>
		<path id="kvg:053f3-s5" d="M47.85,86.5c7.33-0.62,13.41-1.23,20.67-1.73"/>
	</g>
</g>
</kanji>
<kanji id="kvg:kanji_053e3">
<g id="kvg:053e3" kvg:element="口">
	<path id="kvg:053e3-s1" d="M23.25,33.75c1.25,0.5,2.75,1.5,3,2.25"/>
	<path id="kvg:053e3-s2" d="M25.75,35c5-1,49.5-4.25,52.5-4.5"/>
	<path id="kvg:053e3-s3" d="M26.5,79.5c4.75-0.75,43-3.5,50.5-3.75"/>
</g>
</kanji>
<kanji id="kvg:kanji_04e8c">
<g id="kvg:04e8c" kvg:element="二">
	<path id="kvg:04e8c-s1" d=""/>
</g>
</kanji>
<kanji id="kvg:kanji_04e09">
<g id="kvg:04e09" kvg:element="三">
	<g id="kvg:04e09-g1">
		<path id="kvg:04e09-s1" d="M24,24.5c2,0.5,4,0.5,6,0.25"/>
	</g>
	<path id="kvg:04e09-s2" d="   "/>
	<path id="kvg:04e09-s3" d="M30,50 L70,50"/>
</g>
</kanji>
</kanjivg>
`

func loadTestAsset(t *testing.T) *Asset {
	t.Helper()
	a, err := Load(strings.NewReader(testAsset))
	require.NoError(t, err)
	return a
}

func TestStrokes(t *testing.T) {
	a := loadTestAsset(t)

	got, err := a.Strokes("一")
	require.NoError(t, err)
	assert.Equal(t, []string{"M11,54.25c3.19,0.62,7.74,0.75,11.25,0.5"}, got)

	got, err = a.Strokes("右")
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, "M52.25,14.5c0.25,1.25,0.23,2.78-0.17,4.46", got[0])
	assert.Equal(t, "M47.85,86.5c7.33-0.62,13.41-1.23,20.67-1.73", got[4])
}

func TestStrokesComponent(t *testing.T) {
	a := loadTestAsset(t)

	// 𠂇 only exists as a component.
	got, err := a.Strokes("𠂇")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// 口 has an entry of its own, which takes precedence.
	got, err = a.Strokes("口")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"M23.25,33.75c1.25,0.5,2.75,1.5,3,2.25",
		"M25.75,35c5-1,49.5-4.25,52.5-4.5",
		"M26.5,79.5c4.75-0.75,43-3.5,50.5-3.75",
	}, got)
}

func TestStrokesNestedAndBlank(t *testing.T) {
	a := loadTestAsset(t)
	got, err := a.Strokes("三")
	require.NoError(t, err)
	assert.Equal(t, []string{"M24,24.5c2,0.5,4,0.5,6,0.25", "M30,50 L70,50"}, got)
}

func TestStrokesErrors(t *testing.T) {
	a := loadTestAsset(t)

	_, err := a.Strokes("猫")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.Strokes("二")
	assert.ErrorIs(t, err, ErrNoStrokes)
}

func TestStrokesNFC(t *testing.T) {
	// The attribute spells が decomposed, the lookup uses the composed form.
	const doc = "<kanjivg><kanji><g element=\"\u304b\u3099\"><path d=\"M0,0 L1,1\"/></g></kanji></kanjivg>"
	a, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = a.Strokes("\u304c")
	assert.NoError(t, err)
}

func TestCharacters(t *testing.T) {
	a := loadTestAsset(t)
	assert.Equal(t, []string{"一", "右", "口", "二", "三"}, a.Characters())
	assert.Equal(t, 6, a.Len())
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(strings.NewReader(`<kanjivg><kanji><g element="一"></kanji>`))
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "kanjivg.xml")
	require.NoError(t, os.WriteFile(plain, []byte(testAsset), 0o644))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(testAsset))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	compressed := filepath.Join(dir, "kanjivg.xml.gz")
	require.NoError(t, os.WriteFile(compressed, buf.Bytes(), 0o644))

	for _, path := range []string{plain, compressed} {
		a, err := Open(path)
		require.NoError(t, err, path)
		got, err := a.Strokes("口")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	}

	_, err = Open(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
