// Package kanjivg reads stroke data from KanjiVG files.
//
// A KanjiVG file contains one <kanji> element per character. Each holds a tree
// of <g> groups, labelled with the character or component they depict in a
// kvg:element attribute, whose leaves are the <path> elements of the
// individual strokes, in stroke order:
//
//	<kanji id="kvg:kanji_04e00">
//	<g id="kvg:04e00" kvg:element="一">
//		<path id="kvg:04e00-s1" kvg:type="㇐" d="M11,54.25c3.19,0.62,…"/>
//	</g>
//	</kanji>
//
// The same file format is used by the single-character SVG files of the
// KanjiVG distribution, so those can be loaded as well.
package kanjivg

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrNotFound is returned when no group in the asset depicts a character.
	ErrNotFound = errors.New("character not found")
	// ErrNoStrokes is returned when a character's group has no path data.
	ErrNoStrokes = errors.New("character has no strokes")
)

// span is the range of an asset's paths that lie within a group.
type span struct {
	start, end int
	// top is set for groups that are the direct child of a <kanji> element,
	// i.e. that depict the entry's own character rather than a component.
	top bool
}

// Asset is an index of the stroke groups of a KanjiVG file. It is safe for
// concurrent use.
type Asset struct {
	// paths holds the non-empty path data of the file, in document order. As
	// groups nest, the paths of any group are contiguous.
	paths  []string
	spans  []span
	groups map[string]int
	// chars lists the characters with a top-level group, in document order.
	chars []string
}

// Open loads the KanjiVG file at path. Files ending in .gz are decompressed.
func Open(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("kanjivg: %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	a, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Load reads a KanjiVG document and indexes its groups.
//
// Groups are matched by the local name of their element attribute, so the
// namespace prefix doesn't matter. If several groups depict the same
// character, a character's own top-level group is preferred over groups
// depicting it as a component of another character; otherwise, the first
// group in document order wins.
func Load(r io.Reader) (*Asset, error) {
	a := &Asset{groups: make(map[string]int)}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	// Names of the open elements, and for open <g> elements the index of
	// their span, or -1 for groups without an element attribute.
	var names []string
	var open []int
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("kanjivg: %w", err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "g":
				idx := -1
				if ch, ok := attr(tok, "element"); ok && ch != "" {
					top := len(names) > 0 && names[len(names)-1] == "kanji"
					idx = a.addGroup(norm.NFC.String(ch), top)
				}
				open = append(open, idx)
			case "path":
				if d, ok := attr(tok, "d"); ok {
					if d = strings.TrimSpace(d); d != "" {
						a.paths = append(a.paths, d)
					}
				}
			}
			names = append(names, tok.Name.Local)
		case xml.EndElement:
			names = names[:len(names)-1]
			if tok.Name.Local == "g" {
				if idx := open[len(open)-1]; idx != -1 {
					a.spans[idx].end = len(a.paths)
				}
				open = open[:len(open)-1]
			}
		}
	}
	return a, nil
}

func (a *Asset) addGroup(ch string, top bool) int {
	idx := len(a.spans)
	a.spans = append(a.spans, span{start: len(a.paths), end: len(a.paths), top: top})
	prev, ok := a.groups[ch]
	switch {
	case !ok:
		a.groups[ch] = idx
		if top {
			a.chars = append(a.chars, ch)
		}
	case top && !a.spans[prev].top:
		a.groups[ch] = idx
		a.chars = append(a.chars, ch)
	}
	return idx
}

func attr(el xml.StartElement, local string) (string, bool) {
	for _, at := range el.Attr {
		if at.Name.Local == local {
			return at.Value, true
		}
	}
	return "", false
}

// Strokes returns the path data of the strokes of ch, in stroke order. It
// returns an error wrapping [ErrNotFound] if the asset doesn't contain the
// character, and one wrapping [ErrNoStrokes] if it contains no path data for
// it. The returned slice must not be modified.
func (a *Asset) Strokes(ch string) ([]string, error) {
	idx, ok := a.groups[norm.NFC.String(ch)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", ch, ErrNotFound)
	}
	s := a.spans[idx]
	if s.start == s.end {
		return nil, fmt.Errorf("%q: %w", ch, ErrNoStrokes)
	}
	return a.paths[s.start:s.end:s.end], nil
}

// Characters returns the characters that have an entry of their own in the
// asset, in document order. Characters with variant entries are listed once.
func (a *Asset) Characters() []string {
	return a.chars
}

// Len returns the number of indexed characters, including those that only
// appear as components.
func (a *Asset) Len() int {
	return len(a.groups)
}
