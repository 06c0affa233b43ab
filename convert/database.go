package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"honnef.co/go/strokedb"
)

// Database maps characters to their normalized strokes. It remembers the
// order in which characters were added and encodes to a JSON object with keys
// in that order:
//
//	{
//	  "一": [
//	    [
//	      {
//	        "x": -0.5,
//	        "y": 0.0021
//	      },
//	      …
//	    ]
//	  ]
//	}
//
// The zero value is an empty database ready to use.
type Database struct {
	chars   []string
	strokes map[string][][]strokedb.Point
}

// Set stores the strokes of ch. Replacing a character keeps its position.
func (db *Database) Set(ch string, strokes [][]strokedb.Point) {
	if db.strokes == nil {
		db.strokes = make(map[string][][]strokedb.Point)
	}
	if _, ok := db.strokes[ch]; !ok {
		db.chars = append(db.chars, ch)
	}
	db.strokes[ch] = strokes
}

// Get returns the strokes of ch.
func (db *Database) Get(ch string) ([][]strokedb.Point, bool) {
	s, ok := db.strokes[ch]
	return s, ok
}

// Len returns the number of characters.
func (db *Database) Len() int { return len(db.chars) }

// Characters returns the characters in insertion order.
func (db *Database) Characters() []string { return db.chars }

// All returns an iterator over characters and their strokes, in insertion
// order.
func (db *Database) All() iter.Seq2[string, [][]strokedb.Point] {
	return func(yield func(string, [][]strokedb.Point) bool) {
		for _, ch := range db.chars {
			if !yield(ch, db.strokes[ch]) {
				return
			}
		}
	}
}

func (db *Database) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for i, ch := range db.chars {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(ch); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		strokes := db.strokes[ch]
		if strokes == nil {
			strokes = [][]strokedb.Point{}
		}
		if err := enc.Encode(strokes); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	// Encode terminates each value with a newline.
	return bytes.ReplaceAll(buf.Bytes(), []byte("\n"), nil), nil
}

func (db *Database) UnmarshalJSON(b []byte) error {
	*db = Database{}
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("stroke database must be a JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		ch := tok.(string)
		var strokes [][]strokedb.Point
		if err := dec.Decode(&strokes); err != nil {
			return fmt.Errorf("character %q: %w", ch, err)
		}
		db.Set(ch, strokes)
	}
	_, err = dec.Token()
	return err
}

// WriteTo writes the database as indented JSON.
func (db *Database) WriteTo(w io.Writer) (int64, error) {
	b, err := db.MarshalJSON()
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return 0, err
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}

// ReadDatabase reads a database written by [Database.WriteTo].
func ReadDatabase(r io.Reader) (*Database, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	db := new(Database)
	if err := db.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return db, nil
}
