package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ReadCharacters reads a list of characters, one per line. Surrounding white
// space and a leading byte order mark are removed, blank lines are skipped,
// and entries are normalized to NFC. Only the first occurrence of a repeated
// entry is kept.
func ReadCharacters(r io.Reader) ([]string, error) {
	var chars []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := sc.Text()
		if line == 1 {
			s = strings.TrimPrefix(s, "\ufeff")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !utf8.ValidString(s) {
			return nil, fmt.Errorf("line %d: invalid UTF-8", line)
		}
		s = norm.NFC.String(s)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		chars = append(chars, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return chars, nil
}
