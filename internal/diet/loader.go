// internal/diet/loader.go
package diet

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseError describes a malformed or unreadable diet source.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// LoadTSV reads a two-column diet table: exchange identifier, uptake magnitude.
// Blank lines and '#' comments are skipped. If the first data line's second
// field is not numeric it is taken as a header row and skipped. Duplicate
// identifiers are rejected; the augmentation and upper-bound lookups key on the
// identifier and would be ambiguous otherwise.
func LoadTSV(path string) (Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: err.Error()}
	}
	defer func() { _ = fh.Close() }()

	var t Table
	seen := make(map[string]int)
	sc := bufio.NewScanner(fh)
	ln := 0
	first := true
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, &ParseError{Path: path, Line: ln, Msg: fmt.Sprintf("want 2 fields, got %d", len(f))}
		}
		v, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			if first {
				// header row
				first = false
				continue
			}
			return nil, &ParseError{Path: path, Line: ln, Msg: fmt.Sprintf("bad bound %q", f[1])}
		}
		first = false
		if prev, dup := seen[f[0]]; dup {
			return nil, &ParseError{Path: path, Line: ln, Msg: fmt.Sprintf("duplicate identifier %q (first at line %d)", f[0], prev)}
		}
		seen[f[0]] = ln
		t = append(t, Constraint{ID: f[0], Lower: v})
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: path, Msg: err.Error()}
	}
	if len(t) == 0 {
		return nil, &ParseError{Path: path, Msg: "no constraint rows"}
	}
	return t, nil
}
