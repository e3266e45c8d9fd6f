// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"

	"dietadapt/internal/diet"
)

// Num formats a bound the way the table is written downstream: shortest
// decimal text that round-trips the value.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTable prints one TSV line per constraint row. The upper-bound column is
// present only when the table carries it (Microbiota setup); the header, when
// requested, matches the column count.
func WriteTable(w io.Writer, t diet.Table, header bool) error {
	withUpper := len(t) > 0 && t[0].HasUpper
	if header {
		h := "reaction\tlower_bound"
		if withUpper {
			h += "\tupper_bound"
		}
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}
	for _, c := range t {
		var err error
		if c.HasUpper {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, Num(c.Lower), Num(c.Upper))
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", c.ID, Num(c.Lower))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
