// Package format renders pre-stringified column cells into the aligned
// text grid used by Series and DataFrame display. It consumes only row
// counts and per-column string sequences, keeping formatting out of the
// data model.
package format

import (
	"fmt"
	"strings"
)

// Options controls grid rendering.
type Options struct {
	ShowHeaders bool
	MoreCols    int // columns elided from display
	MoreRows    int // rows elided from display
}

// Grid renders columns of equal-length cell sequences into an aligned
// table with a row-index gutter.
func Grid(headers []string, cols [][]string, opts Options) string {
	nrows := 0
	if len(cols) > 0 {
		nrows = len(cols[0])
	}

	widths := make([]int, len(cols))
	for i, col := range cols {
		if opts.ShowHeaders {
			widths[i] = len(headers[i])
		}
		for _, cell := range col {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	gutter := len(fmt.Sprint(nrows - 1))
	if gutter < 1 {
		gutter = 1
	}

	var sb strings.Builder
	if opts.ShowHeaders {
		sb.WriteString(strings.Repeat(" ", gutter))
		for i, h := range headers {
			sb.WriteByte(' ')
			sb.WriteString(pad(h, widths[i]))
		}
		if opts.MoreCols > 0 {
			sb.WriteString(fmt.Sprintf(" [%d more cols]", opts.MoreCols))
		}
		sb.WriteByte('\n')
	}
	for r := 0; r < nrows; r++ {
		sb.WriteString(pad(fmt.Sprint(r), gutter))
		for i, col := range cols {
			sb.WriteByte(' ')
			sb.WriteString(pad(col[r], widths[i]))
		}
		sb.WriteByte('\n')
	}
	if opts.MoreRows > 0 {
		sb.WriteString(fmt.Sprintf("[%d more rows]\n", opts.MoreRows))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
