package output

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// SeparatorChar is the character used for separator lines.
const SeparatorChar = "─"

// defaultWidth is used when the terminal width cannot be determined.
const defaultWidth = 60

// TermWidth returns the current terminal width, or a fixed default when
// stdout is not a terminal.
func TermWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Separator returns a separator line spanning the terminal.
func Separator() string {
	w := TermWidth()
	if w > 120 {
		w = 120
	}
	return strings.Repeat(SeparatorChar, w)
}

// Table renders rows as aligned columns with a header row.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row. Short rows are padded with empty cells.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.headers) {
		cells = append(cells, "")
	}
	t.rows = append(t.rows, cells)
}

// String renders the table.
func (t *Table) String() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat(SeparatorChar, w))
	}
	b.WriteString("\n")
	for _, row := range t.rows {
		writeRow(row)
	}

	return b.String()
}
