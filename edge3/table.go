// Package edge3 renders the Encore "Edge3" CSV tables (§3.3, §4.5):
// fixed-width columns computed post-hoc from every row's cell widths,
// written in the quirky format the original Python tool produces.
// Building the rows from the elaborated tree is the root package's
// job (see GenerateEdge3); this package only knows about strings.
package edge3

import (
	"fmt"
	"io"
	"strings"
)

// Row is one data row, keyed by column title; a missing key renders
// as an empty cell.
type Row map[string]string

// Table is one Edge3 table: a comment header, a title row, and zero
// or more data rows. Column widths are the max of the title and
// every cell string in that column, computed once by Write.
type Table struct {
	Comment string
	Titles  []string
	Rows    []Row
}

func NewTable(comment string, titles ...string) *Table {
	return &Table{Comment: comment, Titles: append([]string{}, titles...)}
}

func (t *Table) Append(row Row) { t.Rows = append(t.Rows, row) }

func (t *Table) widths() []int {
	w := make([]int, len(t.Titles))
	for i, title := range t.Titles {
		w[i] = len(title)
	}
	for _, r := range t.Rows {
		for i, title := range t.Titles {
			if n := len(r[title]); n > w[i] {
				w[i] = n
			}
		}
	}
	return w
}

// writeRow renders one row of values (titles on the header pass, cell
// strings on data passes): every column but the last is right-padded
// to its width and comma-terminated; the last column gets a bare
// leading space and no padding, and is omitted entirely when empty —
// matching the original Python writer's `if val:` guard (verified
// against gen_edge3.py; an empty description produces no trailing
// character at all, not even a lone space).
func writeRow(w io.Writer, titles []string, widths []int, get func(title string) string) {
	for i, title := range titles {
		val := get(title)
		if i == len(titles)-1 {
			if val != "" {
				fmt.Fprintf(w, " %s", val)
			}
			continue
		}
		fmt.Fprintf(w, " %*s,", widths[i], val)
	}
	fmt.Fprint(w, "\n")
}

// Write renders the table: comment line, header row, data rows, blank
// line. With no Rows it still writes the comment, the title row and
// the blank line; WriteIfNeeded is the variant that skips an empty
// table.
func (t *Table) Write(w io.Writer) {
	fmt.Fprintf(w, "%s\n", t.Comment)
	widths := t.widths()
	writeRow(w, t.Titles, widths, func(title string) string { return title })
	for _, r := range t.Rows {
		writeRow(w, t.Titles, widths, func(title string) string { return r[title] })
	}
	fmt.Fprint(w, "\n")
}

// WriteIfNeeded skips the table entirely (no header, no blank line)
// when it has no rows, matching write_if_needed for the IRQ/roles
// tables.
func (t *Table) WriteIfNeeded(w io.Writer) {
	if len(t.Rows) == 0 {
		return
	}
	t.Write(w)
}

// CleanString keeps only a description's first line and replaces
// commas with spaces, so it never breaks the CSV's column count.
func CleanString(desc string) string {
	if desc == "" {
		return ""
	}
	line := desc
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		line = desc[:i]
	}
	line = strings.TrimSuffix(line, "\r")
	return strings.ReplaceAll(line, ",", " ")
}
