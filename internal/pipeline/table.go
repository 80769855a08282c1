package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// headerCellMaxLen is the rune count below which a cell still looks like
// a column title.
const headerCellMaxLen = 30

var separatorCellPattern = regexp.MustCompile(`^-+$`)

// RowKind classifies a pipe-delimited table row.
type RowKind int

const (
	// DataRow renders its cells as <td>.
	DataRow RowKind = iota
	// HeaderRow renders its cells as <th>.
	HeaderRow
	// SeparatorRow is a line of dashes between header and body; it is dropped.
	SeparatorRow
)

// String returns the row kind name.
func (k RowKind) String() string {
	switch k {
	case HeaderRow:
		return "header"
	case SeparatorRow:
		return "separator"
	default:
		return "data"
	}
}

// ClassifyRow splits a pipe-delimited row into trimmed non-blank cells and
// decides how it renders. A row whose cells are all dashes is a separator.
// Otherwise the row is a header when it contains no backtick and every
// cell either contains "**" or is shorter than 30 characters.
func ClassifyRow(row string) (RowKind, []string) {
	cells := splitCells(row)

	if allSeparators(cells) {
		return SeparatorRow, cells
	}
	if strings.Contains(row, "`") {
		return DataRow, cells
	}
	for _, cell := range cells {
		if !strings.Contains(cell, "**") && utf8.RuneCountInString(cell) >= headerCellMaxLen {
			return DataRow, cells
		}
	}
	return HeaderRow, cells
}

// splitCells splits on every pipe and drops blank cells, including the
// empty edges produced by leading and trailing pipes.
func splitCells(row string) []string {
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		if cell := strings.TrimSpace(part); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// allSeparators reports whether every cell is made of dashes only.
// A row with no cells counts as a separator.
func allSeparators(cells []string) bool {
	for _, cell := range cells {
		if !separatorCellPattern.MatchString(cell) {
			return false
		}
	}
	return true
}

// renderRow builds a <tr> with one <th> or <td> per cell.
func renderRow(kind RowKind, cells []string) string {
	tag := "td"
	if kind == HeaderRow {
		tag = "th"
	}

	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range cells {
		b.WriteString("<" + tag + ">" + cell + "</" + tag + ">")
	}
	b.WriteString("</tr>")
	return b.String()
}

// renderTableRows rewrites every pipe-delimited span into a table row.
// A line left empty by a dropped separator row is removed with its line
// break, so the rows around it stay adjacent and form a single table.
func renderTableRows(doc string) string {
	lines := strings.Split(doc, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		dropped := false
		line = tableRowPattern.ReplaceAllStringFunc(line, func(row string) string {
			kind, cells := ClassifyRow(row)
			if kind == SeparatorRow {
				dropped = true
				return ""
			}
			return renderRow(kind, cells)
		})
		if dropped && strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// wrapTables wraps each run of consecutive row lines in one table.
func wrapTables(doc string) string {
	return tableGroupPattern.ReplaceAllString(doc, "<table><tbody>${0}</tbody></table>")
}
