package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type column struct {
	title string
	right bool
}

// table lays out cells in columns padded to their widest display width.
type table struct {
	columns []column
	rows    [][]string
}

func newTable(columns ...column) *table {
	return &table{columns: columns}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// lines renders the header followed by every row. Missing cells are blank.
func (t *table) lines() []string {
	if len(t.columns) == 0 {
		return nil
	}
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.title)
	}
	for _, row := range t.rows {
		for i := range t.columns {
			if w := runewidth.StringWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	titles := make([]string, len(t.columns))
	for i, col := range t.columns {
		titles[i] = col.title
	}
	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.renderRow(titles, widths))
	for _, row := range t.rows {
		out = append(out, t.renderRow(row, widths))
	}
	return out
}

func (t *table) renderRow(row []string, widths []int) string {
	var b strings.Builder
	for i, col := range t.columns {
		if i > 0 {
			b.WriteByte(' ')
		}
		value := cell(row, i)
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(value))
		if col.right {
			b.WriteString(pad + value)
		} else {
			b.WriteString(value + pad)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
