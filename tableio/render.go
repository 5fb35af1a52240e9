package tableio

import (
	"github.com/dianpeng/sheetql/table"
	"github.com/olekukonko/tablewriter"
	"io"
)

func stringRow(row table.Row, width int) []string {
	out := make([]string, width)
	for idx, c := range row {
		if idx < width {
			out[idx] = c.String()
		}
	}
	return out
}

// Render draws the table as a boxed text grid. The first header row becomes
// the grid header, other header rows are drawn as normal rows on top of the
// data.
func Render(w io.Writer, t table.Table, hc int) {
	width := 0
	for _, row := range t {
		if len(row) > width {
			width = len(row)
		}
	}

	writer := tablewriter.NewWriter(w)
	writer.SetAutoFormatHeaders(false)
	writer.SetAutoWrapText(false)

	rows := t
	if hc > 0 && len(t) > 0 {
		writer.SetHeader(stringRow(t[0], width))
		rows = t[1:]
	}
	for _, row := range rows {
		writer.Append(stringRow(row, width))
	}
	writer.Render()
}
