package tableio

import (
	"encoding/csv"
	"fmt"
	"github.com/dianpeng/sheetql/table"
	"io"
	"strings"
)

// ReadCSV reads a separator delimited document. Every field goes through
// table.Parse so numbers and booleans come back typed.
func ReadCSV(r io.Reader, sep rune) (table.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	if sep == '\t' {
		reader.LazyQuotes = true
	}

	out := table.Table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(out)+1, err)
		}
		row := make(table.Row, 0, len(record))
		for _, field := range record {
			row = append(row, table.Parse(field))
		}
		out = append(out, row)
	}
	return out, nil
}

func WriteCSV(w io.Writer, t table.Table) error {
	writer := csv.NewWriter(w)
	for _, row := range t {
		record := make([]string, 0, len(row))
		for _, c := range row {
			record = append(record, c.String())
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

var tsvEscape = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// WriteTSV writes one line per row with tab separated fields. Tabs and line
// breaks inside of a value become a space, the output is meant for awk.
func WriteTSV(w io.Writer, t table.Table) error {
	for _, row := range t {
		fields := make([]string, 0, len(row))
		for _, c := range row {
			fields = append(fields, tsvEscape.Replace(c.String()))
		}
		if _, err := io.WriteString(w, strings.Join(fields, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
