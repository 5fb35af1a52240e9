package tableio

import (
	"errors"
	"fmt"
	"github.com/dianpeng/sheetql/table"
	"github.com/segmentio/parquet-go"
	"io"
	"os"
	"strings"
)

const parquetBatch = 128

// ReadParquet loads a flat parquet file. The first row of the table holds
// the leaf column names, nested schemas are flattened in leaf order.
func ReadParquet(path string) (table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	schema := pqFile.Schema()
	header := table.Row{}
	for _, col := range schema.Columns() {
		header = append(header, table.Str(strings.Join(col, ".")))
	}
	out := table.Table{header}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	buf := make([]parquet.Row, parquetBatch)
	for {
		n, err := reader.ReadRows(buf)
		for _, r := range buf[:n] {
			out = append(out, parquetRow(r, len(header)))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
	}
	return out, nil
}

func parquetRow(r parquet.Row, width int) table.Row {
	row := make(table.Row, width)
	for idx := range row {
		row[idx] = table.Null()
	}
	for _, v := range r {
		col := v.Column()
		if col < 0 || col >= width {
			continue
		}
		row[col] = parquetCell(v)
	}
	return row
}

func parquetCell(v parquet.Value) table.Cell {
	if v.IsNull() {
		return table.Null()
	}
	switch v.Kind() {
	case parquet.Boolean:
		return table.Bool(v.Boolean())
	case parquet.Int32:
		return table.Num(float64(v.Int32()))
	case parquet.Int64:
		return table.Num(float64(v.Int64()))
	case parquet.Float:
		return table.Num(float64(v.Float()))
	case parquet.Double:
		return table.Num(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return table.Str(string(v.ByteArray()))
	default:
		return table.Str(v.String())
	}
}
