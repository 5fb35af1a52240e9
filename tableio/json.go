package tableio

import (
	"fmt"
	"github.com/dianpeng/sheetql/table"
	"github.com/ohler55/ojg/oj"
	"io"
)

// WriteJSON writes the table as a single JSON array of row arrays.
func WriteJSON(w io.Writer, t table.Table) error {
	_, err := io.WriteString(w, oj.JSON(t.Values())+"\n")
	return err
}

// ReadJSON is the inverse of WriteJSON.
func ReadJSON(r io.Reader) (table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	v, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	rows, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expect an array of rows, got %T", v)
	}

	values := make([][]interface{}, 0, len(rows))
	for idx, r := range rows {
		row, ok := r.([]interface{})
		if !ok {
			return nil, fmt.Errorf("row %d is not an array", idx)
		}
		values = append(values, row)
	}
	return table.New(values)
}
