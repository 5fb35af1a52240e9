package table

import (
	"fmt"
)

type Row []Cell

// Table is just a list of rows, the leading rows may be treated as the header
// block depending on the header count the caller is working with. Width of
// each row is not enforced.
type Table []Row

// New builds a table out of native go values, mostly used by callers feeding
// literal data and tests.
func New(values [][]interface{}) (Table, error) {
	out := make(Table, 0, len(values))
	for ridx, r := range values {
		row := make(Row, 0, len(r))
		for cidx, v := range r {
			c, err := FromValue(v)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %d: %s", ridx, cidx, err)
			}
			row = append(row, c)
		}
		out = append(out, row)
	}
	return out, nil
}

func MustNew(values [][]interface{}) Table {
	t, err := New(values)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// Values converts back into native go values.
func (self Table) Values() [][]interface{} {
	out := make([][]interface{}, 0, len(self))
	for _, r := range self {
		out = append(out, r.Values())
	}
	return out
}

func (self Row) Values() []interface{} {
	out := make([]interface{}, 0, len(self))
	for _, c := range self {
		out = append(out, c.Value())
	}
	return out
}

// Cell at the index, ok is false when the row is too short
func (self Row) At(idx int) (Cell, bool) {
	if idx < 0 || idx >= len(self) {
		return Null(), false
	}
	return self[idx], true
}

func (self Row) Clone() Row {
	out := make(Row, len(self))
	copy(out, self)
	return out
}

func (self Table) Clone() Table {
	out := make(Table, 0, len(self))
	for _, r := range self {
		out = append(out, r.Clone())
	}
	return out
}

// Split the table into the header block and the data block. A header count
// larger than the table yields an empty data block.
func (self Table) Split(headerCount int) (Table, Table) {
	if headerCount < 0 {
		headerCount = 0
	}
	if headerCount > len(self) {
		headerCount = len(self)
	}
	return self[:headerCount], self[headerCount:]
}

// Prepend the header block in front of data, a new table is returned.
func Prepend(header Table, data Table) Table {
	out := make(Table, 0, len(header)+len(data))
	out = append(out, header...)
	out = append(out, data...)
	return out
}

// HeaderRow returns the first header row, nil if there's no header at all.
func (self Table) HeaderRow(headerCount int) Row {
	if headerCount <= 0 || len(self) == 0 {
		return nil
	}
	return self[0]
}
