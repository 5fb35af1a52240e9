package plan

import (
	"github.com/dianpeng/sheetql/table"
	"strings"
)

// Host is the spreadsheet the query runs inside of, it only needs to answer
// what value a cell currently holds.
type Host interface {
	CellValue(address string) (table.Cell, error)
}

type HostFunc func(address string) (table.Cell, error)

func (self HostFunc) CellValue(address string) (table.Cell, error) {
	return self(address)
}

// MapHost is a fixed set of cell values keyed by address, ie "A5". Missing
// addresses read as an empty cell.
type MapHost map[string]table.Cell

func (self MapHost) CellValue(address string) (table.Cell, error) {
	if _, _, err := table.ParseAddress(address); err != nil {
		return table.Null(), err
	}
	if c, ok := self[strings.ToUpper(strings.TrimSpace(address))]; ok {
		return c, nil
	}
	return table.Null(), nil
}

// SheetHost resolves addresses against an in memory sheet, A1 is the first
// cell of the first row.
type SheetHost struct {
	Sheet table.Table
}

func (self *SheetHost) CellValue(address string) (table.Cell, error) {
	col, row, err := table.ParseAddress(address)
	if err != nil {
		return table.Null(), err
	}
	if row >= len(self.Sheet) {
		return table.Null(), nil
	}
	c, _ := self.Sheet[row].At(col)
	return c, nil
}
