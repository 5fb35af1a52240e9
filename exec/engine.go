package exec

import (
	"fmt"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"github.com/ohler55/ojg/oj"
)

const defHeaderCount = 1

// Defaults supplies the header count used when an operator is invoked
// without one.
type Defaults interface {
	HeaderCount() (int, error)
}

// Engine runs the relational operators. Every call parses its expressions,
// plans them against the header of the table and evaluates them row by row,
// nothing is kept in between calls.
type Engine struct {
	Host     plan.Host // cell lookups for WHERE, may be nil
	Defaults Defaults  // may be nil
}

func NewEngine(host plan.Host, defaults Defaults) *Engine {
	return &Engine{
		Host:     host,
		Defaults: defaults,
	}
}

// header count, explicit argument first, then the configured default
func (self *Engine) headerCount(hc []int) (int, error) {
	if len(hc) > 0 {
		if hc[0] < 0 {
			return 0, fmt.Errorf("invalid header count %d", hc[0])
		}
		return hc[0], nil
	}
	if self.Defaults != nil {
		return self.Defaults.HeaderCount()
	}
	return defHeaderCount, nil
}

// HeaderCount reports the header count an operator called with hc would use.
func (self *Engine) HeaderCount(hc ...int) (int, error) {
	return self.headerCount(hc)
}

func (self *Engine) prepare(
	t table.Table,
	hc []int,
) (table.Table, table.Table, int, error) {
	cnt, err := self.headerCount(hc)
	if err != nil {
		return nil, nil, 0, err
	}
	header, data := t.Split(cnt)
	return header, data, cnt, nil
}

// key used to bucket rows by value, cells of different kinds never collide.
// -0 and 0 compare equal so they share a key.
func cellKey(cells ...table.Cell) string {
	v := make([]interface{}, 0, len(cells))
	for _, c := range cells {
		if c.Ty == table.CellNumber && c.Num == 0 {
			c = table.Num(0)
		}
		v = append(v, []interface{}{c.Ty, c.Value()})
	}
	return oj.JSON(v)
}

func parse(text string, rule int) (*sql.Code, error) {
	return sql.Parse(text, rule)
}
