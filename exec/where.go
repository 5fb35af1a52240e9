package exec

import (
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
)

// Where keeps the data rows the predicate holds for, the header block is
// returned as is.
func (self *Engine) Where(t table.Table, expr string, hc ...int) (table.Table, error) {
	header, data, cnt, err := self.prepare(t, hc)
	if err != nil {
		return nil, err
	}
	code, err := parse(expr, sql.RuleWhere)
	if err != nil {
		return nil, err
	}
	p, err := plan.PlanCode(code, header.HeaderRow(cnt), self.Host)
	if err != nil {
		return nil, err
	}

	out := table.Table{}
	for _, row := range data {
		ok, err := EvalPredicate(p.Filter.Cond, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return table.Prepend(header, out), nil
}
