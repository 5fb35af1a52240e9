package exec

import (
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
)

// title of a projected column: the AS name, else a non empty header cell,
// else the column letter
func selectTitle(p *plan.Plan, idx int, hrow table.Row) table.Cell {
	if alias := p.Output.VarAlias[idx]; alias != "" {
		return table.Str(alias)
	}
	switch v := p.Output.VarList[idx].(type) {
	case *sql.Column:
		if v.CanName.IsSettled() {
			if c, ok := hrow.At(v.CanName.Index); ok && c.Truthy() {
				return c
			}
		}
		return table.Str(v.Name())
	case *sql.Const:
		return plan.ConstToCell(v)
	default:
		return table.Str(sql.PrintExpr(v))
	}
}

// Select projects every data row through the selection list. The output
// always starts with exactly one header row, whatever the input header count.
func (self *Engine) Select(t table.Table, expr string, hc ...int) (table.Table, error) {
	header, data, cnt, err := self.prepare(t, hc)
	if err != nil {
		return nil, err
	}
	code, err := parse(expr, sql.RuleSelect)
	if err != nil {
		return nil, err
	}
	hrow := header.HeaderRow(cnt)
	p, err := plan.PlanCode(code, hrow, self.Host)
	if err != nil {
		return nil, err
	}

	title := make(table.Row, 0, len(p.Output.VarList))
	for idx := range p.Output.VarList {
		title = append(title, selectTitle(p, idx, hrow))
	}

	out := table.Table{}
	for _, row := range data {
		orow := make(table.Row, 0, len(p.Output.VarList))
		for _, x := range p.Output.VarList {
			v, err := Eval(x, row)
			if err != nil {
				return nil, err
			}
			orow = append(orow, v)
		}
		out = append(out, orow)
	}
	return table.Prepend(table.Table{title}, out), nil
}
