package exec

import (
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"strings"
)

type group struct {
	key  []table.Cell
	rows []table.Row
}

func groupTitle(expr sql.Expr, hrow table.Row) table.Cell {
	switch v := expr.(type) {
	case *sql.Column:
		if v.CanName.IsSettled() {
			if c, ok := hrow.At(v.CanName.Index); ok {
				return c
			}
		}
		return table.Str(v.Name())
	case *sql.Const:
		return plan.ConstToCell(v)
	default:
		return table.Str(sql.PrintExpr(expr))
	}
}

// GroupBy buckets the data rows by the key list and emits one row per
// bucket, the key values followed by one value per aggregation. Buckets are
// emitted in the order their first row shows up. The output always has a
// single header row, key titles fall back to the column letter when the input
// has no header.
//
// aggExpr may be empty, the output is then just the distinct keys.
func (self *Engine) GroupBy(t table.Table, groupExpr string, aggExpr string, hc ...int) (table.Table, error) {
	header, data, cnt, err := self.prepare(t, hc)
	if err != nil {
		return nil, err
	}

	groupCode, err := parse(groupExpr, sql.RuleGroupBy)
	if err != nil {
		return nil, err
	}
	var aggCode *sql.Code
	if strings.TrimSpace(aggExpr) != "" {
		if aggCode, err = parse(aggExpr, sql.RuleAgg); err != nil {
			return nil, err
		}
	}

	hrow := header.HeaderRow(cnt)
	p, err := plan.PlanGroupBy(groupCode, aggCode, hrow)
	if err != nil {
		return nil, err
	}

	groups := []*group{}
	index := make(map[string]*group)

	for _, row := range data {
		key := make([]table.Cell, 0, len(p.GroupBy.VarList))
		for _, x := range p.GroupBy.VarList {
			v, err := FieldValue(row, x)
			if err != nil {
				return nil, err
			}
			key = append(key, v)
		}

		k := cellKey(key...)
		g, ok := index[k]
		if !ok {
			g = &group{key: key}
			index[k] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, row)
	}

	var aggList []plan.AggVar
	if p.HasAgg() {
		aggList = p.Agg.VarList
	}

	title := table.Row{}
	for _, x := range p.GroupBy.VarList {
		title = append(title, groupTitle(x, hrow))
	}
	for idx := range aggList {
		title = append(title, table.Str(aggList[idx].HeaderName()))
	}
	out := table.Table{title}

	for _, g := range groups {
		row := append(table.Row{}, g.key...)
		for idx := range aggList {
			v, err := Aggregate(&aggList[idx], g.rows)
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		out = append(out, row)
	}
	return out, nil
}
