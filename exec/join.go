package exec

import (
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
)

func (self *Engine) joinKey(expr string, hrow table.Row) (*sql.Column, error) {
	code, err := parse(expr, sql.RuleGroupBy)
	if err != nil {
		return nil, err
	}
	p, err := plan.PlanKey(code, hrow)
	if err != nil {
		return nil, err
	}
	return p.KeyColumn(), nil
}

// LeftJoin extends every row of t1 with the row of t2 that has the same key.
// When t2 has the key more than once the last row wins. Rows of t1 without a
// match are kept unextended. Header rows are joined side by side.
func (self *Engine) LeftJoin(
	t1 table.Table,
	key1 string,
	t2 table.Table,
	key2 string,
	hc ...int,
) (table.Table, error) {
	header1, data1, cnt, err := self.prepare(t1, hc)
	if err != nil {
		return nil, err
	}
	header2, data2 := t2.Split(cnt)

	col1, err := self.joinKey(key1, header1.HeaderRow(cnt))
	if err != nil {
		return nil, err
	}
	col2, err := self.joinKey(key2, header2.HeaderRow(cnt))
	if err != nil {
		return nil, err
	}

	index := make(map[string]table.Row)
	for _, row := range data2 {
		v, err := FieldValue(row, col2)
		if err != nil {
			return nil, err
		}
		index[cellKey(v)] = row
	}

	out := table.Table{}
	for idx := 0; idx < len(header1); idx++ {
		row := header1[idx].Clone()
		if idx < len(header2) {
			row = append(row, header2[idx]...)
		}
		out = append(out, row)
	}

	for _, row := range data1 {
		v, err := FieldValue(row, col1)
		if err != nil {
			return nil, err
		}
		joined := row.Clone()
		if match, ok := index[cellKey(v)]; ok {
			joined = append(joined, match...)
		}
		out = append(out, joined)
	}
	return out, nil
}
