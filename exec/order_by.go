package exec

import (
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"sort"
)

type sortEntry struct {
	row table.Row
	key []table.Cell
}

// OrderBy sorts the data rows by the key list. Rows equal on every key keep
// their input order.
func (self *Engine) OrderBy(t table.Table, expr string, hc ...int) (table.Table, error) {
	header, data, cnt, err := self.prepare(t, hc)
	if err != nil {
		return nil, err
	}
	code, err := parse(expr, sql.RuleOrderBy)
	if err != nil {
		return nil, err
	}
	p, err := plan.PlanCode(code, header.HeaderRow(cnt), self.Host)
	if err != nil {
		return nil, err
	}

	// evaluate every key up front, the sort itself cannot fail
	entries := make([]sortEntry, 0, len(data))
	for _, row := range data {
		e := sortEntry{row: row}
		for _, x := range p.Sort.VarList {
			v, err := FieldValue(row, x.Column)
			if err != nil {
				return nil, err
			}
			e.key = append(e.key, v)
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		for kidx, x := range p.Sort.VarList {
			r := table.Order(entries[i].key[kidx], entries[j].key[kidx])
			if r == 0 {
				continue
			}
			if x.Desc {
				r = -r
			}
			return r < 0
		}
		return false
	})

	out := make(table.Table, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.row)
	}
	return table.Prepend(header, out), nil
}
