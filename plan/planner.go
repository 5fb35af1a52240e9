package plan

import (
	"github.com/dianpeng/sheetql/sql"
)

func (self *Plan) plan(c *sql.Code) error {
	if err := self.semaCheck(c); err != nil {
		return err
	}

	switch c.Rule {
	case sql.RuleWhere:
		return self.planFilter(c.Where)

	case sql.RuleSelect:
		self.planOutput(c.Projection)
		return nil

	case sql.RuleAgg:
		self.anaAgg(c.Agg)
		return nil

	case sql.RuleGroupBy:
		self.planGroupBy(c.GroupBy)
		return nil

	case sql.RuleOrderBy:
		self.planSort(c.OrderBy)
		return nil

	default:
		return self.err("plan", "unknown rule %d", c.Rule)
	}
}

// ----------------------------------------------------------------------------
// cell references are frozen first, then the columns are resolved
func (self *Plan) planFilter(where *sql.Where) error {
	cond, err := ResolveCellRefs(where.Condition, self.host)
	if err != nil {
		return err
	}
	self.Filter = &Filter{
		Cond: ResolveColumns(cond, self.Columns),
	}
	return nil
}

func (self *Plan) planOutput(projection *sql.Projection) {
	out := &Output{}
	for _, col := range projection.ValueList {
		out.VarList = append(out.VarList, ResolveColumns(col.Value, self.Columns))
		out.VarAlias = append(out.VarAlias, col.Alias())
	}
	self.Output = out
}

func (self *Plan) planGroupBy(groupBy *sql.GroupBy) {
	g := &GroupBy{}
	for _, x := range groupBy.Name {
		g.VarList = append(g.VarList, ResolveColumns(x, self.Columns))
	}
	self.GroupBy = g
}

func (self *Plan) planSort(orderBy *sql.OrderBy) {
	s := &Sort{}
	for _, x := range orderBy.List {
		s.VarList = append(s.VarList, SortVar{
			Column: ResolveColumns(x.Name, self.Columns).(*sql.Column),
			Desc:   x.Order == sql.OrderDesc,
		})
	}
	self.Sort = s
}
