package cg

import (
	"fmt"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"strings"
)

// GroupBy code generation
// ----------------------------------------------------------------------------
// Every data row computes its key tuple, the tuple is turned into a string
// with sq_key so values of different kinds never collide. The first time a
// key shows up it is appended to gb_order, which keeps the output in first
// seen order. Aggregations are folded into arrays indexed by the key and the
// END block prints one row per key.

func (self *queryCodeGen) groupTitle(idx int, expr sql.Expr) (string, bool) {
	switch v := expr.(type) {
	case *sql.Column:
		return fmt.Sprintf("gb_title_%d", idx), true
	case *sql.Const:
		return awkString(plan.ConstToCell(v).String()), false
	default:
		return awkString(sql.PrintExpr(v)), false
	}
}

func (self *queryCodeGen) genGroupBy() error {
	q := self.query
	keys := q.GroupBy.VarList

	keyValues := []awkValue{}
	for _, x := range keys {
		v, err := genExpr(x)
		if err != nil {
			return err
		}
		keyValues = append(keyValues, v)
	}

	var aggList []plan.AggVar
	if q.HasAgg() {
		aggList = q.Agg.VarList
	}
	aggValues := []awkValue{}
	for idx := range aggList {
		avar := &aggList[idx]
		if avar.AggType != sql.AggSum && avar.AggType != sql.AggCount {
			return fmt.Errorf("unsupported aggregation function $%s", avar.Value.Name)
		}
		if avar.Target == nil {
			return fmt.Errorf("$%s requires a parameter", avar.AggName())
		}
		v, err := genExpr(avar.Target)
		if err != nil {
			return err
		}
		aggValues = append(aggValues, v)
	}

	// titles of column keys start as the column letter, the first header row
	// overrides them when the field exists
	self.w.Open("BEGIN")
	for idx, x := range keys {
		if title, ok := self.groupTitle(idx, x); ok {
			self.w.Line("%s = %s", title, awkString(x.(*sql.Column).Name()))
		}
	}
	self.w.Close()
	if h := self.config.HeaderCount; h > 0 {
		self.w.Open("NR <= %d", h)
		self.w.Open("if (NR == 1)")
		for idx, x := range keys {
			if title, ok := self.groupTitle(idx, x); ok {
				col := x.(*sql.Column)
				self.w.Open("if (NF >= %d)", col.CanName.Index+1)
				self.w.Line("%s = %s", title, awkField(col.CanName.Index))
				self.w.Close()
			}
		}
		self.w.Close()
		self.w.Line("next")
		self.w.Close()
	}

	// per row
	self.w.Open("")
	parts := []string{}
	for _, v := range keyValues {
		parts = append(parts, fmt.Sprintf("sq_key(%s, %s)", v.val, v.kind))
	}
	self.w.Line("gb_key = %s", strings.Join(parts, " SUBSEP "))
	self.w.Open("if (!(gb_key in gb_seen))")
	self.w.Line("gb_seen[gb_key] = 1")
	self.w.Line("gb_order[++gb_size] = gb_key")
	for idx, v := range keyValues {
		self.w.Line("gb_val_%d[gb_key] = %s", idx, v.val)
	}
	self.w.Close()

	for idx, v := range aggValues {
		avar := &aggList[idx]
		switch avar.AggType {
		case sql.AggSum:
			self.w.Open("if (%s != \"n\")", v.kind)
			self.w.Line(
				"sq_fail(%s %s)",
				awkString(fmt.Sprintf("$SUM(%s) got non numeric value ", sql.PrintExpr(avar.Target))),
				v.val,
			)
			self.w.Close()
			self.w.Line("agg_val_%d[gb_key] += %s", idx, v.val)
		case sql.AggCount:
			self.w.Open("if (%s)", v.truthy())
			self.w.Line("agg_val_%d[gb_key]++", idx)
			self.w.Close()
		}
	}
	self.w.Close()
	self.w.Line("")

	// flush
	self.w.Open("END")
	self.w.Open("if (sq_failed)")
	self.w.Line("exit 1")
	self.w.Close()

	titles := []string{}
	for idx, x := range keys {
		title, _ := self.groupTitle(idx, x)
		titles = append(titles, title)
	}
	for idx := range aggList {
		titles = append(titles, awkString(aggList[idx].HeaderName()))
	}
	self.w.Line("print %s", strings.Join(titles, ", "))

	self.w.Open("for (gb_i = 1; gb_i <= gb_size; gb_i++)")
	self.w.Line("gb_key = gb_order[gb_i]")
	row := []string{}
	for idx := range keyValues {
		row = append(row, fmt.Sprintf("gb_val_%d[gb_key]", idx))
	}
	for idx := range aggList {
		switch aggList[idx].AggType {
		case sql.AggSum:
			row = append(row, fmt.Sprintf("sprintf(\"%%.15g\", agg_val_%d[gb_key] + 0)", idx))
		default:
			row = append(row, fmt.Sprintf("agg_val_%d[gb_key] + 0", idx))
		}
	}
	self.w.Line("print %s", strings.Join(row, ", "))
	self.w.Close()
	self.w.Close()
	self.w.Line("")
	return nil
}
