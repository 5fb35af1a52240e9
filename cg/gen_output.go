package cg

import (
	"fmt"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"strings"
)

// title of an output column. With fromRecord set the current record is the
// first header row and a non empty field of it wins over the column letter.
func outputTitle(out *plan.Output, idx int, fromRecord bool) string {
	if alias := out.VarAlias[idx]; alias != "" {
		return awkString(alias)
	}
	switch v := out.VarList[idx].(type) {
	case *sql.Column:
		if fromRecord && v.CanName.IsSettled() {
			f := awkField(v.CanName.Index)
			return fmt.Sprintf("sq_title(%s, %s)", f, awkString(v.Name()))
		}
		return awkString(v.Name())
	case *sql.Const:
		return awkString(plan.ConstToCell(v).String())
	default:
		return awkString(sql.PrintExpr(v))
	}
}

// Output generation. Exactly one header row is printed: built from the first
// record when the input has a header, from the column letters otherwise.
// Remaining header rows are skipped, data rows are evaluated.
func (self *queryCodeGen) genOutput() error {
	out := self.query.Output

	values := []string{}
	for _, x := range out.VarList {
		v, err := genExpr(x)
		if err != nil {
			return err
		}
		values = append(values, v.val)
	}

	titles := func(fromRecord bool) string {
		buf := []string{}
		for idx := range out.VarList {
			buf = append(buf, outputTitle(out, idx, fromRecord))
		}
		return strings.Join(buf, ", ")
	}

	h := self.config.HeaderCount
	if h == 0 {
		self.w.Line("BEGIN { print %s }", titles(false))
	} else {
		self.w.Line("NR == 1 { print %s; next }", titles(true))
		if h > 1 {
			self.w.Line("NR <= %d { next }", h)
		}
	}
	self.w.Line("{ print %s }", strings.Join(values, ", "))
	if h > 0 {
		self.w.Line("END { if (NR == 0) print %s }", titles(false))
	}
	return nil
}
