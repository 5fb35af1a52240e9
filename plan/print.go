package plan

import (
	"fmt"
	"github.com/dianpeng/sheetql/sql"
	"sort"
	"strings"
)

// Printing the plan out, for testing, debugging, visualization purpose etc ...

func (self *Plan) Print() string {
	buf := &strings.Builder{}
	self.printColumns(buf)
	self.printFilter(buf)
	self.printGroupBy(buf)
	self.printAgg(buf)
	self.printSort(buf)
	self.printOutput(buf)
	return buf.String()
}

func (self *Plan) printColumns(
	buf *strings.Builder,
) {
	buf.WriteString("##> Columns\n")
	names := []string{}
	for name := range self.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		buf.WriteString(fmt.Sprintf("%s: %s\n", name, self.Columns[name]))
	}
}

func (self *Plan) printFilter(
	buf *strings.Builder,
) {
	if !self.HasFilter() {
		return
	}
	buf.WriteString("##> Filter\n")
	buf.WriteString(fmt.Sprintf("Cond: %s\n", sql.PrintExpr(self.Filter.Cond)))
}

func (self *Plan) printGroupBy(
	buf *strings.Builder,
) {
	if !self.HasGroupBy() {
		return
	}
	buf.WriteString("##> GroupBy\n")
	for idx, x := range self.GroupBy.VarList {
		buf.WriteString(fmt.Sprintf("%d. %s\n", idx+1, sql.PrintExpr(x)))
	}
}

func (self *Plan) printAgg(
	buf *strings.Builder,
) {
	if !self.HasAgg() {
		return
	}
	buf.WriteString("##> Agg\n")
	for idx, x := range self.Agg.VarList {
		buf.WriteString(fmt.Sprintf("%d. %s => %s\n", idx+1, sql.PrintExpr(x.Value), x.HeaderName()))
	}
}

func (self *Plan) printSort(
	buf *strings.Builder,
) {
	if !self.HasSort() {
		return
	}
	buf.WriteString("##> Sort\n")
	for idx, x := range self.Sort.VarList {
		order := "ASC"
		if x.Desc {
			order = "DESC"
		}
		buf.WriteString(fmt.Sprintf("%d. %s %s\n", idx+1, sql.PrintExpr(x.Column), order))
	}
}

func (self *Plan) printOutput(
	buf *strings.Builder,
) {
	if !self.HasOutput() {
		return
	}
	buf.WriteString("##> Output\n")
	for idx, x := range self.Output.VarList {
		alias := self.Output.VarAlias[idx]
		if alias == "" {
			buf.WriteString(fmt.Sprintf("%d. %s\n", idx+1, sql.PrintExpr(x)))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s as %s\n", idx+1, sql.PrintExpr(x), alias))
		}
	}
}
