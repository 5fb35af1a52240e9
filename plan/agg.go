package plan

import (
	"github.com/dianpeng/sheetql/sql"
	"strings"
)

// Aggregation phase. Each function call of the AGG code becomes an AggVar,
// the call is resolved against the header and its first parameter is the
// target that gets accumulated for every row of a group.
type AggVar struct {
	AggType int       // sql.AggSum, sql.AggCount, or -1 when unknown
	Value   *sql.Call // resolved call
	Target  sql.Expr  // first parameter of the call, nil if none
}

type Agg struct {
	VarList []AggVar
}

func (self *AggVar) AggName() string {
	if self.AggType < 0 {
		return strings.ToUpper(self.Value.Name)
	}
	return sql.AggName(self.AggType)
}

func printAggParam(expr sql.Expr) string {
	switch v := expr.(type) {
	case *sql.Column:
		return v.Name()
	case *sql.Const:
		return ConstToCell(v).String()
	default:
		return sql.PrintExpr(expr)
	}
}

// HeaderName is the column title of the aggregation in a GROUP_BY output,
// function name followed by its resolved parameters, ie "SUM B", "COUNT 1".
func (self *AggVar) HeaderName() string {
	params := []string{}
	for _, x := range self.Value.Parameters {
		params = append(params, printAggParam(x))
	}
	if len(params) == 0 {
		return self.AggName()
	}
	return self.AggName() + " " + strings.Join(params, ",")
}

func (self *Plan) anaAgg(
	agg *sql.Agg,
) {
	out := &Agg{}
	for _, call := range agg.List {
		resolved := ResolveColumns(call, self.Columns).(*sql.Call)
		ty, ok := sql.AggFunc(call.Name)
		if !ok {
			ty = -1
		}

		avar := AggVar{
			AggType: ty,
			Value:   resolved,
		}
		if len(resolved.Parameters) > 0 {
			avar.Target = resolved.Parameters[0]
		}
		out.VarList = append(out.VarList, avar)
	}
	self.Agg = out
}
