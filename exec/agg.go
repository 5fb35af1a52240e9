package exec

import (
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"github.com/shopspring/decimal"
	"math"
)

// Aggregate runs one aggregation over the rows of a group.
//
// SUM adds up the target and only accepts numbers, the sum is kept in
// decimal so 0.1 + 0.2 is 0.3. COUNT counts the rows whose target is truthy.
func Aggregate(avar *plan.AggVar, rows []table.Row) (table.Cell, error) {
	if avar.AggType < 0 {
		return table.Null(), evalErr("unsupported aggregation function $%s", avar.Value.Name)
	}
	if avar.Target == nil {
		return table.Null(), evalErr("$%s requires a parameter", avar.AggName())
	}

	switch avar.AggType {
	case sql.AggSum:
		sum := decimal.Zero
		for _, row := range rows {
			v, err := Eval(avar.Target, row)
			if err != nil {
				return table.Null(), err
			}
			if v.Ty != table.CellNumber {
				return table.Null(), evalErr(
					"$SUM(%s) got non numeric value %q",
					sql.PrintExpr(avar.Target),
					v.String(),
				)
			}
			if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
				return table.Null(), evalErr("$SUM(%s) got %s", sql.PrintExpr(avar.Target), v.String())
			}
			sum = sum.Add(decimal.NewFromFloat(v.Num))
		}
		f, _ := sum.Float64()
		return table.Num(f), nil

	case sql.AggCount:
		cnt := 0
		for _, row := range rows {
			ok, err := EvalPredicate(avar.Target, row)
			if err != nil {
				return table.Null(), err
			}
			if ok {
				cnt++
			}
		}
		return table.Num(float64(cnt)), nil

	default:
		return table.Null(), evalErr("unsupported aggregation function $%s", avar.Value.Name)
	}
}
