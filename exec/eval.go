package exec

import (
	"errors"
	"fmt"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
)

var ErrEval = errors.New("eval")

// EvalError aborts the whole operator, no partial table is ever returned
// along with it.
type EvalError struct {
	Msg string
}

func (self *EvalError) Error() string {
	return fmt.Sprintf("eval: %s", self.Msg)
}

func (self *EvalError) Is(target error) bool {
	return target == ErrEval
}

func evalErr(f string, args ...interface{}) error {
	return &EvalError{
		Msg: fmt.Sprintf(f, args...),
	}
}

// FieldValue reads the value a leaf node stands for in a row.
func FieldValue(row table.Row, expr sql.Expr) (table.Cell, error) {
	switch v := expr.(type) {
	case *sql.Const:
		return plan.ConstToCell(v), nil

	case *sql.Column:
		if v.CanName.IsFree() {
			return table.Null(), evalErr("column *%s is not resolved", v.Id)
		}
		c, ok := row.At(v.CanName.Index)
		if !ok {
			return table.Null(), evalErr(
				"column %s is out of range, row has %d columns",
				v.CanName.Letter,
				len(row),
			)
		}
		return c, nil

	case *sql.CellRef:
		return table.Null(), evalErr("cell reference #%s is not resolved", v.Address)

	default:
		return table.Null(), evalErr("%s is not a field", sql.PrintExpr(expr))
	}
}

func compare(op int, l, r table.Cell) bool {
	if op == sql.TkEq {
		return table.Equal(l, r)
	}
	v, ok := table.Compare(l, r)
	if !ok {
		return false
	}
	switch op {
	case sql.TkLt:
		return v < 0
	case sql.TkLe:
		return v <= 0
	case sql.TkGt:
		return v > 0
	case sql.TkGe:
		return v >= 0
	default:
		return false
	}
}

// Eval evaluates a resolved expression against one row. Comparison and logic
// nodes produce a boolean cell.
func Eval(expr sql.Expr, row table.Row) (table.Cell, error) {
	switch v := expr.(type) {
	case *sql.Const, *sql.Column, *sql.CellRef:
		return FieldValue(row, expr)

	case *sql.Binary:
		switch v.Op {
		case sql.TkAnd, sql.TkOr:
			l, err := EvalPredicate(v.L, row)
			if err != nil {
				return table.Null(), err
			}
			if v.Op == sql.TkAnd && !l {
				return table.Bool(false), nil
			}
			if v.Op == sql.TkOr && l {
				return table.Bool(true), nil
			}
			r, err := EvalPredicate(v.R, row)
			if err != nil {
				return table.Null(), err
			}
			return table.Bool(r), nil

		case sql.TkEq, sql.TkLt, sql.TkLe, sql.TkGt, sql.TkGe:
			l, err := Eval(v.L, row)
			if err != nil {
				return table.Null(), err
			}
			r, err := Eval(v.R, row)
			if err != nil {
				return table.Null(), err
			}
			return table.Bool(compare(v.Op, l, r)), nil

		default:
			return table.Null(), evalErr("unknown operator %d", v.Op)
		}

	case *sql.Call:
		return table.Null(), evalErr("aggregation $%s cannot be evaluated per row", v.Name)

	default:
		return table.Null(), evalErr("unsupported expression %T", expr)
	}
}

// EvalPredicate evaluates expr and reports whether the result is truthy.
func EvalPredicate(expr sql.Expr, row table.Row) (bool, error) {
	c, err := Eval(expr, row)
	if err != nil {
		return false, err
	}
	return c.Truthy(), nil
}
