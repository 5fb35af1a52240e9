package plan

import (
	"github.com/dianpeng/sheetql/sql"
)

// Semantic checking, just check obvious misuse of the language that the
// grammar alone cannot rule out
//
// ----------------------------------------------------------------------------
//
// [1] cell references are only resolved for WHERE, anywhere else they are
//     rejected as unresolvable
//
// [2] function calls are aggregations, they only show up in AGG and the
//     parameters of an aggregation cannot be another call
//
// [3] a join key must be exactly one column
//
// ----------------------------------------------------------------------------

// collects what kind of nodes show up inside of an expression
type exprInfo struct {
	call    []*sql.Call
	cellRef []*sql.CellRef
}

func (self *exprInfo) AcceptConst(_ *sql.Const) (bool, error)   { return true, nil }
func (self *exprInfo) AcceptColumn(_ *sql.Column) (bool, error) { return true, nil }
func (self *exprInfo) AcceptBinary(_ *sql.Binary) (bool, error) { return true, nil }

func (self *exprInfo) AcceptCellRef(c *sql.CellRef) (bool, error) {
	self.cellRef = append(self.cellRef, c)
	return true, nil
}

func (self *exprInfo) AcceptCall(c *sql.Call) (bool, error) {
	self.call = append(self.call, c)
	return true, nil
}

func newExprInfo(expr sql.Expr) *exprInfo {
	info := &exprInfo{}
	sql.VisitExprPreOrder(info, expr)
	return info
}

func (self *Plan) semaNoCall(stage string, expr sql.Expr) error {
	if info := newExprInfo(expr); len(info.call) > 0 {
		return self.err(
			"sema",
			"[%s]: function $%s is an aggregation, only allowed in AGG",
			stage,
			info.call[0].Name,
		)
	}
	return nil
}

func (self *Plan) semaNoCellRef(stage string, expr sql.Expr) error {
	if info := newExprInfo(expr); len(info.cellRef) > 0 {
		return self.errResolve(
			"sema",
			"[%s]: cell reference #%s is only allowed in WHERE",
			stage,
			info.cellRef[0].Address,
		)
	}
	return nil
}

func (self *Plan) semaCheck(c *sql.Code) error {
	switch c.Rule {
	case sql.RuleWhere:
		return self.semaNoCall("where", c.Where.Condition)

	case sql.RuleSelect:
		for _, col := range c.Projection.ValueList {
			if err := self.semaNoCellRef("select", col.Value); err != nil {
				return err
			}
			if err := self.semaNoCall("select", col.Value); err != nil {
				return err
			}
		}
		return nil

	case sql.RuleAgg:
		for _, call := range c.Agg.List {
			if err := self.semaNoCellRef("agg", call); err != nil {
				return err
			}
			for _, x := range call.Parameters {
				if x.Type() == sql.ExprCall {
					return self.err("sema", "[agg]: nested aggregation $%s is not allowed", call.Name)
				}
			}
		}
		return nil

	case sql.RuleGroupBy:
		if self.Config.SingleColumn {
			if len(c.GroupBy.Name) != 1 || c.GroupBy.Name[0].Type() != sql.ExprColumn {
				return self.err("sema", "[key]: join key must be exactly one column")
			}
		}
		return nil

	default:
		return nil
	}
}
