package cg

import (
	"fmt"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
)

// awkValue is the pair of awk expressions a node compiles into, the value as
// text and its kind.
type awkValue struct {
	val  string
	kind string
}

func boolValue(cond string) awkValue {
	return awkValue{
		val:  fmt.Sprintf("sq_tf(%s)", cond),
		kind: awkString(kindBool),
	}
}

func (self awkValue) truthy() string {
	return fmt.Sprintf("sq_truthy(%s, %s)", self.val, self.kind)
}

// expression generation
type exprCodeGen struct{}

func (self *exprCodeGen) genConst(c *sql.Const) awkValue {
	cell := plan.ConstToCell(c)
	return awkValue{
		val:  awkString(cell.String()),
		kind: awkString(cellKind(cell)),
	}
}

func (self *exprCodeGen) genColumn(col *sql.Column) (awkValue, error) {
	if !col.CanName.IsSettled() {
		return awkValue{}, fmt.Errorf("column *%s is not resolved", col.Id)
	}
	field := awkField(col.CanName.Index)
	return awkValue{
		val:  field,
		kind: fmt.Sprintf("sq_kind(%s)", field),
	}, nil
}

func (self *exprCodeGen) genBinary(binary *sql.Binary) (awkValue, error) {
	l, err := self.genExpr(binary.L)
	if err != nil {
		return awkValue{}, err
	}
	r, err := self.genExpr(binary.R)
	if err != nil {
		return awkValue{}, err
	}

	switch binary.Op {
	case sql.TkAnd:
		return boolValue(fmt.Sprintf("%s && %s", l.truthy(), r.truthy())), nil
	case sql.TkOr:
		return boolValue(fmt.Sprintf("%s || %s", l.truthy(), r.truthy())), nil
	case sql.TkEq, sql.TkLt, sql.TkLe, sql.TkGt, sql.TkGe:
		return boolValue(
			fmt.Sprintf(
				"sq_cmp(%s, %s, %s, %s, %s)",
				l.val,
				l.kind,
				r.val,
				r.kind,
				awkString(sql.OpName(binary.Op)),
			),
		), nil
	default:
		return awkValue{}, fmt.Errorf("unknown operator %d", binary.Op)
	}
}

func (self *exprCodeGen) genExpr(expr sql.Expr) (awkValue, error) {
	switch v := expr.(type) {
	case *sql.Const:
		return self.genConst(v), nil
	case *sql.Column:
		return self.genColumn(v)
	case *sql.Binary:
		return self.genBinary(v)
	case *sql.CellRef:
		return awkValue{}, fmt.Errorf("cell reference #%s must be resolved before code generation", v.Address)
	case *sql.Call:
		return awkValue{}, fmt.Errorf("aggregation $%s is not allowed here", v.Name)
	default:
		return awkValue{}, fmt.Errorf("unsupported expression %T", expr)
	}
}

func genExpr(expr sql.Expr) (awkValue, error) {
	gen := &exprCodeGen{}
	return gen.genExpr(expr)
}
