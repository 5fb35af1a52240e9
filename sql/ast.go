package sql

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	ConstNull = iota
	ConstBool
	ConstStr
	ConstInt
	ConstReal
)

const (
	ExprConst = iota
	ExprColumn
	ExprCellRef
	ExprCall
	ExprBinary
)

const (
	OrderAsc = iota
	OrderDesc
)

// Start rule of the grammar, each relational operator parses its argument with
// a different one.
const (
	RuleWhere = iota
	RuleSelect
	RuleAgg
	RuleGroupBy
	RuleOrderBy
)

var ruleName = []string{
	"WHERE",
	"SELECT",
	"AGG",
	"GROUP_BY",
	"ORDER_BY",
}

// IsRule reports whether rule is one of the start rules.
func IsRule(rule int) bool {
	return rule >= 0 && rule < len(ruleName)
}

func RuleName(rule int) string {
	if !IsRule(rule) {
		return "UNKNOWN"
	}
	return ruleName[rule]
}

// RuleOf maps a start rule name, ie "where" or "GROUP_BY", back to the rule.
func RuleOf(name string) (int, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for idx, x := range ruleName {
		if x == n {
			return idx, true
		}
	}
	return -1, false
}

type CodeInfo struct {
	Start   int
	End     int
	Snippet string
}

/** -------------------------------------------------------------------------
 ** Per operator argument lists
 ** -----------------------------------------------------------------------*/

// Single projected item, ie `*B AS Age`
type Col struct {
	CodeInfo CodeInfo
	ColIndex int
	As       string
	Value    Expr
}

func (self *Col) Alias() string { return self.As }

type Projection struct {
	CodeInfo  CodeInfo
	ValueList []*Col
}

type Where struct {
	CodeInfo  CodeInfo
	Condition Expr
}

// Group keys, each one is either a column or a constant
type GroupBy struct {
	CodeInfo CodeInfo
	Name     []Expr
}

type OrderVar struct {
	CodeInfo CodeInfo
	Order    int
	Name     *Column
}

type OrderBy struct {
	CodeInfo CodeInfo
	List     []*OrderVar
}

type Agg struct {
	CodeInfo CodeInfo
	List     []*Call
}

// Code is the result of one parse, exactly one of the clause field is set and
// it is the one matching Rule.
type Code struct {
	CodeInfo   CodeInfo
	Rule       int
	Where      *Where
	Projection *Projection
	GroupBy    *GroupBy
	Agg        *Agg
	OrderBy    *OrderBy
}

/** -------------------------------------------------------------------------
 ** Expression
 ** -----------------------------------------------------------------------*/
type Const struct {
	Ty       int
	Bool     bool
	String   string
	Real     float64
	Int      int64
	CodeInfo CodeInfo
}

// Column reference, `*B` or `*name` or `*'school id'`.
type Column struct {
	Id       string
	Quoted   bool
	CodeInfo CodeInfo
	CanName  CanName
}

// Reference into the hosting sheet, `#A5`.
type CellRef struct {
	Address  string
	CodeInfo CodeInfo
}

type Call struct {
	Name       string
	Parameters []Expr
	CodeInfo   CodeInfo
}

type Binary struct {
	Op       int
	L        Expr
	R        Expr
	CodeInfo CodeInfo
}

// Expr is closed, only the node types of this package implement it.
type Expr interface {
	Type() int
	CInfo() CodeInfo
	exprNode()
}

func (self *Const) Type() int       { return ExprConst }
func (self *Const) CInfo() CodeInfo { return self.CodeInfo }
func (self *Const) exprNode()       {}

func (self *Column) Type() int       { return ExprColumn }
func (self *Column) CInfo() CodeInfo { return self.CodeInfo }
func (self *Column) exprNode()       {}

func (self *CellRef) Type() int       { return ExprCellRef }
func (self *CellRef) CInfo() CodeInfo { return self.CodeInfo }
func (self *CellRef) exprNode()       {}

func (self *Call) Type() int       { return ExprCall }
func (self *Call) CInfo() CodeInfo { return self.CodeInfo }
func (self *Call) exprNode()       {}

func (self *Binary) Type() int       { return ExprBinary }
func (self *Binary) CInfo() CodeInfo { return self.CodeInfo }
func (self *Binary) exprNode()       {}

func (self *Binary) IsCompare() bool {
	switch self.Op {
	case TkEq, TkLt, TkGt, TkLe, TkGe:
		return true
	default:
		return false
	}
}

func (self *Binary) IsLogic() bool {
	return self.Op == TkAnd || self.Op == TkOr
}

// Name the column is referenced with, letter once resolved
func (self *Column) Name() string {
	if self.CanName.IsSettled() {
		return self.CanName.Letter
	}
	return self.Id
}

/* ----------------------------------------------------------------------------
 * Visitor
 * ---------------------------------------------------------------------------*/

type ExprVisitor interface {
	AcceptConst(*Const) (bool, error)
	AcceptColumn(*Column) (bool, error)
	AcceptCellRef(*CellRef) (bool, error)
	AcceptCall(*Call) (bool, error)
	AcceptBinary(*Binary) (bool, error)
}

func visitExprPreOrder(
	visitor ExprVisitor,
	expr Expr,
) error {
	switch v := expr.(type) {
	case *Const:
		_, err := visitor.AcceptConst(v)
		return err

	case *Column:
		_, err := visitor.AcceptColumn(v)
		return err

	case *CellRef:
		_, err := visitor.AcceptCellRef(v)
		return err

	case *Call:
		if goon, err := visitor.AcceptCall(v); err != nil {
			return err
		} else if goon {
			for _, x := range v.Parameters {
				if err := visitExprPreOrder(visitor, x); err != nil {
					return err
				}
			}
		}
		return nil

	case *Binary:
		if goon, err := visitor.AcceptBinary(v); err != nil {
			return err
		} else if goon {
			if err := visitExprPreOrder(visitor, v.L); err != nil {
				return err
			}
			if err := visitExprPreOrder(visitor, v.R); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

func VisitExprPreOrder(
	visitor ExprVisitor,
	expr Expr,
) error {
	return visitExprPreOrder(visitor, expr)
}

/* ----------------------------------------------------------------------------
 * Clone
 * ---------------------------------------------------------------------------*/
func cloneExprCall(
	in *Call,
) *Call {
	if in == nil {
		return nil
	}
	c := &Call{
		Name:     in.Name,
		CodeInfo: in.CodeInfo,
	}
	for _, x := range in.Parameters {
		c.Parameters = append(c.Parameters, cloneExpr(x))
	}
	return c
}

func cloneExpr(
	in Expr,
) Expr {
	switch v := in.(type) {
	case *Const:
		value := *v
		return &value
	case *Column:
		value := *v
		return &value
	case *CellRef:
		value := *v
		return &value
	case *Call:
		return cloneExprCall(v)
	case *Binary:
		return &Binary{
			Op:       v.Op,
			L:        cloneExpr(v.L),
			R:        cloneExpr(v.R),
			CodeInfo: v.CodeInfo,
		}
	default:
		return nil
	}
}

func CloneExpr(in Expr) Expr {
	return cloneExpr(in)
}

func CloneCall(in *Call) *Call {
	return cloneExprCall(in)
}

/* ----------------------------------------------------------------------------
 * Printing
 * ---------------------------------------------------------------------------*/

// Stringify the AST back into the expression language. Columns print their
// resolved letter when they have one.

// FormatReal always keeps a fraction so the literal reads back as a real.
func FormatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

func quoteName(name string) string {
	return "'" + name + "'"
}

func isBareName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !isIdent(r) {
			return false
		}
	}
	return true
}

func doPrintExprConst(c *Const, buf *bytes.Buffer) {
	switch c.Ty {
	case ConstBool:
		if c.Bool {
			buf.WriteString("TRUE")
		} else {
			buf.WriteString("FALSE")
		}
		break
	case ConstStr:
		buf.WriteString(quoteName(c.String))
		break
	case ConstInt:
		buf.WriteString(fmt.Sprintf("%d", c.Int))
		break
	case ConstReal:
		buf.WriteString(FormatReal(c.Real))
		break
	default:
		buf.WriteString("NULL")
		break
	}
}

func doPrintExprColumn(c *Column, buf *bytes.Buffer) {
	buf.WriteString("*")
	name := c.Name()
	if isBareName(name) {
		buf.WriteString(name)
	} else {
		buf.WriteString(quoteName(name))
	}
}

func doPrintExprCall(c *Call, buf *bytes.Buffer) {
	buf.WriteString("$")
	buf.WriteString(c.Name)
	buf.WriteString("(")
	for idx, x := range c.Parameters {
		if idx > 0 {
			buf.WriteString(", ")
		}
		doPrintExpr(x, buf)
	}
	buf.WriteString(")")
}

func doPrintExprBinary(b *Binary, buf *bytes.Buffer) {
	buf.WriteString("(")
	doPrintExpr(b.L, buf)
	buf.WriteString(" ")
	buf.WriteString(OpName(b.Op))
	buf.WriteString(" ")
	doPrintExpr(b.R, buf)
	buf.WriteString(")")
}

func doPrintExpr(expr Expr, buf *bytes.Buffer) {
	switch v := expr.(type) {
	case *Const:
		doPrintExprConst(v, buf)
		break
	case *Column:
		doPrintExprColumn(v, buf)
		break
	case *CellRef:
		buf.WriteString("#")
		buf.WriteString(v.Address)
		break
	case *Call:
		doPrintExprCall(v, buf)
		break
	case *Binary:
		doPrintExprBinary(v, buf)
		break
	default:
		break
	}
}

func PrintExpr(expr Expr) string {
	buf := &bytes.Buffer{}
	doPrintExpr(expr, buf)
	return buf.String()
}

func doPrintCode(code *Code, buf *bytes.Buffer) {
	buf.WriteString("<")
	buf.WriteString(RuleName(code.Rule))
	buf.WriteString(">")

	switch code.Rule {
	case RuleWhere:
		doPrintExpr(code.Where.Condition, buf)
		break

	case RuleSelect:
		for idx, col := range code.Projection.ValueList {
			if idx > 0 {
				buf.WriteString(", ")
			}
			doPrintExpr(col.Value, buf)
			if col.As != "" {
				buf.WriteString(" AS ")
				buf.WriteString(quoteName(col.As))
			}
		}
		break

	case RuleAgg:
		for idx, call := range code.Agg.List {
			if idx > 0 {
				buf.WriteString(", ")
			}
			doPrintExprCall(call, buf)
		}
		break

	case RuleGroupBy:
		for idx, x := range code.GroupBy.Name {
			if idx > 0 {
				buf.WriteString(", ")
			}
			doPrintExpr(x, buf)
		}
		break

	case RuleOrderBy:
		for idx, x := range code.OrderBy.List {
			if idx > 0 {
				buf.WriteString(", ")
			}
			doPrintExprColumn(x.Name, buf)
			if x.Order == OrderDesc {
				buf.WriteString(" DESC")
			} else {
				buf.WriteString(" ASC")
			}
		}
		break

	default:
		break
	}
}

// PrintCode prints the code in its tagged form, the output parses back with
// ParseTagged into the same tree.
func PrintCode(code *Code) string {
	buf := &bytes.Buffer{}
	doPrintCode(code, buf)
	return buf.String()
}
