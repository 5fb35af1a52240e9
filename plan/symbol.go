package plan

import (
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"math"
)

// Symbol resolution. Both passes build a new tree, the input tree is shared
// with the parsed code and left untouched.

// rewrite the tree bottom up, fn sees every leaf node and returns its
// replacement
func rewriteExpr(
	expr sql.Expr,
	fn func(sql.Expr) (sql.Expr, error),
) (sql.Expr, error) {
	switch v := expr.(type) {
	case *sql.Binary:
		l, err := rewriteExpr(v.L, fn)
		if err != nil {
			return nil, err
		}
		r, err := rewriteExpr(v.R, fn)
		if err != nil {
			return nil, err
		}
		return &sql.Binary{
			Op:       v.Op,
			L:        l,
			R:        r,
			CodeInfo: v.CodeInfo,
		}, nil

	case *sql.Call:
		call := &sql.Call{
			Name:     v.Name,
			CodeInfo: v.CodeInfo,
		}
		for _, x := range v.Parameters {
			p, err := rewriteExpr(x, fn)
			if err != nil {
				return nil, err
			}
			call.Parameters = append(call.Parameters, p)
		}
		return call, nil

	default:
		return fn(sql.CloneExpr(expr))
	}
}

func resolveColumn(col *sql.Column, columns ColumnMap) *sql.Column {
	out := *col
	out.CanName = sql.CanName{}
	if letter, idx, ok := columns.Lookup(col.Id); ok {
		out.CanName.Set(letter, idx)
	}
	return &out
}

// ResolveColumns returns a copy of expr where every column reference carries
// its letter. A reference that is neither a header name nor a letter stays
// free and fails once it is evaluated.
func ResolveColumns(expr sql.Expr, columns ColumnMap) sql.Expr {
	out, _ := rewriteExpr(expr, func(x sql.Expr) (sql.Expr, error) {
		if col, ok := x.(*sql.Column); ok {
			return resolveColumn(col, columns), nil
		}
		return x, nil
	})
	return out
}

// ResolveCellRefs returns a copy of expr where every cell reference has been
// replaced by the constant the host holds for it. Host errors are returned as
// they are.
func ResolveCellRefs(expr sql.Expr, host Host) (sql.Expr, error) {
	return rewriteExpr(expr, func(x sql.Expr) (sql.Expr, error) {
		ref, ok := x.(*sql.CellRef)
		if !ok {
			return x, nil
		}
		if host == nil {
			return nil, &Error{
				Stage: "resolve-cell",
				Msg:   "no host to look up cell reference #" + ref.Address,
				Kind:  ErrResolve,
			}
		}
		c, err := host.CellValue(ref.Address)
		if err != nil {
			return nil, err
		}
		out := CellToConst(c)
		out.CodeInfo = ref.CodeInfo
		return out, nil
	})
}

// CellToConst converts a host cell into a literal, integral numbers become an
// integer literal.
func CellToConst(c table.Cell) *sql.Const {
	switch c.Ty {
	case table.CellBool:
		return &sql.Const{Ty: sql.ConstBool, Bool: c.Bool}
	case table.CellString:
		return &sql.Const{Ty: sql.ConstStr, String: c.Str}
	case table.CellNumber:
		if c.Num == math.Trunc(c.Num) && math.Abs(c.Num) < 1<<53 {
			return &sql.Const{Ty: sql.ConstInt, Int: int64(c.Num)}
		}
		return &sql.Const{Ty: sql.ConstReal, Real: c.Num}
	default:
		return &sql.Const{Ty: sql.ConstNull}
	}
}

// ConstToCell is the reverse of CellToConst
func ConstToCell(c *sql.Const) table.Cell {
	switch c.Ty {
	case sql.ConstBool:
		return table.Bool(c.Bool)
	case sql.ConstStr:
		return table.Str(c.String)
	case sql.ConstInt:
		return table.Num(float64(c.Int))
	case sql.ConstReal:
		return table.Num(c.Real)
	default:
		return table.Null()
	}
}
