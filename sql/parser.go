package sql

// parser of the sheet query language. It is a scannerless recursive descent
// parser with backtracking, every alternative is tried in order and the first
// one that matches wins. The grammar in EBNF:
//
// ### start rules ------------------------------------------------------------
//
// where    := _ exp _
// select   := _ select-var (_ ',' _ select-var)* _
// agg      := _ call (_ ',' _ call)* _
// group-by := _ group-var (_ ',' _ group-var)* _
// order-by := _ order-var (_ ',' _ order-var)* _
// tagged   := _ ('<WHERE>' where | '<SELECT>' select | '<AGG>' agg |
//                '<GROUP_BY>' group-by | '<ORDER_BY>' order-by)
//
// select-var := single-exp (_ 'AS' _ (text | ident))?
// group-var  := column | primitive
// order-var  := column (_ ('ASC' | 'DESC'))?
//
// ### expression -------------------------------------------------------------
//
// exp        := single-exp _ combo-op _ exp | single-exp
// single-exp := '(' _ exp _ ')' | compare | unit
// compare    := unit _ compare-op _ unit
// compare-op := '>=' | '<=' | '>' | '<' | '='
// combo-op   := 'OR' | 'AND'
// unit       := float | integer | text | call | column | cell-ref | boolean
// primitive  := float | integer | text | boolean
// column     := '*' (quoted-name | ident)
// cell-ref   := '#' ident
// call       := '$' ident '(' _ (unit (_ ',' _ unit)*)? _ ')'
//
// ### terminal ---------------------------------------------------------------
//
// integer     := '-'? [0-9]+
// float       := integer '.' [0-9]+
// text        := "'" [^']* "'"
// boolean     := 'TRUE' | 'FALSE'
// ident       := [A-Za-z0-9*#_]+
// quoted-name := "'" [A-Za-z0-9*#_ ]+ "'"
// _           := [ \t\n\r]*
//
// AND and OR share one precedence level and chain to the right, ie
// `a AND b OR c` is `a AND (b OR c)`.
//
// On failure the error reports every expectation tried at the furthest
// position the parser reached.
// ----------------------------------------------------------------------------

import (
	"fmt"
)

type Parser struct {
	L *Lexer
}

func newParser(xx string) *Parser {
	return &Parser{
		L: newLexer(xx),
	}
}

func NewParser(xx string) *Parser {
	return newParser(xx)
}

func (self *Parser) snippet(start, end int) string {
	if start >= end {
		start = end
	}
	return self.L.Source[start:end]
}

func (self *Parser) currentCodeInfo(start int) CodeInfo {
	return CodeInfo{
		Start:   start,
		End:     self.L.Cursor,
		Snippet: self.snippet(start, self.L.Cursor),
	}
}

func (self *Parser) backtrack(pos int) {
	self.L.Cursor = pos
}

func (self *Parser) err() error {
	return newParseError(self.L.Source, self.L.maxFailPos, self.L.maxExpected)
}

// finish the parsing, everything must have been consumed
func (self *Parser) finish(c *Code, ok bool) (*Code, error) {
	if ok && self.L.eof() {
		return c, nil
	}
	if ok {
		self.L.fail(expEnd)
	}
	return nil, self.err()
}

// Parse the whole source with the given start rule.
func (self *Parser) Parse(rule int) (*Code, error) {
	if !IsRule(rule) {
		return nil, fmt.Errorf("unknown start rule %d", rule)
	}
	start := self.L.Cursor
	self.L.whitespace()
	c, ok := self.parseRule(rule, start)
	return self.finish(c, ok)
}

// ParseTagged parses source prefixed with the start rule tag, ie
// `<WHERE>*A = 1`.
func (self *Parser) ParseTagged() (*Code, error) {
	start := self.L.Cursor
	self.L.whitespace()

	for rule, name := range ruleName {
		if self.L.literal("<" + name + ">") {
			self.L.whitespace()
			c, ok := self.parseRule(rule, start)
			return self.finish(c, ok)
		}
	}
	return self.finish(nil, false)
}

func (self *Parser) parseRule(rule int, start int) (*Code, bool) {
	c := &Code{Rule: rule}
	ok := false

	switch rule {
	case RuleWhere:
		c.Where, ok = self.parseWhere()
		break
	case RuleSelect:
		c.Projection, ok = self.parseProjection()
		break
	case RuleAgg:
		c.Agg, ok = self.parseAgg()
		break
	case RuleGroupBy:
		c.GroupBy, ok = self.parseGroupBy()
		break
	case RuleOrderBy:
		c.OrderBy, ok = self.parseOrderBy()
		break
	default:
		return nil, false
	}
	if !ok {
		return nil, false
	}

	self.L.whitespace()
	c.CodeInfo = self.currentCodeInfo(start)
	return c, true
}

// comma separated list, at least one element. The visitor gets the index of
// the element to parse and reports whether it matched.
func (self *Parser) parseList(visitor func(int) bool) bool {
	if !visitor(0) {
		return false
	}
	for idx := 1; ; idx++ {
		save := self.L.Cursor
		self.L.whitespace()
		if !self.L.literal(",") {
			self.backtrack(save)
			break
		}
		self.L.whitespace()
		if !visitor(idx) {
			self.backtrack(save)
			break
		}
	}
	return true
}

/* ----------------------------------------------------------------------------
 * Per operator rules
 * ---------------------------------------------------------------------------*/

func (self *Parser) parseWhere() (*Where, bool) {
	start := self.L.Cursor
	cond, ok := self.parseExp()
	if !ok {
		return nil, false
	}
	return &Where{
		CodeInfo:  self.currentCodeInfo(start),
		Condition: cond,
	}, true
}

func (self *Parser) parseProjection() (*Projection, bool) {
	start := self.L.Cursor
	p := &Projection{}

	ok := self.parseList(func(idx int) bool {
		col, ok := self.parseSelectVar()
		if ok {
			col.ColIndex = idx + 1
			p.ValueList = append(p.ValueList, col)
		}
		return ok
	})
	if !ok {
		return nil, false
	}
	p.CodeInfo = self.currentCodeInfo(start)
	return p, true
}

func (self *Parser) parseSelectVar() (*Col, bool) {
	start := self.L.Cursor
	value, ok := self.parseSingleExp()
	if !ok {
		return nil, false
	}
	col := &Col{
		Value: value,
	}

	// alias
	save := self.L.Cursor
	self.L.whitespace()
	if self.L.literal("AS") {
		self.L.whitespace()
		if name, ok := self.L.text(); ok {
			col.As = name
		} else if name, ok := self.L.ident(); ok {
			col.As = name
		} else {
			self.backtrack(save)
		}
	} else {
		self.backtrack(save)
	}

	col.CodeInfo = self.currentCodeInfo(start)
	return col, true
}

func (self *Parser) parseAgg() (*Agg, bool) {
	start := self.L.Cursor
	agg := &Agg{}
	ok := self.parseList(func(_ int) bool {
		call, ok := self.parseCall()
		if ok {
			agg.List = append(agg.List, call)
		}
		return ok
	})
	if !ok {
		return nil, false
	}
	agg.CodeInfo = self.currentCodeInfo(start)
	return agg, true
}

func (self *Parser) parseGroupBy() (*GroupBy, bool) {
	start := self.L.Cursor
	g := &GroupBy{}
	ok := self.parseList(func(_ int) bool {
		if col, ok := self.parseColumn(); ok {
			g.Name = append(g.Name, col)
			return true
		}
		if c, ok := self.parsePrimitive(); ok {
			g.Name = append(g.Name, c)
			return true
		}
		return false
	})
	if !ok {
		return nil, false
	}
	g.CodeInfo = self.currentCodeInfo(start)
	return g, true
}

func (self *Parser) parseOrderBy() (*OrderBy, bool) {
	start := self.L.Cursor
	o := &OrderBy{}
	ok := self.parseList(func(_ int) bool {
		v, ok := self.parseOrderVar()
		if ok {
			o.List = append(o.List, v)
		}
		return ok
	})
	if !ok {
		return nil, false
	}
	o.CodeInfo = self.currentCodeInfo(start)
	return o, true
}

func (self *Parser) parseOrderVar() (*OrderVar, bool) {
	start := self.L.Cursor
	col, ok := self.parseColumn()
	if !ok {
		return nil, false
	}
	v := &OrderVar{
		Name:  col,
		Order: OrderAsc,
	}

	save := self.L.Cursor
	self.L.whitespace()
	if self.L.literal("ASC") {
		v.Order = OrderAsc
	} else if self.L.literal("DESC") {
		v.Order = OrderDesc
	} else {
		self.backtrack(save)
	}
	v.CodeInfo = self.currentCodeInfo(start)
	return v, true
}

/* ----------------------------------------------------------------------------
 * Expression
 * ---------------------------------------------------------------------------*/

func (self *Parser) parseExp() (Expr, bool) {
	start := self.L.Cursor
	lhs, ok := self.parseSingleExp()
	if !ok {
		return nil, false
	}

	save := self.L.Cursor
	self.L.whitespace()
	if op, ok := self.parseComboOp(); ok {
		self.L.whitespace()
		if rhs, ok := self.parseExp(); ok {
			return &Binary{
				Op:       op,
				L:        lhs,
				R:        rhs,
				CodeInfo: self.currentCodeInfo(start),
			}, true
		}
	}
	self.backtrack(save)
	return lhs, true
}

func (self *Parser) parseSingleExp() (Expr, bool) {
	start := self.L.Cursor
	if self.L.literal("(") {
		self.L.whitespace()
		if e, ok := self.parseExp(); ok {
			self.L.whitespace()
			if self.L.literal(")") {
				return e, true
			}
		}
		self.backtrack(start)
	}
	if e, ok := self.parseCompare(); ok {
		return e, true
	}
	return self.parseUnit()
}

func (self *Parser) parseCompare() (Expr, bool) {
	start := self.L.Cursor
	lhs, ok := self.parseUnit()
	if !ok {
		return nil, false
	}
	self.L.whitespace()
	op, ok := self.parseCompareOp()
	if !ok {
		self.backtrack(start)
		return nil, false
	}
	self.L.whitespace()
	rhs, ok := self.parseUnit()
	if !ok {
		self.backtrack(start)
		return nil, false
	}
	return &Binary{
		Op:       op,
		L:        lhs,
		R:        rhs,
		CodeInfo: self.currentCodeInfo(start),
	}, true
}

// two characters operators go first since they share a prefix with the single
// character ones
func (self *Parser) parseCompareOp() (int, bool) {
	switch {
	case self.L.literal(">="):
		return TkGe, true
	case self.L.literal("<="):
		return TkLe, true
	case self.L.literal(">"):
		return TkGt, true
	case self.L.literal("<"):
		return TkLt, true
	case self.L.literal("="):
		return TkEq, true
	default:
		return -1, false
	}
}

func (self *Parser) parseComboOp() (int, bool) {
	switch {
	case self.L.literal("OR"):
		return TkOr, true
	case self.L.literal("AND"):
		return TkAnd, true
	default:
		return -1, false
	}
}

func (self *Parser) parseUnit() (Expr, bool) {
	if c, ok := self.parseNumber(); ok {
		return c, true
	}
	if c, ok := self.parseText(); ok {
		return c, true
	}
	if c, ok := self.parseCall(); ok {
		return c, true
	}
	if c, ok := self.parseColumn(); ok {
		return c, true
	}
	if c, ok := self.parseCellRef(); ok {
		return c, true
	}
	if c, ok := self.parseBoolean(); ok {
		return c, true
	}
	return nil, false
}

func (self *Parser) parsePrimitive() (*Const, bool) {
	if c, ok := self.parseNumber(); ok {
		return c, true
	}
	if c, ok := self.parseText(); ok {
		return c, true
	}
	return self.parseBoolean()
}

// float | integer
func (self *Parser) parseNumber() (*Const, bool) {
	start := self.L.Cursor
	ipart, ok := self.L.integer()
	if !ok {
		return nil, false
	}

	afterInt := self.L.Cursor
	if self.L.literal(".") {
		if fpart, ok := self.L.fraction(); ok {
			c := parseRealLit(ipart, fpart)
			c.CodeInfo = self.currentCodeInfo(start)
			return c, true
		}
	}

	self.backtrack(afterInt)
	c := parseIntLit(ipart)
	c.CodeInfo = self.currentCodeInfo(start)
	return c, true
}

func (self *Parser) parseText() (*Const, bool) {
	start := self.L.Cursor
	str, ok := self.L.text()
	if !ok {
		return nil, false
	}
	return &Const{
		Ty:       ConstStr,
		String:   str,
		CodeInfo: self.currentCodeInfo(start),
	}, true
}

func (self *Parser) parseBoolean() (*Const, bool) {
	start := self.L.Cursor
	c := &Const{Ty: ConstBool}
	if self.L.literal("TRUE") {
		c.Bool = true
	} else if self.L.literal("FALSE") {
		c.Bool = false
	} else {
		return nil, false
	}
	c.CodeInfo = self.currentCodeInfo(start)
	return c, true
}

func (self *Parser) parseColumn() (*Column, bool) {
	start := self.L.Cursor
	if !self.L.literal("*") {
		return nil, false
	}
	col := &Column{}
	if name, ok := self.L.quotedName(); ok {
		col.Id = name
		col.Quoted = true
	} else if name, ok := self.L.ident(); ok {
		col.Id = name
	} else {
		self.backtrack(start)
		return nil, false
	}
	col.CodeInfo = self.currentCodeInfo(start)
	return col, true
}

func (self *Parser) parseCellRef() (*CellRef, bool) {
	start := self.L.Cursor
	if !self.L.literal("#") {
		return nil, false
	}
	addr, ok := self.L.ident()
	if !ok {
		self.backtrack(start)
		return nil, false
	}
	return &CellRef{
		Address:  addr,
		CodeInfo: self.currentCodeInfo(start),
	}, true
}

func (self *Parser) parseCall() (*Call, bool) {
	start := self.L.Cursor
	if !self.L.literal("$") {
		return nil, false
	}
	name, ok := self.L.ident()
	if !ok || !self.L.literal("(") {
		self.backtrack(start)
		return nil, false
	}
	call := &Call{
		Name: name,
	}

	self.L.whitespace()
	argStart := self.L.Cursor
	ok = self.parseList(func(_ int) bool {
		arg, ok := self.parseUnit()
		if ok {
			call.Parameters = append(call.Parameters, arg)
		}
		return ok
	})
	if !ok {
		self.backtrack(argStart)
	}
	self.L.whitespace()

	if !self.L.literal(")") {
		self.backtrack(start)
		return nil, false
	}
	call.CodeInfo = self.currentCodeInfo(start)
	return call, true
}

/* ----------------------------------------------------------------------------
 * Entry
 * ---------------------------------------------------------------------------*/

// Parse text with the start rule selected by the caller.
func Parse(text string, rule int) (*Code, error) {
	return newParser(text).Parse(rule)
}

// ParseTagged parses text that carries its start rule as a prefix tag.
func ParseTagged(text string) (*Code, error) {
	return newParser(text).ParseTagged()
}

// ParseExpr parses a single predicate expression, ie the WHERE rule.
func ParseExpr(text string) (Expr, error) {
	c, err := Parse(text, RuleWhere)
	if err != nil {
		return nil, err
	}
	return c.Where.Condition, nil
}
