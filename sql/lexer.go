package sql

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Operators and keywords. The grammar is scannerless, so these are only used
// as tags inside of the AST, ie Binary.Op and OrderBy.Order.
const (
	TkEq = iota
	TkLt
	TkGt
	TkLe
	TkGe

	TkAnd
	TkOr
)

func OpName(op int) string {
	switch op {
	case TkEq:
		return "="
	case TkLt:
		return "<"
	case TkGt:
		return ">"
	case TkLe:
		return "<="
	case TkGe:
		return ">="
	case TkAnd:
		return "AND"
	case TkOr:
		return "OR"
	default:
		return "?"
	}
}

// Lexer is the character level half of the parser. It owns the cursor and the
// furthest failure bookkeeping, every terminal of the grammar goes through it.
type Lexer struct {
	Source string
	Cursor int

	silent      int
	maxFailPos  int
	maxExpected []Expectation
}

func newLexer(xx string) *Lexer {
	return &Lexer{
		Source: xx,
	}
}

func (self *Lexer) eof() bool {
	return self.Cursor >= len(self.Source)
}

func (self *Lexer) peek() (rune, int) {
	if self.eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(self.Source[self.Cursor:])
}

// record an expectation at the current cursor, only the furthest position is
// kept around.
func (self *Lexer) fail(e Expectation) {
	if self.silent > 0 || self.Cursor < self.maxFailPos {
		return
	}
	if self.Cursor > self.maxFailPos {
		self.maxFailPos = self.Cursor
		self.maxExpected = nil
	}
	self.maxExpected = append(self.maxExpected, e)
}

func (self *Lexer) literal(text string) bool {
	if strings.HasPrefix(self.Source[self.Cursor:], text) {
		self.Cursor += len(text)
		return true
	}
	self.fail(literalExpectation(text))
	return false
}

func (self *Lexer) class(e Expectation, pred func(rune) bool) (rune, bool) {
	r, sz := self.peek()
	if sz != 0 && pred(r) {
		self.Cursor += sz
		return r, true
	}
	self.fail(e)
	return r, false
}

// run of one or more runes inside of a class
func (self *Lexer) classPlus(e Expectation, pred func(rune) bool) (string, bool) {
	start := self.Cursor
	if _, ok := self.class(e, pred); !ok {
		return "", false
	}
	for {
		if _, ok := self.class(e, pred); !ok {
			break
		}
	}
	return self.Source[start:self.Cursor], true
}

/* ----------------------------------------------------------------------------
 * Terminal rules
 * ---------------------------------------------------------------------------*/

var (
	expWhitespace = otherExpectation("whitespace")
	expInteger    = otherExpectation("integer")
	expDigit      = classExpectation("[0-9]")
	expNotQuote   = classExpectation("[^']")
	expIdent      = classExpectation("[A-Za-z0-9*#_]")
	expQuotedName = classExpectation("[A-Za-z0-9*#_ ]")
	expEnd        = endExpectation()
)

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isNotQuote(r rune) bool { return r != '\'' }

func isIdent(r rune) bool {
	return (r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		isDigit(r) ||
		r == '*' || r == '#' || r == '_'
}

func isQuotedName(r rune) bool {
	return isIdent(r) || r == ' '
}

// _ := [ \t\n\r]*
//
// Never fails. The rule is named, so the inner class is silent, yet the name
// itself is always recorded where the run stops.
func (self *Lexer) whitespace() {
	self.silent++
	for {
		if _, ok := self.class(expWhitespace, isSpace); !ok {
			break
		}
	}
	self.silent--
	self.fail(expWhitespace)
}

// integer := '-'? [0-9]+
func (self *Lexer) integer() (string, bool) {
	start := self.Cursor
	self.silent++
	if r, sz := self.peek(); sz != 0 && r == '-' {
		self.Cursor++
	}
	_, ok := self.classPlus(expDigit, isDigit)
	self.silent--

	if !ok {
		self.Cursor = start
		self.fail(expInteger)
		return "", false
	}
	return self.Source[start:self.Cursor], true
}

// fraction := [0-9]+, the part after the dot never carries a sign
func (self *Lexer) fraction() (string, bool) {
	start := self.Cursor
	self.silent++
	_, ok := self.classPlus(expDigit, isDigit)
	self.silent--
	if !ok {
		self.Cursor = start
		self.fail(expInteger)
		return "", false
	}
	return self.Source[start:self.Cursor], true
}

// text := "'" [^']* "'"
func (self *Lexer) text() (string, bool) {
	start := self.Cursor
	if !self.literal("'") {
		return "", false
	}
	bodyStart := self.Cursor
	for {
		if _, ok := self.class(expNotQuote, isNotQuote); !ok {
			break
		}
	}
	body := self.Source[bodyStart:self.Cursor]
	if !self.literal("'") {
		self.Cursor = start
		return "", false
	}
	return body, true
}

func (self *Lexer) ident() (string, bool) {
	return self.classPlus(expIdent, isIdent)
}

// quoted name := "'" [A-Za-z0-9*#_ ]+ "'"
func (self *Lexer) quotedName() (string, bool) {
	start := self.Cursor
	if !self.literal("'") {
		return "", false
	}
	body, ok := self.classPlus(expQuotedName, isQuotedName)
	if !ok || !self.literal("'") {
		self.Cursor = start
		return "", false
	}
	return body, true
}

func parseIntLit(text string) *Const {
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &Const{Ty: ConstInt, Int: v}
	}
	// too large for 64 bits, degrade to a real number
	v, _ := strconv.ParseFloat(text, 64)
	return &Const{Ty: ConstReal, Real: v}
}

func parseRealLit(ipart, fpart string) *Const {
	v, _ := strconv.ParseFloat(ipart+"."+fpart, 64)
	return &Const{Ty: ConstReal, Real: v}
}
