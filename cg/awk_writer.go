package cg

import (
	"fmt"
	"github.com/dianpeng/sheetql/table"
	"strings"
)

// A tiny line writer used to dump *AWK* source code with indentation. Blocks
// are opened and closed explicitly.
type awkWriter struct {
	indent int
	buf    strings.Builder
}

func (self *awkWriter) Line(f string, args ...interface{}) {
	self.buf.WriteString(strings.Repeat("  ", self.indent))
	self.buf.WriteString(fmt.Sprintf(f, args...))
	self.buf.WriteString("\n")
}

func (self *awkWriter) Open(f string, args ...interface{}) {
	if f == "" {
		self.Line("{")
	} else {
		self.Line(f+" {", args...)
	}
	self.indent++
}

func (self *awkWriter) Close() {
	self.indent--
	self.Line("}")
}

// Chunk writes a multi-line block as is, the leading newline is dropped.
func (self *awkWriter) Chunk(s string) {
	self.buf.WriteString(strings.TrimPrefix(s, "\n"))
}

func (self *awkWriter) String() string {
	return self.buf.String()
}

var awkEscape = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\n", "\\n",
	"\r", "\\r",
	"\t", "\\t",
)

func awkString(s string) string {
	return "\"" + awkEscape.Replace(s) + "\""
}

func awkField(idx int) string {
	return fmt.Sprintf("$%d", idx+1)
}

// kinds carried next to every value at runtime
const (
	kindNull   = "z"
	kindBool   = "b"
	kindNumber = "n"
	kindString = "s"
)

func cellKind(c table.Cell) string {
	switch c.Ty {
	case table.CellBool:
		return kindBool
	case table.CellNumber:
		return kindNumber
	case table.CellString:
		return kindString
	default:
		return kindNull
	}
}

// runtime helpers shared by every generated program. sq_kind mirrors
// table.Parse, sq_cmp compares values of the same kind only.
var awkRuntime = `
function sq_kind(x) {
  if (x ~ /` + table.NumberPattern + `/) return "n"
  if (toupper(x) == "TRUE" || toupper(x) == "FALSE") return "b"
  return "s"
}

function sq_bool(x) {
  return toupper(x) == "TRUE"
}

function sq_tf(c) {
  return c ? "TRUE" : "FALSE"
}

function sq_truthy(x, k) {
  if (k == "n") return (x + 0) != 0
  if (k == "b") return sq_bool(x)
  if (k == "z") return 0
  return x != ""
}

function sq_title(x, name) {
  return sq_truthy(x, sq_kind(x)) ? x : name
}

function sq_cmp(a, ka, b, kb, op) {
  if (ka != kb) return 0
  if (ka == "n") {
    a = a + 0
    b = b + 0
  } else if (ka == "b") {
    a = sq_bool(a)
    b = sq_bool(b)
  } else {
    a = a ""
    b = b ""
  }
  if (op == "=") return a == b
  if (op == "<") return a < b
  if (op == "<=") return a <= b
  if (op == ">") return a > b
  if (op == ">=") return a >= b
  return 0
}

function sq_key(x, k) {
  if (k == "n") return k ":" ((x + 0) == 0 ? "0" : sprintf("%.17g", x + 0))
  if (k == "b") return k ":" sq_bool(x)
  return k ":" x
}

function sq_fail(msg) {
  printf "eval: %s\n", msg > "/dev/stderr"
  sq_failed = 1
  exit 1
}
`
