package sql

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	ExpectLiteral = iota
	ExpectClass
	ExpectEnd
	ExpectOther
)

// Expectation is one thing the parser tried to match at the failure position.
type Expectation struct {
	Ty   int
	Text string // literal text, class pattern or rule description
}

func literalExpectation(text string) Expectation { return Expectation{Ty: ExpectLiteral, Text: text} }
func classExpectation(class string) Expectation  { return Expectation{Ty: ExpectClass, Text: class} }
func endExpectation() Expectation                { return Expectation{Ty: ExpectEnd} }
func otherExpectation(desc string) Expectation   { return Expectation{Ty: ExpectOther, Text: desc} }

func (self Expectation) Description() string {
	switch self.Ty {
	case ExpectLiteral:
		return `"` + escapeLiteral(self.Text) + `"`
	case ExpectEnd:
		return "end of input"
	default:
		return self.Text
	}
}

type Position struct {
	Offset int // byte offset into the source
	Line   int
	Column int
}

type Location struct {
	Start Position
	End   Position
}

// ParseError is returned for any malformed expression. The message has the
// shape `Expected "(", integer, or whitespace but "x" found.`
type ParseError struct {
	Message  string
	Expected []Expectation
	Found    *rune // nil means end of input
	Location Location
	Source   string // text that failed to parse
}

func (self *ParseError) Error() string {
	return self.Message
}

// Format renders the error with the offending line and a caret under the
// failure column.
func (self *ParseError) Format(source string) string {
	buf := &bytes.Buffer{}
	start := self.Location.Start
	buf.WriteString(fmt.Sprintf("Error: %s\n", self.Message))

	lines := strings.Split(source, "\n")
	if start.Line < 1 || start.Line > len(lines) {
		return strings.TrimRight(buf.String(), "\n")
	}
	line := strings.TrimRight(lines[start.Line-1], "\r")
	gutter := len(fmt.Sprintf("%d", start.Line))
	pad := strings.Repeat(" ", gutter)

	buf.WriteString(fmt.Sprintf("%s--> %d:%d\n", pad, start.Line, start.Column))
	buf.WriteString(fmt.Sprintf("%s |\n", pad))
	buf.WriteString(fmt.Sprintf("%d | %s\n", start.Line, line))

	width := 1
	if self.Location.End.Line == start.Line && self.Location.End.Column > start.Column {
		width = self.Location.End.Column - start.Column
	}
	buf.WriteString(fmt.Sprintf("%s | %s%s", pad, strings.Repeat(" ", start.Column-1), strings.Repeat("^", width)))
	return buf.String()
}

// position of an offset, lines and columns start at 1 and the column counts
// runes, it restarts after every line feed.
func positionOf(source string, offset int) Position {
	line, col := 1, 1
	idx := 0
	for idx < offset && idx < len(source) {
		r, sz := utf8.DecodeRuneInString(source[idx:])
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		idx += sz
	}
	return Position{Offset: offset, Line: line, Column: col}
}

func newParseError(source string, pos int, expected []Expectation) *ParseError {
	var found *rune
	end := pos
	if pos < len(source) {
		r, sz := utf8.DecodeRuneInString(source[pos:])
		found = &r
		end = pos + sz
	}

	// dedup and sort by description
	exp := []Expectation{}
	seen := map[string]bool{}
	for _, e := range expected {
		d := e.Description()
		if !seen[d] {
			seen[d] = true
			exp = append(exp, e)
		}
	}
	sort.SliceStable(exp, func(i, j int) bool {
		return exp[i].Description() < exp[j].Description()
	})

	return &ParseError{
		Message:  buildMessage(exp, found),
		Expected: exp,
		Found:    found,
		Source:   source,
		Location: Location{
			Start: positionOf(source, pos),
			End:   positionOf(source, end),
		},
	}
}

func buildMessage(expected []Expectation, found *rune) string {
	desc := []string{}
	for _, e := range expected {
		desc = append(desc, e.Description())
	}

	var expect string
	switch len(desc) {
	case 0:
		expect = "nothing"
		break
	case 1:
		expect = desc[0]
		break
	case 2:
		expect = desc[0] + " or " + desc[1]
		break
	default:
		expect = strings.Join(desc[:len(desc)-1], ", ") + ", or " + desc[len(desc)-1]
		break
	}

	foundDesc := "end of input"
	if found != nil {
		foundDesc = `"` + escapeLiteral(string(*found)) + `"`
	}
	return fmt.Sprintf("Expected %s but %s found.", expect, foundDesc)
}

func escapeLiteral(s string) string {
	buf := &strings.Builder{}
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		case 0:
			buf.WriteString(`\0`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				buf.WriteString(fmt.Sprintf(`\x%02X`, r))
			} else {
				buf.WriteRune(r)
			}
		}
	}
	return buf.String()
}
