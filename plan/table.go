package plan

import (
	"github.com/dianpeng/sheetql/table"
	"strings"
)

// ColumnMap maps a normalized header name to its column letter. It is built
// from the first header row of the table an operator works on.
type ColumnMap map[string]string

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildColumnMap creates the name to letter map, with duplicated header names
// the right most column wins.
func BuildColumnMap(header table.Row) ColumnMap {
	out := make(ColumnMap)
	for idx, c := range header {
		name := normalizeName(c.String())
		if name == "" {
			continue
		}
		out[name] = table.ColumnLetter(idx)
	}
	return out
}

// Lookup resolves a column reference to its letter and zero based index. A
// header name takes priority, otherwise the reference itself must be a
// letter.
func (self ColumnMap) Lookup(ref string) (string, int, bool) {
	if letter, ok := self[normalizeName(ref)]; ok {
		return letter, table.LetterIndex(letter), true
	}
	letter := strings.ToUpper(strings.TrimSpace(ref))
	idx := table.LetterIndex(letter)
	if idx < 0 {
		return "", -1, false
	}
	return letter, idx, true
}
