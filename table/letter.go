package table

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLetter converts a zero based column index into spreadsheet notation,
// 0 -> A, 25 -> Z, 26 -> AA.
func ColumnLetter(idx int) string {
	if idx < 0 {
		return ""
	}
	buf := []byte{}
	for {
		buf = append([]byte{byte('A' + idx%26)}, buf...)
		idx = idx/26 - 1
		if idx < 0 {
			break
		}
	}
	return string(buf)
}

// LetterIndex is the reverse of ColumnLetter, letters are case insensitive.
// Returns -1 when the input is not a column letter.
func LetterIndex(letter string) int {
	l := strings.ToUpper(strings.TrimSpace(letter))
	if l == "" {
		return -1
	}
	idx := 0
	for i := 0; i < len(l); i++ {
		c := l[i]
		if c < 'A' || c > 'Z' {
			return -1
		}
		idx = idx*26 + int(c-'A') + 1
	}
	return idx - 1
}

// ParseAddress parses a cell address like "A5" into zero based column and row
func ParseAddress(addr string) (int, int, error) {
	a := strings.ToUpper(strings.TrimSpace(addr))
	end := 0
	for end < len(a) && a[end] >= 'A' && a[end] <= 'Z' {
		end++
	}
	if end == 0 || end == len(a) {
		return 0, 0, fmt.Errorf("invalid cell address: %s", addr)
	}
	row, err := strconv.Atoi(a[end:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row number in cell address: %s", addr)
	}
	if row < 1 {
		return 0, 0, fmt.Errorf("row number must be positive: %s", addr)
	}
	return LetterIndex(a[:end]), row - 1, nil
}
