package table

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	CellNull = iota
	CellBool
	CellNumber
	CellString
)

// A single scalar stored inside of a table. The host only ever hands us
// numbers, strings and booleans, null is used for missing/empty values.
type Cell struct {
	Ty   int
	Bool bool
	Num  float64
	Str  string
}

func Null() Cell             { return Cell{Ty: CellNull} }
func Bool(b bool) Cell       { return Cell{Ty: CellBool, Bool: b} }
func Num(n float64) Cell     { return Cell{Ty: CellNumber, Num: n} }
func Str(s string) Cell      { return Cell{Ty: CellString, Str: s} }
func (self Cell) IsNull() bool { return self.Ty == CellNull }

// FromValue converts a native go value into a cell. All integer and float
// kinds collapse into a number.
func FromValue(v interface{}) (Cell, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Cell:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return Str(x), nil
	case []byte:
		return Str(string(x)), nil
	case float64:
		return Num(x), nil
	case float32:
		return Num(float64(x)), nil
	case int:
		return Num(float64(x)), nil
	case int8:
		return Num(float64(x)), nil
	case int16:
		return Num(float64(x)), nil
	case int32:
		return Num(float64(x)), nil
	case int64:
		return Num(float64(x)), nil
	case uint:
		return Num(float64(x)), nil
	case uint8:
		return Num(float64(x)), nil
	case uint16:
		return Num(float64(x)), nil
	case uint32:
		return Num(float64(x)), nil
	case uint64:
		return Num(float64(x)), nil
	default:
		return Null(), fmt.Errorf("unsupported cell value of type %T", v)
	}
}

// Value returns the native go representation, nil for null.
func (self Cell) Value() interface{} {
	switch self.Ty {
	case CellBool:
		return self.Bool
	case CellNumber:
		return self.Num
	case CellString:
		return self.Str
	default:
		return nil
	}
}

func formatNum(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// NumberPattern matches the text form of a number. Generated awk filters use
// the same pattern so both sides agree on what a number is.
const NumberPattern = `^[-+]?([0-9]+[.]?[0-9]*|[.][0-9]+)([eE][-+]?[0-9]+)?$`

var numberRe = regexp.MustCompile(NumberPattern)

// Parse infers a cell from text. Numbers and TRUE/FALSE (any case) are
// recognized, everything else stays a string.
func Parse(s string) Cell {
	if numberRe.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Num(f)
		}
	}
	switch strings.ToUpper(s) {
	case "TRUE":
		return Bool(true)
	case "FALSE":
		return Bool(false)
	}
	return Str(s)
}

// String is the display form of the cell, used for headers and text output.
func (self Cell) String() string {
	switch self.Ty {
	case CellBool:
		if self.Bool {
			return "TRUE"
		}
		return "FALSE"
	case CellNumber:
		return formatNum(self.Num)
	case CellString:
		return self.Str
	default:
		return ""
	}
}

// Truthy follows the spreadsheet notion of a *set* value: 0, empty string,
// false and null are all false.
func (self Cell) Truthy() bool {
	switch self.Ty {
	case CellBool:
		return self.Bool
	case CellNumber:
		return self.Num != 0 && !math.IsNaN(self.Num)
	case CellString:
		return self.Str != ""
	default:
		return false
	}
}

// Compare orders two cells of the same kind. Cells of different kinds are not
// comparable and ok is false.
func Compare(a, b Cell) (int, bool) {
	if a.Ty != b.Ty {
		return 0, false
	}
	switch a.Ty {
	case CellNull:
		return 0, true
	case CellBool:
		switch {
		case a.Bool == b.Bool:
			return 0, true
		case !a.Bool:
			return -1, true
		default:
			return 1, true
		}
	case CellNumber:
		switch {
		case a.Num < b.Num:
			return -1, true
		case a.Num > b.Num:
			return 1, true
		case a.Num == b.Num:
			return 0, true
		default:
			return 0, false // NaN
		}
	default:
		return strings.Compare(a.Str, b.Str), true
	}
}

func Equal(a, b Cell) bool {
	r, ok := Compare(a, b)
	return ok && r == 0
}

// Order is a total order over every cell, kinds are ranked as
// null < bool < number < string and cells of one kind use Compare.
func Order(a, b Cell) int {
	if a.Ty != b.Ty {
		if a.Ty < b.Ty {
			return -1
		}
		return 1
	}
	r, _ := Compare(a, b)
	return r
}
