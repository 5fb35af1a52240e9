package sql

import (
	"strings"
)

const (
	AggSum = iota
	AggCount
)

// AggFunc maps a function name, case insensitive, to its aggregation type.
// Only SUM and COUNT exist.
func AggFunc(n string) (int, bool) {
	switch strings.ToUpper(n) {
	case "SUM":
		return AggSum, true
	case "COUNT":
		return AggCount, true
	default:
		return -1, false
	}
}

func IsAggFunc(n string) bool {
	_, ok := AggFunc(n)
	return ok
}

func AggName(ty int) string {
	switch ty {
	case AggSum:
		return "SUM"
	case AggCount:
		return "COUNT"
	default:
		return "UNKNOWN"
	}
}
