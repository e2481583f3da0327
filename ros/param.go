package ros

import (
	"math"
	"strings"

	"github.com/buger/jsonparser"
)

// loadParamFromString types a "_name:=value" command-line parameter the way
// roslaunch does for scalars: numbers, booleans and quoted strings are
// decoded, anything else is kept as the literal string.
func loadParamFromString(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	value, dataType, end, err := jsonparser.Get([]byte(trimmed))
	if err != nil || end != len(trimmed) {
		return s
	}
	switch dataType {
	case jsonparser.Number:
		if i, err := jsonparser.ParseInt(value); err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return int32(i)
			}
			return float64(i)
		}
		if f, err := jsonparser.ParseFloat(value); err == nil {
			return f
		}
	case jsonparser.Boolean:
		if b, err := jsonparser.ParseBoolean(value); err == nil {
			return b
		}
	case jsonparser.String:
		if str, err := jsonparser.ParseString(value); err == nil {
			return str
		}
	}
	return s
}
