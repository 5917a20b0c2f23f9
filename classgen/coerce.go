package classgen

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// CoerceDefault turns a raw default value into a literal of the declared
// type. It reports false only when value is nil, meaning no default is
// emitted at all; every other input yields a literal.
//
//	string, unknown tags  the value if it is a string, else ""
//	bool                  truthiness of the value
//	int                   the integer part of a numeric-looking value, else 0
//	float                 the numeric-looking value as float64, else 0.0
//	array                 a deep copy of a sequence or mapping, else []any{}
//
// Integer results are int, float results float64, sequences []any and
// mappings Map.
func CoerceDefault(value any, t TypeTag) (any, bool) {
	if value == nil {
		return nil, false
	}
	switch t {
	case TypeString:
		return stringOrEmpty(value), true
	case TypeBool:
		return truthy(value), true
	case TypeInt:
		if n, ok := toInt(value); ok {
			return n, true
		}
		return 0, true
	case TypeFloat:
		if f, ok := toFloat(value); ok {
			return f, true
		}
		return 0.0, true
	case TypeArray:
		if isContainer(value) {
			return copyValue(value), true
		}
		return []any{}, true
	default:
		return stringOrEmpty(value), true
	}
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	}
	if isContainer(v) {
		return containerLen(v) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}

var (
	reNumeric = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?[ \t\n\r\v\f]*$`)
	reInteger = regexp.MustCompile(`^[+-]?\d+$`)
)

// IsNumeric reports whether v looks like a number: any Go integer or float
// kind, or a string holding an integer or decimal literal with an optional
// exponent and surrounding whitespace. Booleans are not numeric.
func IsNumeric(v any) bool {
	if s, ok := v.(string); ok {
		return reNumeric.MatchString(s)
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toInt truncates a numeric-looking value toward zero. Values outside the
// int range saturate; NaN becomes 0.
func toInt(v any) (int, bool) {
	if !IsNumeric(v) {
		return 0, false
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if reInteger.MatchString(s) {
			// ParseInt saturates on overflow, the error only says so.
			n, _ := strconv.ParseInt(s, 10, 64)
			return int(n), true
		}
		f, _ := strconv.ParseFloat(s, 64)
		return truncate(f), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return truncate(rv.Float()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return math.MaxInt, true
		}
		return int(u), true
	default:
		return int(rv.Int()), true
	}
}

func truncate(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// toFloat widens a numeric-looking value to float64.
func toFloat(v any) (float64, bool) {
	if !IsNumeric(v) {
		return 0, false
	}
	if s, ok := v.(string); ok {
		// Out of range literals parse to ±Inf along with an error.
		f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	default:
		return float64(rv.Int()), true
	}
}
