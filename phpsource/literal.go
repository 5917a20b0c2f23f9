package phpsource

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/takumakei/typed-extconf-gen/classgen"
)

// Literal returns the PHP literal of v. Sequences print as short lists,
// mappings as short arrays with string keys in their given order.
func Literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return quote(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case float32:
		return formatFloat(float64(x)), nil
	case float64:
		return formatFloat(x), nil
	case []any:
		items := make([]string, len(x))
		for i, e := range x {
			s, err := Literal(e)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		return "[" + strings.Join(items, ", ") + "]", nil
	case classgen.Map:
		items := make([]string, len(x))
		for i, item := range x {
			s, err := Literal(item.Value)
			if err != nil {
				return "", err
			}
			items[i] = quote(item.Key) + " => " + s
		}
		return "[" + strings.Join(items, ", ") + "]", nil
	case map[string]any:
		return Literal(classgen.MapOf(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}

// quote prints a single-quoted string; only backslash and quote need escaping.
func quote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

// formatFloat keeps a decimal point or exponent so PHP reads the literal
// back as a float. Magnitudes outside [1e-4, 1e15) use exponent notation.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e15) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
