package classgen

import (
	"fmt"
	"reflect"
	"sort"
)

// Map is a mapping that keeps the order its items were declared in.
// Decoders produce it for mapping-shaped defaults so the generated source
// lists keys the way the declaration did.
type Map []MapItem

// MapItem is one key/value pair of a Map.
type MapItem struct {
	Key   string
	Value any
}

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, item := range m {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in declaration order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, item := range m {
		keys[i] = item.Key
	}
	return keys
}

// MapOf converts a plain map into a Map sorted by key.
func MapOf(m map[string]any) Map {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Map, len(keys))
	for i, k := range keys {
		out[i] = MapItem{Key: k, Value: m[k]}
	}
	return out
}

// isContainer reports whether v is a sequence or a mapping.
func isContainer(v any) bool {
	switch v.(type) {
	case []any, Map, map[string]any:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// copyValue returns a deep copy of v. Sequences become []any and mappings
// become Map, so printers only see those two container shapes.
func copyValue(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e)
		}
		return out
	case Map:
		out := make(Map, len(x))
		for i, item := range x {
			out[i] = MapItem{Key: item.Key, Value: copyValue(item.Value)}
		}
		return out
	case map[string]any:
		return copyValue(MapOf(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = copyValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		plain := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			plain[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return copyValue(plain)
	}
	return v
}

// containerLen returns the number of elements of a container value.
func containerLen(v any) int {
	switch x := v.(type) {
	case []any:
		return len(x)
	case Map:
		return len(x)
	case map[string]any:
		return len(x)
	}
	return reflect.ValueOf(v).Len()
}
