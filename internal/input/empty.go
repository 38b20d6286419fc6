package input

import "reflect"

// IsEmpty reports whether v is nil, a nil pointer, the empty string or an
// empty slice, array or map. Zero numbers and false are not empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}

	if s, ok := v.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Get returns m[key], or def when the key is missing or holds a nil value.
func Get[K comparable, V any](m map[K]V, key K, def V) V {
	v, ok := m[key]
	if !ok || IsNil(v) {
		return def
	}

	return v
}

// IsNil reports whether v is nil or a typed nil pointer, map, slice, chan or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
