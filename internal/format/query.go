package format

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/google/go-querystring/query"
)

// QueryString URL-encodes params as "key=value&..." with keys sorted.
//
// params is a map, url.Values or a struct carrying `url` tags. Nested slices
// and maps are written as key[0] and key[sub], booleans as 1 and 0, nil values
// are skipped. Anything else yields an empty string.
func QueryString(params any) string {
	if params == nil {
		return ""
	}

	if v, ok := params.(url.Values); ok {
		return v.Encode()
	}

	rv := reflect.ValueOf(params)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}

		rv = rv.Elem()
	}

	values := url.Values{}

	switch rv.Kind() {
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			addValue(values, fmt.Sprint(iter.Key().Interface()), iter.Value())
		}
	case reflect.Struct:
		v, err := query.Values(rv.Interface())
		if err != nil {
			return ""
		}

		values = v
	default:
		return ""
	}

	return values.Encode()
}

func addValue(values url.Values, key string, rv reflect.Value) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return
	case reflect.Bool:
		if rv.Bool() {
			values.Add(key, "1")
		} else {
			values.Add(key, "0")
		}
	case reflect.String:
		values.Add(key, rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		values.Add(key, strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		values.Add(key, strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		values.Add(key, strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			addValue(values, key+"["+strconv.Itoa(i)+"]", rv.Index(i))
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			addValue(values, key+"["+fmt.Sprint(iter.Key().Interface())+"]", iter.Value())
		}
	case reflect.Struct:
		nested, err := query.Values(rv.Interface())
		if err != nil {
			return
		}

		for sub, vs := range nested {
			for _, v := range vs {
				values.Add(key+"["+sub+"]", v)
			}
		}
	default:
		values.Add(key, fmt.Sprint(rv.Interface()))
	}
}
