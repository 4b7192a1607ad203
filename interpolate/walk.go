package interpolate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Lookup resolves path against the record, then the variables.
func Lookup(ctx Context, path []string) (any, bool) {
	if v, ok := Walk(ctx.Record, path); ok {
		return v, true
	}
	return Walk(ctx.Variables, path)
}

// Walk follows path through nested maps, slices and structs. At each level
// the key is tried literally and then by its string form, so {1: "a"} is
// reachable as "1". A nil terminal value counts as not found.
func Walk(data any, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := data
	for _, key := range path {
		if key == "" {
			return nil, false
		}
		next, ok := step(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if cur == nil {
		return nil, false
	}
	rv := reflect.ValueOf(cur)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil() {
		return nil, false
	}
	return cur, true
}

func step(cur any, key string) (any, bool) {
	switch c := cur.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case map[any]any:
		if v, ok := c[key]; ok {
			return v, true
		}
		if n, err := strconv.Atoi(key); err == nil {
			if v, ok := c[n]; ok {
				return v, true
			}
		}
		for k, v := range c {
			if fmt.Sprint(k) == key {
				return v, true
			}
		}
		return nil, false
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}
	return stepReflect(reflect.ValueOf(cur), key)
}

func stepReflect(rv reflect.Value, key string) (any, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() == reflect.String {
			v := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
			if v.IsValid() {
				return v.Interface(), true
			}
		}
		iter := rv.MapRange()
		for iter.Next() {
			if fmt.Sprint(iter.Key().Interface()) == key {
				return iter.Value().Interface(), true
			}
		}
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if f.Name == key || name == key {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}
