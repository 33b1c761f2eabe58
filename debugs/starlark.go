package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts the values Globals produces: scalars, lists,
// string-keyed maps, exported struct fields, Go funcs. Tokens, lines and
// positions render in their surface syntax.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case bool:
		return starlark.Bool(v)

	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)

	case []string:
		elems := make([]starlark.Value, len(v))
		for i, s := range v {
			elems[i] = starlark.String(s)
		}
		return starlark.NewList(elems)

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), toStarlarkValue(val))
		}
		return d

	}

	value := reflect.ValueOf(v)

	if stringer, ok := v.(fmt.Stringer); ok {
		if value.Kind() == reflect.Pointer && value.IsNil() {
			return starlark.None
		}
		return starlark.String(stringer.String())
	}

	switch value.Kind() {

	case reflect.Slice:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				toStarlarkValue(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer:
		if value.IsNil() {
			return starlark.None
		}
		return toStarlarkValue(value.Elem().Interface())

	case reflect.Func:
		if value.IsNil() {
			return starlark.None
		}
		return starlarkutil.MakeFunc("", v)

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}
