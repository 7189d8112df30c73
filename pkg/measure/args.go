package measure

import "reflect"

// Arg is a single named argument captured at a call site.
type Arg struct {
	Name  string
	Value any
}

// Args is the ordered argument snapshot of one invocation. Names are
// unique keys; name resolution is supplied by the host and may be
// absent, in which case the snapshot is empty and parameter logging
// degrades to logging nothing.
type Args []Arg

// NamedArgs zips parameter names with their concrete values. When names
// are unavailable or do not match the value count, it returns an empty
// snapshot rather than failing the call.
func NamedArgs(names []string, values []any) Args {
	if len(names) == 0 || len(names) != len(values) {
		return nil
	}
	args := make(Args, len(names))
	for i, n := range names {
		args[i] = Arg{Name: n, Value: values[i]}
	}
	return args
}

// StructArgs snapshots the exported fields of a struct (or pointer to
// struct) as named arguments, using the field names as parameter names.
// Any other value yields an empty snapshot.
func StructArgs(v any) Args {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()
	args := make(Args, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		args = append(args, Arg{Name: field.Name, Value: rv.Field(i).Interface()})
	}
	return args
}
