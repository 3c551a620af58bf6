package ctor

import "reflect"

// acceptAll converts args into call values for the parameter types in params.
// It reports false if any argument is not accepted by its parameter.
func acceptAll(params []reflect.Type, args []any) ([]reflect.Value, bool) {
	in := make([]reflect.Value, len(params))
	for i, p := range params {
		v, ok := accept(p, args[i])
		if !ok {
			return nil, false
		}
		in[i] = v
	}

	return in, true
}

// accept reports whether arg can be passed as a parameter of type param.
//
// The argument's runtime type must be assignable to param. A nil argument is
// accepted by nillable parameter kinds. Named and unnamed types of the same
// basic kind are mutually accepted, so an int argument can be passed to a
// parameter of type Port (type Port int) and the other way around.
func accept(param reflect.Type, arg any) (reflect.Value, bool) {
	if arg == nil {
		if nillable(param.Kind()) {
			return reflect.Zero(param), true
		}
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(param) {
		return v, true
	}

	if v.Kind() == param.Kind() && basic(param.Kind()) && v.Type().ConvertibleTo(param) {
		return v.Convert(param), true
	}

	return reflect.Value{}, false
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func basic(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}
