package svcrepo

import "reflect"

// Satisfies reports whether val can be used as a value of type capability.
//
// For an interface capability the dynamic type of val must implement it.
// Any other capability must be exactly the dynamic type of val; a named type
// with the same underlying type does not satisfy it. Nil values never
// satisfy a capability.
func Satisfies(val any, capability reflect.Type) bool {
	if capability == nil || isNil(val) {
		return false
	}

	return satisfiesType(reflect.TypeOf(val), capability)
}

// satisfiesType matches what a type assertion to capability accepts.
func satisfiesType(t, capability reflect.Type) bool {
	if capability.Kind() == reflect.Interface {
		return t.Implements(capability)
	}
	return t == capability
}
