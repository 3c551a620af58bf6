/*
Package ctor builds values of a concrete type from a runtime argument list.

Go has no constructors, so an [Implementation] pairs a type with the functions
that can build it. Resolving an argument list picks the first registered
constructor whose parameters accept the arguments and returns a [Factory]
that calls it:

	impl := ctor.MustOf[*Greeter](NewGreeter, NewGreeterWithPrefix)

	f := impl.Resolve("Hello", 3)
	v, err := f() // calls NewGreeterWithPrefix("Hello", 3)

When the same arity is accepted by more than one constructor, the one
registered first wins.

A [Catalog] maps names to implementations so service tables loaded from
configuration can refer to them.
*/
package ctor
