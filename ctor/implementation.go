package ctor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sectrean/svcrepo/internal/errors"
)

var typeError = reflect.TypeFor[error]()

// Factory creates a new value each time it is called.
type Factory func() (any, error)

// Implementation is a concrete type together with the constructors that can build it.
//
// An Implementation is immutable and safe for concurrent use.
type Implementation struct {
	t     reflect.Type
	ctors []constructor
}

// New creates an [Implementation] of type t.
//
// Each constructor must be a non-variadic function returning T or (T, error),
// where T is assignable to t. Constructors are tried in the order given.
//
// If no constructors are given, t must be a struct or a pointer to a struct
// and the zero value (or a pointer to a new zero value) is used as a
// constructor without arguments.
func New(t reflect.Type, constructors ...any) (*Implementation, error) {
	if t == nil {
		return nil, errors.New("ctor.New: type is nil")
	}

	impl := &Implementation{t: t}

	var errs errors.MultiError
	for i, fn := range constructors {
		c, err := newConstructor(t, fn)
		if err != nil {
			errs = errs.Append(errors.Wrapf(err, "constructor %d (%T)", i, fn))
			continue
		}
		impl.ctors = append(impl.ctors, c)
	}
	if err := errs.Wrapf("ctor.New %s", t); err != nil {
		return nil, err
	}

	if len(impl.ctors) == 0 {
		c, ok := zeroConstructor(t)
		if !ok {
			return nil, errors.Errorf("ctor.New %s: no constructors given and type has no zero value constructor", t)
		}
		impl.ctors = []constructor{c}
	}

	return impl, nil
}

// Of creates an [Implementation] of type T. See [New].
func Of[T any](constructors ...any) (*Implementation, error) {
	return New(reflect.TypeFor[T](), constructors...)
}

// MustOf is like [Of] but panics if the constructors are invalid.
func MustOf[T any](constructors ...any) *Implementation {
	impl, err := Of[T](constructors...)
	if err != nil {
		panic(err)
	}
	return impl
}

// Type returns the type built by the Implementation.
func (impl *Implementation) Type() reflect.Type {
	return impl.t
}

// Signatures returns the parameter lists of the constructors, in match order.
func (impl *Implementation) Signatures() []string {
	sigs := make([]string, len(impl.ctors))
	for i, c := range impl.ctors {
		sigs[i] = c.signature()
	}
	return sigs
}

func (impl *Implementation) String() string {
	return fmt.Sprintf("%s{%s}", impl.t, strings.Join(impl.Signatures(), ", "))
}

// Resolve returns a [Factory] that builds a new value using args.
//
// The constructor is chosen once, when Resolve is called. If no constructor
// accepts args, every call of the returned Factory fails with a
// [*ConstructionError] wrapping [ErrNoMatchingConstructor].
func (impl *Implementation) Resolve(args ...any) Factory {
	args = append([]any(nil), args...)

	c, in, ok := impl.match(args)
	if !ok {
		err := newConstructionError(impl.t, args, ErrNoMatchingConstructor)
		return func() (any, error) {
			return nil, err
		}
	}

	return func() (any, error) {
		return impl.invoke(c, in, args)
	}
}

// Resolve is shorthand for impl.Resolve(args...).
func Resolve(impl *Implementation, args ...any) Factory {
	return impl.Resolve(args...)
}

func (impl *Implementation) match(args []any) (constructor, []reflect.Value, bool) {
	for _, c := range impl.ctors {
		if len(c.in) != len(args) {
			continue
		}

		in, ok := acceptAll(c.in, args)
		if ok {
			return c, in, true
		}
	}

	return constructor{}, nil, false
}

func (impl *Implementation) invoke(c constructor, in []reflect.Value, args []any) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			val = nil
			err = newConstructionError(impl.t, args, errors.FromPanic(r))
		}
	}()

	out, err := c.call(in)
	if err != nil {
		return nil, newConstructionError(impl.t, args, err)
	}
	if isNilValue(out) {
		return nil, newConstructionError(impl.t, args, ErrNilInstance)
	}

	return out.Interface(), nil
}

type constructor struct {
	in   []reflect.Type
	call func(in []reflect.Value) (reflect.Value, error)
}

func (c constructor) signature() string {
	params := make([]string, len(c.in))
	for i, t := range c.in {
		params[i] = t.String()
	}
	return "(" + strings.Join(params, ", ") + ")"
}

func newConstructor(t reflect.Type, fn any) (constructor, error) {
	if fn == nil {
		return constructor{}, errors.New("constructor is nil")
	}

	fnType := reflect.TypeOf(fn)
	if fnType.Kind() != reflect.Func {
		return constructor{}, errors.New("constructor must be a function")
	}

	fnVal := reflect.ValueOf(fn)
	if fnVal.IsNil() {
		return constructor{}, errors.New("constructor is nil")
	}

	if fnType.IsVariadic() {
		return constructor{}, errors.New("variadic constructors are not supported")
	}

	hasErr := false
	switch {
	case fnType.NumOut() == 1:
	case fnType.NumOut() == 2 && fnType.Out(1) == typeError:
		hasErr = true
	default:
		return constructor{}, errors.New("constructor must return T or (T, error)")
	}

	if !fnType.Out(0).AssignableTo(t) {
		return constructor{}, errors.Errorf("return type %s not assignable to %s", fnType.Out(0), t)
	}

	in := make([]reflect.Type, fnType.NumIn())
	for i := range fnType.NumIn() {
		in[i] = fnType.In(i)
	}

	// A concrete result of another named type is converted so the
	// instance has exactly type t.
	convert := t.Kind() != reflect.Interface && fnType.Out(0) != t

	return constructor{
		in: in,
		call: func(args []reflect.Value) (reflect.Value, error) {
			out := fnVal.Call(args)

			var err error
			if hasErr {
				err, _ = out[1].Interface().(error)
			}
			if convert {
				return out[0].Convert(t), err
			}
			return out[0], err
		},
	}, nil
}

func zeroConstructor(t reflect.Type) (constructor, bool) {
	switch {
	case t.Kind() == reflect.Struct:
		return constructor{
			call: func([]reflect.Value) (reflect.Value, error) {
				return reflect.New(t).Elem(), nil
			},
		}, true

	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return constructor{
			call: func([]reflect.Value) (reflect.Value, error) {
				return reflect.New(t.Elem()), nil
			},
		}, true

	default:
		return constructor{}, false
	}
}

func isNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
