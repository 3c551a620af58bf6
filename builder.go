package svcrepo

import (
	"context"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/sectrean/svcrepo/ctor"
	"github.com/sectrean/svcrepo/internal/errors"
)

// Builder assembles a service [Descriptor] and returns its [Supplier].
//
// Example:
//
//	greeter, err := svcrepo.For[Greeter]().
//		Name("greeter").
//		Singleton(true).
//		Implementation(ctor.MustOf[*EnglishGreeter](NewEnglishGreeter)).
//		Args("Hello").
//		Build()
//
// Either [Builder.Supplier] or [Builder.Implementation] must be set.
// When both are set, the supplier builds the default instance and the
// implementation is used when Get is called with arguments.
type Builder[T any] struct {
	d        Descriptor
	supplier func() (T, error)
	dispose  func(context.Context, T) error
	errs     errors.MultiError
}

// For starts building a service whose capability is T.
func For[T any]() *Builder[T] {
	return newBuilder[T](reflect.TypeFor[T]())
}

// ForType starts building a service whose capability is only known at runtime.
func ForType(capability reflect.Type) *Builder[any] {
	return newBuilder[any](capability)
}

func newBuilder[T any](capability reflect.Type) *Builder[T] {
	return &Builder[T]{
		d: Descriptor{
			capability: capability,
			logger:     zap.NewNop(),
			observer:   nopObserver{},
		},
	}
}

// Name sets the unique name of the service. It is required.
func (b *Builder[T]) Name(name string) *Builder[T] {
	b.d.name = name
	return b
}

// Singleton sets whether instances are shared. Services are not singletons by default.
func (b *Builder[T]) Singleton(singleton bool) *Builder[T] {
	b.d.singleton = singleton
	return b
}

// Implementation sets the implementation used to construct instances.
func (b *Builder[T]) Implementation(impl *ctor.Implementation) *Builder[T] {
	if impl == nil {
		b.errs = b.errs.Append(errors.New("implementation is nil"))
		return b
	}

	b.d.impl = impl
	return b
}

// Args sets the default arguments passed to the implementation's constructor.
func (b *Builder[T]) Args(args ...any) *Builder[T] {
	b.d.args = slices.Clone(args)
	return b
}

// Supplier sets a function that builds instances directly.
func (b *Builder[T]) Supplier(fn func() (T, error)) *Builder[T] {
	if fn == nil {
		b.errs = b.errs.Append(errors.New("supplier is nil"))
		return b
	}

	b.supplier = fn
	return b
}

// DisposeAction sets the function called with a singleton instance when it is disposed.
//
// The default is [CloseInstance].
func (b *Builder[T]) DisposeAction(fn func(ctx context.Context, instance T) error) *Builder[T] {
	if fn == nil {
		b.errs = b.errs.Append(errors.New("dispose action is nil"))
		return b
	}

	b.dispose = fn
	return b
}

// Logger sets the logger for lifecycle events. The default discards everything.
func (b *Builder[T]) Logger(logger *zap.Logger) *Builder[T] {
	if logger == nil {
		logger = zap.NewNop()
	}

	b.d.logger = logger
	return b
}

// Observer sets the observer notified of lifecycle events.
func (b *Builder[T]) Observer(o Observer) *Builder[T] {
	if o == nil {
		o = nopObserver{}
	}

	b.d.observer = o
	return b
}

// Build validates the configuration and returns a [Supplier] for the new [Descriptor].
//
// Errors are returned as [*InitializationError].
func (b *Builder[T]) Build() (*Supplier, error) {
	d := b.d
	errs := slices.Clone(b.errs)

	if d.name == "" {
		errs = errs.Append(errors.New("name is required"))
	}

	if d.capability == nil {
		errs = errs.Append(errors.New("capability is nil"))
	} else if d.impl != nil && !satisfiesType(d.impl.Type(), d.capability) {
		errs = errs.Append(errors.Errorf("implementation %s does not satisfy %s", d.impl.Type(), d.capability))
	}

	switch {
	case b.supplier != nil:
		fn := b.supplier
		d.factory = func() (any, error) {
			return fn()
		}
	case d.impl != nil:
		d.factory = d.impl.Resolve(d.args...)
	default:
		errs = errs.Append(ErrNoFactory)
	}

	if err := errs.Join(); err != nil {
		return nil, &InitializationError{Name: d.name, Err: err}
	}

	d.dispose = CloseInstance
	if b.dispose != nil {
		fn := b.dispose
		d.dispose = func(ctx context.Context, instance any) error {
			return fn(ctx, instance.(T))
		}
	}

	d.logger = d.logger.Named("svcrepo").With(zap.String("service", d.name))

	return newSupplier(&d), nil
}

// MustBuild is like [Builder.Build] but panics on error.
func (b *Builder[T]) MustBuild() *Supplier {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
