package svcrepo

import (
	"context"
	"reflect"
	"slices"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/sectrean/svcrepo/internal/errors"
)

// Registry is an ordered collection of services looked up by name.
//
// The registry is owned by the caller; there is no global registry.
// Services are started and disposed in the order they were added.
// A Registry is safe for concurrent use, and lookups do not take a lock.
type Registry struct {
	index  *xsync.MapOf[string, *Supplier]
	order  []*Supplier
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewRegistry creates a new [Registry] with the provided options.
//
// Available options:
//   - [WithLogger] sets the logger for registry events.
//   - [WithServices] adds services to the registry.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		index:  xsync.NewMapOf[string, *Supplier](),
		logger: zap.NewNop(),
	}

	err := applyOptions(opts, func(opt RegistryOption) error {
		return opt.applyRegistry(r)
	})
	if err != nil {
		return nil, errors.Wrap(err, "svcrepo.NewRegistry")
	}

	r.logger = r.logger.Named("svcrepo.registry")

	return r, nil
}

// RegistryOption is used to configure a new [Registry] when calling [NewRegistry].
type RegistryOption interface {
	applyRegistry(*Registry) error
}

type registryOption func(*Registry) error

func (o registryOption) applyRegistry(r *Registry) error {
	return o(r)
}

// WithLogger sets the logger used for registry events.
func WithLogger(logger *zap.Logger) RegistryOption {
	return registryOption(func(r *Registry) error {
		if logger == nil {
			return errors.New("WithLogger: logger is nil")
		}

		r.logger = logger
		return nil
	})
}

// WithServices adds services to a new [Registry].
func WithServices(suppliers ...*Supplier) RegistryOption {
	return registryOption(func(r *Registry) error {
		return r.Add(suppliers...)
	})
}

// Add appends services to the registry.
//
// Services whose name is already registered are rejected with an error
// wrapping [ErrDuplicateService]; the others are still added.
func (r *Registry) Add(suppliers ...*Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs errors.MultiError
	for _, s := range suppliers {
		if s == nil {
			errs = errs.Append(errors.New("supplier is nil"))
			continue
		}

		if _, loaded := r.index.LoadOrStore(s.Name(), s); loaded {
			errs = errs.Append(errors.Wrapf(ErrDuplicateService, "service %q", s.Name()))
			continue
		}

		r.order = append(r.order, s)
	}

	return errs.Wrap("svcrepo.Registry.Add")
}

// Lookup returns the service registered under name.
func (r *Registry) Lookup(name string) (*Supplier, bool) {
	return r.index.Load(name)
}

// Contains returns true if a service is registered under name.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index.Load(name)
	return ok
}

// Len returns the number of registered services.
func (r *Registry) Len() int {
	return r.index.Size()
}

// Suppliers returns the registered services in registration order.
func (r *Registry) Suppliers() []*Supplier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// Names returns the names of the registered services in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	for i, s := range r.order {
		names[i] = s.Name()
	}
	return names
}

// Get returns an instance of the service registered under name.
func (r *Registry) Get(name string, args ...any) (any, error) {
	s, ok := r.index.Load(name)
	if !ok {
		return nil, errors.Wrapf(ErrServiceNotRegistered, "svcrepo.Registry.Get %q", name)
	}

	return s.Get(args...)
}

// TryGet is like [Registry.Get] but reports failures by returning false.
func (r *Registry) TryGet(name string, args ...any) (any, bool) {
	s, ok := r.index.Load(name)
	if !ok {
		r.logger.Error("get service failed",
			zap.String("service", name),
			zap.Error(ErrServiceNotRegistered),
		)
		return nil, false
	}

	return s.TryGet(args...)
}

// Startup initializes the singleton services in registration order.
// See [Startup].
func (r *Registry) Startup() error {
	r.logger.Debug("startup begin")

	if err := Startup(r.Suppliers()); err != nil {
		r.logger.Error("startup failed", zap.Error(err))
		return err
	}

	r.logger.Debug("startup end")
	return nil
}

// Shutdown disposes the services in registration order, stopping at the first failure.
// See [Shutdown].
func (r *Registry) Shutdown(ctx context.Context) error {
	r.logger.Debug("shutdown begin")

	if err := Shutdown(ctx, r.Suppliers()); err != nil {
		r.logger.Error("shutdown failed", zap.Error(err))
		return err
	}

	r.logger.Debug("shutdown end")
	return nil
}

// Reset disposes and re-initializes the services in registration order.
// See [Reset].
func (r *Registry) Reset(ctx context.Context) error {
	r.logger.Debug("reset begin")

	if err := Reset(ctx, r.Suppliers()); err != nil {
		r.logger.Error("reset failed", zap.Error(err))
		return err
	}

	r.logger.Debug("reset end")
	return nil
}

// Close disposes every service in reverse registration order.
//
// Unlike [Registry.Shutdown], Close does not stop at the first failure.
// Errors from all services are joined together.
func (r *Registry) Close(ctx context.Context) error {
	suppliers := r.Suppliers()

	var errs errors.MultiError
	for i := len(suppliers) - 1; i >= 0; i-- {
		errs = errs.Append(suppliers[i].Dispose(ctx))
	}

	if err := errs.Wrap("svcrepo.Registry.Close"); err != nil {
		r.logger.Error("close failed", zap.Error(err))
		return err
	}

	return nil
}

// Resolve returns an instance of the service registered under name as a T.
func Resolve[T any](r *Registry, name string, args ...any) (T, error) {
	var zero T

	s, ok := r.Lookup(name)
	if !ok {
		return zero, errors.Wrapf(ErrServiceNotRegistered, "svcrepo.Resolve %q", name)
	}

	val, err := Get[T](s, args...)
	if err != nil {
		return zero, errors.Wrapf(err, "svcrepo.Resolve %q as %s", name, reflect.TypeFor[T]())
	}

	return val, nil
}

// MustResolve is like [Resolve] but panics on error.
func MustResolve[T any](r *Registry, name string, args ...any) T {
	val, err := Resolve[T](r, name, args...)
	if err != nil {
		panic(err)
	}
	return val
}
