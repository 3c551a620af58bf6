package svcrepo

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sectrean/svcrepo/ctor"
	"github.com/sectrean/svcrepo/internal/errors"
)

// Supplier owns the construction state of one service.
//
// For singleton services it holds the live instance. The instance is created
// on the first successful Get or Init and kept until Dispose or Reset, after
// which the next Get creates a new one.
//
// A Supplier is safe for concurrent use. Reading an existing singleton
// instance does not take a lock.
type Supplier struct {
	desc     *Descriptor
	original ctor.Factory
	current  atomic.Pointer[ctor.Factory]
	instance atomic.Pointer[instanceCell]

	// mu guards construction and disposal of the singleton instance.
	mu sync.Mutex
}

type instanceCell struct {
	val any
}

func newSupplier(d *Descriptor) *Supplier {
	s := &Supplier{
		desc:     d,
		original: d.factory,
	}
	s.current.Store(&s.original)

	return s
}

// Name returns the name of the service.
func (s *Supplier) Name() string {
	return s.desc.name
}

// Capability returns the type every instance of the service satisfies.
func (s *Supplier) Capability() reflect.Type {
	return s.desc.capability
}

// IsSingleton reports whether the service is a singleton.
func (s *Supplier) IsSingleton() bool {
	return s.desc.singleton
}

// Descriptor returns the immutable description of the service.
func (s *Supplier) Descriptor() *Descriptor {
	return s.desc
}

func (s *Supplier) String() string {
	return s.desc.String()
}

// Get returns an instance of the service.
//
// If args are given and the service has an implementation, the instance is
// constructed from args instead of the current factory. For a singleton this
// only matters when no instance exists yet; an existing instance is returned
// as-is.
//
// Errors are returned as [*InitializationError]. An instance that does not
// satisfy the capability results in an [*InitializationError] wrapping an
// [*InvalidInstanceError].
func (s *Supplier) Get(args ...any) (any, error) {
	if !s.desc.singleton {
		return s.create(args)
	}

	if cell := s.instance.Load(); cell != nil {
		return cell.val, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check if another goroutine created the instance since the last check
	if cell := s.instance.Load(); cell != nil {
		return cell.val, nil
	}

	val, err := s.create(args)
	if err != nil {
		return nil, err
	}

	s.instance.Store(&instanceCell{val: val})
	s.desc.observer.Activated(s.desc.name)

	return val, nil
}

// TryGet is like [Supplier.Get] but reports failures by returning false.
//
// Failures are logged at error level.
func (s *Supplier) TryGet(args ...any) (val any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.desc.logger.Error("get service failed", zap.Error(errors.FromPanic(r)))
			val, ok = nil, false
		}
	}()

	val, err := s.Get(args...)
	if err != nil {
		s.desc.logger.Error("get service failed", zap.Error(err))
		return nil, false
	}

	return val, true
}

// Init creates the instance of a singleton service if it does not exist yet.
// It does nothing for other services.
func (s *Supplier) Init() error {
	if !s.desc.singleton {
		return nil
	}

	_, err := s.Get()
	return err
}

// Dispose runs the dispose action on the singleton instance, if there is one,
// and returns the Supplier to its initial state.
//
// The state is reset even if the dispose action fails, so the Supplier can be
// used again. The failure is returned as a [*DisposeError].
func (s *Supplier) Dispose(ctx context.Context) error {
	if !s.desc.singleton || s.instance.Load() == nil {
		s.restoreFactory()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cell := s.instance.Load()
	if cell == nil {
		s.resetLocked()
		return nil
	}

	err := s.runDispose(ctx, cell.val)
	s.resetLocked()
	s.desc.observer.Disposed(s.desc.name, err)

	if err != nil {
		s.desc.logger.Error("dispose service failed", zap.Error(err))
		return asDisposeError(s.desc.name, err)
	}

	s.desc.logger.Debug("service disposed")
	return nil
}

// Reset clears the singleton instance without running the dispose action and
// restores the original factory.
//
// Use it to discard state when the underlying resources are already gone.
func (s *Supplier) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.desc.logger.Debug("service reset")
}

// Instance returns the live singleton instance, if there is one.
func (s *Supplier) Instance() (any, bool) {
	if cell := s.instance.Load(); cell != nil {
		return cell.val, true
	}
	return nil, false
}

// SetInstance replaces the singleton instance with val.
//
// val must satisfy the capability of the service, otherwise an
// [*InvalidInstanceError] is returned and the current instance is kept.
// A nil val clears the instance without running the dispose action.
func (s *Supplier) SetInstance(val any) error {
	if !s.desc.singleton {
		return errors.Wrapf(ErrNotSingleton, "set instance of service %q", s.desc.name)
	}

	if val == nil {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.clearInstanceLocked()
		return nil
	}

	if !Satisfies(val, s.desc.capability) {
		return &InvalidInstanceError{Instance: val, Capability: s.desc.capability}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old := s.instance.Swap(&instanceCell{val: val}); old == nil {
		s.desc.observer.Activated(s.desc.name)
	}

	return nil
}

// Override replaces the current factory until the next Dispose or Reset.
func (s *Supplier) Override(fn func() (any, error)) error {
	if fn == nil {
		return errors.Errorf("override service %q: factory is nil", s.desc.name)
	}

	f := ctor.Factory(fn)
	s.current.Store(&f)

	return nil
}

// OverrideArgs replaces the current factory with one that constructs the
// implementation from args, until the next Dispose or Reset.
func (s *Supplier) OverrideArgs(args ...any) error {
	if s.desc.impl == nil {
		return errors.Wrapf(ErrNoImplementation, "override service %q", s.desc.name)
	}

	f := s.desc.impl.Resolve(args...)
	s.current.Store(&f)

	return nil
}

func (s *Supplier) factoryFor(args []any) ctor.Factory {
	if len(args) > 0 {
		if s.desc.impl != nil {
			return s.desc.impl.Resolve(args...)
		}

		s.desc.logger.Debug("arguments ignored: service has no implementation", zap.Int("args", len(args)))
	}

	return *s.current.Load()
}

func (s *Supplier) create(args []any) (any, error) {
	f := s.factoryFor(args)

	start := time.Now()
	val, err := callFactory(f)
	if err == nil {
		err = s.validate(val)
	}
	if err != nil {
		err = asInitializationError(s.desc.name, err)
		s.desc.observer.ConstructionFailed(s.desc.name, err)
		s.desc.logger.Debug("service construction failed", zap.Error(err))

		return nil, err
	}

	elapsed := time.Since(start)
	s.desc.observer.Constructed(s.desc.name, elapsed)
	s.desc.logger.Debug("service constructed",
		zap.Bool("singleton", s.desc.singleton),
		zap.Duration("elapsed", elapsed),
	)

	return val, nil
}

func (s *Supplier) validate(val any) error {
	if isNil(val) {
		return ctor.ErrNilInstance
	}

	if !Satisfies(val, s.desc.capability) {
		return &InvalidInstanceError{Instance: val, Capability: s.desc.capability}
	}

	return nil
}

func (s *Supplier) runDispose(ctx context.Context, val any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()

	return s.desc.dispose(ctx, val)
}

func (s *Supplier) restoreFactory() {
	s.current.Store(&s.original)
}

// resetLocked must be called with mu held.
func (s *Supplier) resetLocked() {
	s.restoreFactory()
	s.clearInstanceLocked()
}

func (s *Supplier) clearInstanceLocked() {
	if old := s.instance.Swap(nil); old != nil {
		s.desc.observer.Deactivated(s.desc.name)
	}
}

func callFactory(f ctor.Factory) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			val = nil
			err = errors.FromPanic(r)
		}
	}()

	return f()
}

// Get returns an instance of the service supplied by s as a T.
//
// It returns an [*InvalidInstanceError] if the instance is not a T.
func Get[T any](s *Supplier, args ...any) (T, error) {
	var zero T

	val, err := s.Get(args...)
	if err != nil {
		return zero, err
	}

	t, ok := val.(T)
	if !ok {
		return zero, &InvalidInstanceError{Instance: val, Capability: reflect.TypeFor[T]()}
	}

	return t, nil
}

// TryGet is like [Get] but reports failures by returning false.
func TryGet[T any](s *Supplier, args ...any) (T, bool) {
	var zero T

	val, ok := s.TryGet(args...)
	if !ok {
		return zero, false
	}

	t, ok := val.(T)
	if !ok {
		s.desc.logger.Error("get service failed",
			zap.Error(&InvalidInstanceError{Instance: val, Capability: reflect.TypeFor[T]()}))
		return zero, false
	}

	return t, true
}

// MustGet is like [Get] but panics on error.
func MustGet[T any](s *Supplier, args ...any) T {
	val, err := Get[T](s, args...)
	if err != nil {
		panic(err)
	}
	return val
}
