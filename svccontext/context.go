// Package svccontext carries a [svcrepo.Registry] on a [context.Context].
package svccontext

import (
	"context"
	"reflect"

	"github.com/sectrean/svcrepo"
	"github.com/sectrean/svcrepo/internal/errors"
)

type registryContextKey struct{}

// WithRegistry returns a new [context.Context] that carries the provided [svcrepo.Registry].
func WithRegistry(ctx context.Context, r *svcrepo.Registry) context.Context {
	return context.WithValue(ctx, registryContextKey{}, r)
}

// Registry returns the [svcrepo.Registry] stored on the [context.Context], if present.
func Registry(ctx context.Context) *svcrepo.Registry {
	if r, ok := ctx.Value(registryContextKey{}).(*svcrepo.Registry); ok {
		return r
	}
	return nil
}

// Resolve returns the service registered under name in the [svcrepo.Registry]
// stored on the [context.Context], as a T.
func Resolve[T any](ctx context.Context, name string, args ...any) (T, error) {
	var zero T

	r := Registry(ctx)
	if r == nil {
		return zero, errors.Errorf("resolve %q as %s from context: registry not found on context",
			name, reflect.TypeFor[T]())
	}

	val, err := svcrepo.Resolve[T](r, name, args...)
	return val, errors.Wrap(err, "resolve from context")
}

// MustResolve is like [Resolve] but panics on error.
func MustResolve[T any](ctx context.Context, name string, args ...any) T {
	val, err := Resolve[T](ctx, name, args...)
	if err != nil {
		panic(err)
	}
	return val
}
