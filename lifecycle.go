package svcrepo

import "context"

// Lifecycle is the part of a service driven by [Startup], [Shutdown] and [Reset].
//
// Lifecycle is implemented by *Supplier.
type Lifecycle interface {
	Name() string
	Init() error
	Dispose(ctx context.Context) error
}

var _ Lifecycle = (*Supplier)(nil)

// Startup calls Init on each service in order.
//
// It stops at the first failure and returns it as an [*InitializationError].
// Later services are not initialized.
func Startup[S Lifecycle](services []S) error {
	for _, svc := range services {
		if err := svc.Init(); err != nil {
			return asInitializationError(svc.Name(), err)
		}
	}

	return nil
}

// Shutdown calls Dispose on each service in order.
//
// It stops at the first failure and returns it as a [*DisposeError].
// Later services are not disposed; callers that need best-effort teardown
// should dispose each service themselves, or use [Registry.Close].
func Shutdown[S Lifecycle](ctx context.Context, services []S) error {
	for _, svc := range services {
		if err := svc.Dispose(ctx); err != nil {
			return asDisposeError(svc.Name(), err)
		}
	}

	return nil
}

// Reset disposes and then initializes each service in order, finishing one
// service before moving to the next.
//
// It stops at the first failure.
func Reset[S Lifecycle](ctx context.Context, services []S) error {
	for _, svc := range services {
		if err := svc.Dispose(ctx); err != nil {
			return asDisposeError(svc.Name(), err)
		}
		if err := svc.Init(); err != nil {
			return asInitializationError(svc.Name(), err)
		}
	}

	return nil
}
