package svcrepo

import (
	"context"
)

// DisposeFunc releases a service instance when the service is disposed.
type DisposeFunc func(ctx context.Context, instance any) error

// Closer is implemented by services that release resources on Close.
//
// The default dispose action calls Close on an instance that implements Closer,
// or any of the other compatible method signatures:
//
//	Close(context.Context) error
//	Close(context.Context)
//	Close() error
//	Close()
//
// Use [Builder.DisposeAction] to dispose a service some other way.
type Closer interface {
	Close(ctx context.Context) error
}

// CloseInstance is the default dispose action.
//
// It calls the Close method of instance if it has one of the signatures
// supported by [Closer], and does nothing otherwise.
func CloseInstance(ctx context.Context, instance any) error {
	if c := closerFor(instance); c != nil {
		return c.Close(ctx)
	}
	return nil
}

// closerFor returns the Closer interface if the given value implements it,
// or any of the compatible Close function signatures.
func closerFor(val any) Closer {
	switch c := val.(type) {
	case Closer:
		return c
	case closerWithContextNoError:
		return closerWithContextNoErrorWrapper{c}
	case closerNoContextWithError:
		return closerNoContextWithErrorWrapper{c}
	case closerNoContextNoError:
		return closerNoContextNoErrorWrapper{c}

	default:
		return nil
	}
}

type closerWithContextNoError interface {
	Close(ctx context.Context)
}

type closerNoContextWithError interface {
	Close() error
}

type closerNoContextNoError interface {
	Close()
}

type closerNoContextNoErrorWrapper struct {
	c closerNoContextNoError
}

func (w closerNoContextNoErrorWrapper) Close(context.Context) error {
	w.c.Close()
	return nil
}

type closerWithContextNoErrorWrapper struct {
	c closerWithContextNoError
}

func (w closerWithContextNoErrorWrapper) Close(ctx context.Context) error {
	w.c.Close(ctx)
	return nil
}

type closerNoContextWithErrorWrapper struct {
	c closerNoContextWithError
}

func (w closerNoContextWithErrorWrapper) Close(context.Context) error {
	return w.c.Close()
}
