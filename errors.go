package svcrepo

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sectrean/svcrepo/internal/errors"
)

var (
	// ErrNoFactory is returned by Build when neither a supplier nor an implementation was set.
	ErrNoFactory = errors.New("no supplier or implementation")
	// ErrServiceNotRegistered is returned when a name is not found in a Registry.
	ErrServiceNotRegistered = errors.New("service not registered")
	// ErrDuplicateService is returned when a name is added to a Registry twice.
	ErrDuplicateService = errors.New("service already registered")
	// ErrNotSingleton is returned by SetInstance for a non-singleton service.
	ErrNotSingleton = errors.New("service is not a singleton")
	// ErrNoImplementation is returned by OverrideArgs when the service has no implementation.
	ErrNoImplementation = errors.New("service has no implementation")
)

// InitializationError is returned when a service cannot be built, or when
// Get or Init fails to produce a valid instance.
type InitializationError struct {
	Name    string
	Message string
	Err     error
}

func (e *InitializationError) Error() string {
	return formatServiceError("init", e.Name, e.Message, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// DisposeError is returned when the dispose action of a service fails.
type DisposeError struct {
	Name    string
	Message string
	Err     error
}

func (e *DisposeError) Error() string {
	return formatServiceError("dispose", e.Name, e.Message, e.Err)
}

func (e *DisposeError) Unwrap() error {
	return e.Err
}

// InvalidInstanceError is returned when a value does not satisfy the capability of a service.
type InvalidInstanceError struct {
	Instance   any
	Capability reflect.Type
}

func (e *InvalidInstanceError) Error() string {
	if e.Instance == nil {
		return fmt.Sprintf("nil instance does not satisfy %s", e.Capability)
	}
	return fmt.Sprintf("instance of type %T does not satisfy %s", e.Instance, e.Capability)
}

func formatServiceError(op, name, msg string, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s service %q", op, name)
	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if err != nil {
		b.WriteString(": ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// asInitializationError returns err unchanged if it already carries an
// InitializationError, otherwise it wraps it.
func asInitializationError(name string, err error) error {
	if err == nil {
		return nil
	}

	var ie *InitializationError
	if errors.As(err, &ie) {
		return err
	}

	return &InitializationError{Name: name, Err: err}
}

func asDisposeError(name string, err error) error {
	if err == nil {
		return nil
	}

	var de *DisposeError
	if errors.As(err, &de) {
		return err
	}

	return &DisposeError{Name: name, Err: err}
}
