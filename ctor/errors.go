package ctor

import (
	"fmt"
	"reflect"

	"github.com/sectrean/svcrepo/internal/errors"
)

var (
	// ErrNoMatchingConstructor is returned when no constructor accepts the arguments.
	ErrNoMatchingConstructor = errors.New("no matching constructor")
	// ErrNilInstance is returned when a constructor returns a nil value.
	ErrNilInstance = errors.New("constructor returned nil")
	// ErrDuplicateName is returned when a name is registered twice with a Catalog.
	ErrDuplicateName = errors.New("name already registered")
)

// ConstructionError is returned by a [Factory] that could not build a value.
type ConstructionError struct {
	// Type is the type being constructed.
	Type reflect.Type
	// Args are the arguments the constructor was resolved with.
	Args []any
	// Err is the cause: [ErrNoMatchingConstructor], [ErrNilInstance],
	// an error returned by the constructor, or a recovered panic.
	Err error
}

func newConstructionError(t reflect.Type, args []any, err error) *ConstructionError {
	return &ConstructionError{Type: t, Args: args, Err: err}
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct %s with args %v: %v", e.Type, e.Args, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
