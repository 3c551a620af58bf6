package svcrepo

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/sectrean/svcrepo/ctor"
)

// Descriptor describes how a named service is constructed and disposed.
//
// A Descriptor is created by [Builder.Build] and never changes afterwards.
type Descriptor struct {
	name       string
	capability reflect.Type
	impl       *ctor.Implementation
	args       []any
	factory    ctor.Factory
	singleton  bool
	dispose    DisposeFunc
	logger     *zap.Logger
	observer   Observer
}

// Name returns the unique name of the service.
func (d *Descriptor) Name() string {
	return d.name
}

// Capability returns the type every instance of the service satisfies.
func (d *Descriptor) Capability() reflect.Type {
	return d.capability
}

// Implementation returns the implementation used to construct the service, or nil
// if the service is built by a supplier function only.
func (d *Descriptor) Implementation() *ctor.Implementation {
	return d.impl
}

// Args returns a copy of the default construction arguments.
func (d *Descriptor) Args() []any {
	return slices.Clone(d.args)
}

// IsSingleton reports whether at most one instance of the service exists at a time.
func (d *Descriptor) IsSingleton() bool {
	return d.singleton
}

func (d *Descriptor) String() string {
	lifetime := "transient"
	if d.singleton {
		lifetime = "singleton"
	}
	return fmt.Sprintf("%s (%s, %s)", d.name, d.capability, lifetime)
}
