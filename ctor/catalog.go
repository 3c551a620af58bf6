package ctor

import (
	"slices"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/sectrean/svcrepo/internal/errors"
)

// Catalog maps names to implementations.
//
// It lets service tables loaded at runtime refer to Go types by name.
// A Catalog is safe for concurrent use.
type Catalog struct {
	impls *xsync.MapOf[string, *Implementation]
}

// NewCatalog creates an empty [Catalog].
func NewCatalog() *Catalog {
	return &Catalog{
		impls: xsync.NewMapOf[string, *Implementation](),
	}
}

// Register adds impl to the catalog under name.
//
// It returns an error wrapping [ErrDuplicateName] if the name is taken.
func (c *Catalog) Register(name string, impl *Implementation) error {
	if name == "" {
		return errors.New("ctor.Catalog.Register: name is empty")
	}
	if impl == nil {
		return errors.Errorf("ctor.Catalog.Register %q: implementation is nil", name)
	}

	if _, loaded := c.impls.LoadOrStore(name, impl); loaded {
		return errors.Wrapf(ErrDuplicateName, "ctor.Catalog.Register %q", name)
	}

	return nil
}

// MustRegister is like [Catalog.Register] but panics on error.
func (c *Catalog) MustRegister(name string, impl *Implementation) {
	if err := c.Register(name, impl); err != nil {
		panic(err)
	}
}

// Lookup returns the implementation registered under name.
func (c *Catalog) Lookup(name string) (*Implementation, bool) {
	return c.impls.Load(name)
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.impls.Size())
	c.impls.Range(func(name string, _ *Implementation) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)

	return names
}

// Len returns the number of registered implementations.
func (c *Catalog) Len() int {
	return c.impls.Size()
}
