// Package svcconfig builds a [svcrepo.Registry] from a service table file.
//
// A service table lists services by name and refers to implementations
// registered in a [ctor.Catalog]:
//
//	[[service]]
//	name = "greeter"
//	capability = "greeter"
//	implementation = "english"
//	singleton = true
//	args = ["Hello", 3]
//
// YAML files use the same keys under a top-level "service" list.
package svcconfig

import (
	"os"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/sectrean/svcrepo"
	"github.com/sectrean/svcrepo/ctor"
	"github.com/sectrean/svcrepo/internal/errors"
)

var (
	// ErrUnknownImplementation is returned when an entry names an implementation
	// that is not in the catalog.
	ErrUnknownImplementation = errors.New("unknown implementation")
	// ErrUnknownCapability is returned when an entry names a capability
	// that was not registered with [RegisterCapability].
	ErrUnknownCapability = errors.New("unknown capability")
)

// Loader turns service tables into registries.
//
// A Loader is safe for concurrent use once configured.
type Loader struct {
	catalog      *ctor.Catalog
	capabilities *xsync.MapOf[string, reflect.Type]
	env          map[string]string
	logger       *zap.Logger
	observer     svcrepo.Observer
}

// NewLoader creates a [Loader] that looks up implementations in catalog.
//
// Available options:
//   - [WithLogger] sets the logger for the registry and its services.
//   - [WithObserver] sets the observer for every service.
//   - [WithEnvFiles] reads dotenv files used to expand string arguments.
func NewLoader(catalog *ctor.Catalog, opts ...Option) (*Loader, error) {
	if catalog == nil {
		return nil, errors.New("svcconfig.NewLoader: catalog is nil")
	}

	l := &Loader{
		catalog:      catalog,
		capabilities: xsync.NewMapOf[string, reflect.Type](),
		env:          map[string]string{},
		logger:       zap.NewNop(),
	}

	var errs errors.MultiError
	for _, opt := range opts {
		errs = errs.Append(opt.applyLoader(l))
	}
	if err := errs.Wrap("svcconfig.NewLoader"); err != nil {
		return nil, err
	}

	return l, nil
}

// RegisterCapability binds name to the capability type T, so service
// entries can refer to it.
func RegisterCapability[T any](l *Loader, name string) error {
	if name == "" {
		return errors.New("svcconfig.RegisterCapability: name is empty")
	}

	t := reflect.TypeFor[T]()
	if prev, loaded := l.capabilities.LoadOrStore(name, t); loaded && prev != t {
		return errors.Errorf("svcconfig.RegisterCapability %q: already bound to %s", name, prev)
	}

	return nil
}

// LoadFile reads the service table at path and returns a new registry.
//
// The format is chosen by the file extension: .toml, .yaml or .yml.
func (l *Loader) LoadFile(path string) (*svcrepo.Registry, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "svcconfig: load %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "svcconfig")
	}

	r, err := l.Parse(data, f)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("service table loaded",
		zap.String("path", path),
		zap.Int("services", r.Len()),
	)

	return r, nil
}

// Parse decodes a service table and returns a new registry.
//
// Every entry is checked; errors from all entries are returned together.
func (l *Loader) Parse(data []byte, f Format) (*svcrepo.Registry, error) {
	t, err := decode(data, f)
	if err != nil {
		return nil, errors.Wrap(err, "svcconfig")
	}

	r, err := svcrepo.NewRegistry(svcrepo.WithLogger(l.logger))
	if err != nil {
		return nil, errors.Wrap(err, "svcconfig")
	}

	var errs errors.MultiError
	for i, e := range t.Services {
		if e.Name == "" {
			errs = errs.Append(errors.Errorf("svcconfig: service %d: name is required", i))
			continue
		}

		if r.Contains(e.Name) {
			errs = errs.Append(errors.Wrapf(svcrepo.ErrDuplicateService, "svcconfig: service %q", e.Name))
			continue
		}

		s, err := l.build(e)
		if err != nil {
			errs = errs.Append(errors.Wrapf(err, "svcconfig: service %q", e.Name))
			continue
		}

		errs = errs.Append(r.Add(s))
	}

	if err := errs.Join(); err != nil {
		return nil, err
	}

	return r, nil
}

func (l *Loader) build(e entry) (*svcrepo.Supplier, error) {
	if e.Implementation == "" {
		return nil, errors.New("implementation is required")
	}

	impl, ok := l.catalog.Lookup(e.Implementation)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownImplementation, "%q", e.Implementation)
	}

	capability := impl.Type()
	if e.Capability != "" {
		capability, ok = l.capabilities.Load(e.Capability)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCapability, "%q", e.Capability)
		}
	}

	b := svcrepo.ForType(capability).
		Name(e.Name).
		Singleton(e.Singleton).
		Implementation(impl).
		Args(normalizeArgs(e.Args, l.lookupEnv)...).
		Logger(l.logger)
	if l.observer != nil {
		b = b.Observer(l.observer)
	}

	return b.Build()
}

func (l *Loader) lookupEnv(key string) string {
	if v, ok := l.env[key]; ok {
		return v
	}
	return os.Getenv(key)
}
