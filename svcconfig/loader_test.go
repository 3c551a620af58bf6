package svcconfig_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sectrean/svcrepo"
	"github.com/sectrean/svcrepo/ctor"
	"github.com/sectrean/svcrepo/internal/mocks"
	"github.com/sectrean/svcrepo/internal/testtypes"
	"github.com/sectrean/svcrepo/internal/testutils"
	"github.com/sectrean/svcrepo/svcconfig"
)

func newCatalog(t *testing.T) *ctor.Catalog {
	t.Helper()

	c := ctor.NewCatalog()
	require.NoError(t, c.Register("dummy", ctor.MustOf[*testtypes.DummyServiceImpl](
		testtypes.NewDummy,
		testtypes.NewDummy1,
		testtypes.NewDummy3,
	)))
	require.NoError(t, c.Register("server", ctor.MustOf[*testtypes.Server](testtypes.NewServer)))

	return c
}

func newLoader(t *testing.T, opts ...svcconfig.Option) *svcconfig.Loader {
	t.Helper()

	l, err := svcconfig.NewLoader(newCatalog(t), opts...)
	require.NoError(t, err)
	require.NoError(t, svcconfig.RegisterCapability[testtypes.DummyService](l, "dummy-service"))

	return l
}

func Test_Loader_LoadFile(t *testing.T) {
	for _, path := range []string{"testdata/services.toml", "testdata/services.yaml"} {
		t.Run(path, func(t *testing.T) {
			l := newLoader(t, svcconfig.WithEnvFiles("testdata/test.env"))

			r, err := l.LoadFile(path)
			require.NoError(t, err)

			assert.Equal(t, []string{"dummy", "server"}, r.Names())

			s, ok := r.Lookup("dummy")
			require.True(t, ok)
			assert.True(t, s.IsSingleton())
			assert.Equal(t, testtypes.TypeDummyService, s.Capability())
			assert.Equal(t, []any{"from-env-file", 3, "b"}, s.Descriptor().Args())

			d, err := svcrepo.Resolve[testtypes.DummyService](r, "dummy")
			require.NoError(t, err)
			assert.Equal(t, "from-env-file", d.Arg1())
			assert.Equal(t, 3, d.Arg2())
			assert.Equal(t, "b", d.Arg3())

			srv, err := svcrepo.Resolve[*testtypes.Server](r, "server")
			require.NoError(t, err)
			assert.Equal(t, &testtypes.Server{Host: "localhost", Port: 8080}, srv)

			server, _ := r.Lookup("server")
			assert.False(t, server.IsSingleton())
			assert.Equal(t, reflect.TypeFor[*testtypes.Server](), server.Capability())
		})
	}

	t.Run("process env", func(t *testing.T) {
		t.Setenv("DUMMY_NAME", "from-process")
		t.Setenv("SERVER_HOST", "example.com")
		l := newLoader(t)

		r, err := l.LoadFile("testdata/services.toml")
		require.NoError(t, err)

		d, err := svcrepo.Resolve[testtypes.DummyService](r, "dummy")
		require.NoError(t, err)
		assert.Equal(t, "from-process", d.Arg1())
	})

	t.Run("env file wins over process env", func(t *testing.T) {
		t.Setenv("DUMMY_NAME", "from-process")
		l := newLoader(t, svcconfig.WithEnvFiles("testdata/test.env"))

		r, err := l.LoadFile("testdata/services.yaml")
		require.NoError(t, err)

		d, err := svcrepo.Resolve[testtypes.DummyService](r, "dummy")
		require.NoError(t, err)
		assert.Equal(t, "from-env-file", d.Arg1())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		r, err := newLoader(t).LoadFile("testdata/services.json")
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, `svcconfig: load testdata/services.json: unsupported file extension ".json"`)
	})

	t.Run("missing file", func(t *testing.T) {
		r, err := newLoader(t).LoadFile("testdata/missing.toml")
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.Error(t, err)
	})
}

func Test_Loader_Parse(t *testing.T) {
	t.Run("default capability", func(t *testing.T) {
		r, err := newLoader(t).Parse([]byte(`
[[service]]
name = "dummy"
implementation = "dummy"
`), svcconfig.FormatTOML)
		require.NoError(t, err)

		s, ok := r.Lookup("dummy")
		require.True(t, ok)
		assert.Equal(t, testtypes.TypeDummyServiceImpl, s.Capability())
		assert.False(t, s.IsSingleton())
	})

	t.Run("empty", func(t *testing.T) {
		r, err := newLoader(t).Parse(nil, svcconfig.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("entry errors", func(t *testing.T) {
		r, err := newLoader(t).Parse([]byte(`
service:
  - implementation: dummy
  - name: unknown-impl
    implementation: nope
  - name: unknown-capability
    capability: nope
    implementation: dummy
  - name: no-impl
  - name: ok
    implementation: dummy
  - name: ok
    implementation: dummy
`), svcconfig.FormatYAML)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.ErrorIs(t, err, svcconfig.ErrUnknownImplementation)
		assert.ErrorIs(t, err, svcconfig.ErrUnknownCapability)
		assert.ErrorIs(t, err, svcrepo.ErrDuplicateService)
		assert.ErrorContains(t, err, "svcconfig: service 0: name is required")
		assert.ErrorContains(t, err, `svcconfig: service "unknown-impl": "nope": unknown implementation`)
		assert.ErrorContains(t, err, `svcconfig: service "unknown-capability": "nope": unknown capability`)
		assert.ErrorContains(t, err, `svcconfig: service "no-impl": implementation is required`)
		assert.ErrorContains(t, err, `svcconfig: service "ok": service already registered`)
	})

	t.Run("capability mismatch", func(t *testing.T) {
		r, err := newLoader(t).Parse([]byte(`
[[service]]
name = "server"
capability = "dummy-service"
implementation = "server"
`), svcconfig.FormatTOML)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err,
			`svcconfig: service "server": init service "server": implementation *testtypes.Server does not satisfy testtypes.DummyService`)
	})

	t.Run("unknown key", func(t *testing.T) {
		r, err := newLoader(t).Parse([]byte(`
[[service]]
name = "dummy"
implementation = "dummy"
lifetime = "singleton"
`), svcconfig.FormatTOML)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, `svcconfig: decode toml: unknown key "service.lifetime"`)
	})

	t.Run("bad yaml", func(t *testing.T) {
		r, err := newLoader(t).Parse([]byte("service: ["), svcconfig.FormatYAML)
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.ErrorContains(t, err, "svcconfig: decode yaml")
	})

	t.Run("unsupported format", func(t *testing.T) {
		r, err := newLoader(t).Parse(nil, svcconfig.Format(0))
		testutils.LogError(t, err)

		assert.Nil(t, r)
		assert.EqualError(t, err, "svcconfig: unsupported format 0")
	})

	t.Run("observer", func(t *testing.T) {
		o := &mocks.Observer{}
		o.On("Constructed", "dummy", mock.Anything).Once()
		o.On("Activated", "dummy").Once()

		l := newLoader(t, svcconfig.WithObserver(o))
		r, err := l.Parse([]byte(`
[[service]]
name = "dummy"
implementation = "dummy"
singleton = true
`), svcconfig.FormatTOML)
		require.NoError(t, err)
		require.NoError(t, r.Startup())

		o.AssertExpectations(t)
	})

	t.Run("logger", func(t *testing.T) {
		logger, logs := testutils.ObservedLogger()
		l := newLoader(t, svcconfig.WithLogger(logger))

		r, err := l.LoadFile("testdata/services.toml")
		require.NoError(t, err)

		_, ok := r.TryGet("missing")
		assert.False(t, ok)

		assert.Equal(t, 1, logs.FilterMessage("service table loaded").Len())
		assert.Equal(t, 1, logs.FilterMessage("get service failed").Len())
	})
}

func Test_NewLoader(t *testing.T) {
	t.Run("nil catalog", func(t *testing.T) {
		l, err := svcconfig.NewLoader(nil)
		assert.Nil(t, l)
		assert.EqualError(t, err, "svcconfig.NewLoader: catalog is nil")
	})

	t.Run("bad options", func(t *testing.T) {
		l, err := svcconfig.NewLoader(ctor.NewCatalog(),
			svcconfig.WithLogger(nil),
			svcconfig.WithObserver(nil),
			svcconfig.WithEnvFiles("testdata/missing.env"),
		)
		testutils.LogError(t, err)

		assert.Nil(t, l)
		assert.ErrorContains(t, err, "WithLogger: logger is nil")
		assert.ErrorContains(t, err, "WithObserver: observer is nil")
		assert.ErrorContains(t, err, `WithEnvFiles "testdata/missing.env"`)
	})
}

func Test_RegisterCapability(t *testing.T) {
	l, err := svcconfig.NewLoader(ctor.NewCatalog())
	require.NoError(t, err)

	require.NoError(t, svcconfig.RegisterCapability[testtypes.DummyService](l, "dummy"))
	require.NoError(t, svcconfig.RegisterCapability[testtypes.DummyService](l, "dummy"))

	err = svcconfig.RegisterCapability[testtypes.OtherService](l, "dummy")
	assert.EqualError(t, err,
		`svcconfig.RegisterCapability "dummy": already bound to testtypes.DummyService`)

	err = svcconfig.RegisterCapability[testtypes.OtherService](l, "")
	assert.EqualError(t, err, "svcconfig.RegisterCapability: name is empty")
}

func Test_FormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want svcconfig.Format
		name string
	}{
		{"a.toml", svcconfig.FormatTOML, "toml"},
		{"a.yaml", svcconfig.FormatYAML, "yaml"},
		{"dir/a.YML", svcconfig.FormatYAML, "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := svcconfig.FormatFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())
		})
	}
}
