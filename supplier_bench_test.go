package svcrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sectrean/svcrepo"
	"github.com/sectrean/svcrepo/internal/testtypes"
)

func BenchmarkSupplier_Get_Singleton(b *testing.B) {
	s := svcrepo.For[testtypes.DummyService]().
		Name("x").
		Singleton(true).
		Implementation(dummyImpl).
		MustBuild()
	require.NoError(b, s.Init())

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = s.Get()
		}
	})
}

func BenchmarkSupplier_Get_Transient(b *testing.B) {
	s := svcrepo.For[testtypes.DummyService]().
		Name("x").
		Implementation(dummyImpl).
		MustBuild()

	for i := 0; i < b.N; i++ {
		_, _ = s.Get()
	}
}

func BenchmarkSupplier_Get_TransientArgs(b *testing.B) {
	s := svcrepo.For[testtypes.DummyService]().
		Name("x").
		Implementation(dummyImpl).
		MustBuild()

	for i := 0; i < b.N; i++ {
		_, _ = s.Get("a", 3, "b")
	}
}

func BenchmarkRegistry_Resolve(b *testing.B) {
	r, err := svcrepo.NewRegistry(svcrepo.WithServices(
		svcrepo.For[testtypes.DummyService]().
			Name("x").
			Singleton(true).
			Implementation(dummyImpl).
			MustBuild(),
	))
	require.NoError(b, err)

	for i := 0; i < b.N; i++ {
		_, _ = svcrepo.Resolve[testtypes.DummyService](r, "x")
	}
}
