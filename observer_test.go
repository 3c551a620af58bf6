package svcrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sectrean/svcrepo"
	"github.com/sectrean/svcrepo/internal/mocks"
	"github.com/sectrean/svcrepo/internal/testtypes"
)

func Test_Observer(t *testing.T) {
	ctx := context.Background()

	t.Run("singleton lifecycle", func(t *testing.T) {
		o := &mocks.Observer{}
		o.On("Constructed", "x", mock.AnythingOfType("time.Duration")).Twice()
		o.On("Activated", "x").Twice()
		o.On("Deactivated", "x").Twice()
		o.On("Disposed", "x", nil).Once()

		s := svcrepo.For[testtypes.DummyService]().
			Name("x").
			Singleton(true).
			Implementation(dummyImpl).
			Observer(o).
			MustBuild()

		require.NoError(t, s.Init())
		require.NoError(t, s.Init())
		require.NoError(t, s.Dispose(ctx))

		require.NoError(t, s.Init())
		s.Reset()

		o.AssertExpectations(t)
	})

	t.Run("transient", func(t *testing.T) {
		o := &mocks.Observer{}
		o.On("Constructed", "x", mock.Anything).Times(3)

		s := svcrepo.For[testtypes.DummyService]().
			Name("x").
			Implementation(dummyImpl).
			Observer(o).
			MustBuild()

		for range 3 {
			_, err := s.Get()
			require.NoError(t, err)
		}
		require.NoError(t, s.Dispose(ctx))

		o.AssertExpectations(t)
		o.AssertNotCalled(t, "Activated", mock.Anything)
		o.AssertNotCalled(t, "Disposed", mock.Anything, mock.Anything)
	})

	t.Run("failures", func(t *testing.T) {
		boom := errors.New("boom")
		o := &mocks.Observer{}
		o.On("ConstructionFailed", "x", mock.MatchedBy(func(err error) bool {
			return errors.Is(err, boom)
		})).Once()
		o.On("Constructed", "x", mock.Anything).Once()
		o.On("Activated", "x").Once()
		o.On("Deactivated", "x").Once()
		o.On("Disposed", "x", mock.MatchedBy(func(err error) bool {
			return errors.Is(err, testtypes.ErrCloseFailed)
		})).Once()

		calls := 0
		s := svcrepo.For[testtypes.DummyService]().
			Name("x").
			Singleton(true).
			Supplier(func() (testtypes.DummyService, error) {
				calls++
				if calls == 1 {
					return nil, boom
				}
				return testtypes.NewFailingCloser(), nil
			}).
			Observer(o).
			MustBuild()

		require.Error(t, s.Init())
		require.NoError(t, s.Init())
		require.Error(t, s.Dispose(ctx))

		o.AssertExpectations(t)
	})

	t.Run("set instance", func(t *testing.T) {
		o := &mocks.Observer{}
		o.On("Activated", "x").Once()
		o.On("Deactivated", "x").Once()

		s := svcrepo.For[testtypes.DummyService]().
			Name("x").
			Singleton(true).
			Implementation(dummyImpl).
			Observer(o).
			MustBuild()

		require.NoError(t, s.SetInstance(testtypes.NewDummy()))
		require.NoError(t, s.SetInstance(testtypes.NewDummy()))
		require.NoError(t, s.SetInstance(nil))

		o.AssertExpectations(t)
		o.AssertNotCalled(t, "Constructed", mock.Anything, mock.Anything)
	})
}
