package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Lifecycle is a mock of svcrepo.Lifecycle.
type Lifecycle struct {
	mock.Mock
}

func (m *Lifecycle) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Lifecycle) Init() error {
	args := m.Called()
	return args.Error(0)
}

func (m *Lifecycle) Dispose(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Observer is a mock of svcrepo.Observer.
type Observer struct {
	mock.Mock
}

func (m *Observer) Constructed(name string, elapsed time.Duration) {
	m.Called(name, elapsed)
}

func (m *Observer) ConstructionFailed(name string, err error) {
	m.Called(name, err)
}

func (m *Observer) Activated(name string) {
	m.Called(name)
}

func (m *Observer) Deactivated(name string) {
	m.Called(name)
}

func (m *Observer) Disposed(name string, err error) {
	m.Called(name, err)
}
