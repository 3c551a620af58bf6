package testtypes

import (
	"sync/atomic"
	"time"
)

// Factory counts how many values it has built.
type Factory struct {
	count atomic.Int64
	delay time.Duration
}

// NewSlowFactory returns a Factory that sleeps before building each value,
// which widens the window for concurrent callers to race.
func NewSlowFactory(delay time.Duration) *Factory {
	return &Factory{delay: delay}
}

func (f *Factory) Count() int {
	return int(f.count.Load())
}

func (f *Factory) NewDummy() (DummyService, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	n := f.count.Add(1)

	return newDummy("factory", int(n), "factory", false), nil
}

func (f *Factory) NewDummy3(arg1 string, arg2 int, arg3 string) *DummyServiceImpl {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.count.Add(1)

	return NewDummy3(arg1, arg2, arg3)
}
