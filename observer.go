package svcrepo

import "time"

// Observer receives lifecycle events from service suppliers.
//
// Implementations must be safe for concurrent use and must not block.
// See package svcmetrics for a Prometheus implementation.
type Observer interface {
	// Constructed is called after an instance was built and validated.
	Constructed(name string, elapsed time.Duration)
	// ConstructionFailed is called when a factory fails or produces an invalid instance.
	ConstructionFailed(name string, err error)
	// Activated is called when a singleton instance is stored.
	Activated(name string)
	// Deactivated is called when a singleton instance is cleared.
	Deactivated(name string)
	// Disposed is called after the dispose action ran. err is nil on success.
	Disposed(name string, err error)
}

type nopObserver struct{}

func (nopObserver) Constructed(string, time.Duration) {}
func (nopObserver) ConstructionFailed(string, error)  {}
func (nopObserver) Activated(string)                  {}
func (nopObserver) Deactivated(string)                {}
func (nopObserver) Disposed(string, error)            {}

var _ Observer = nopObserver{}
