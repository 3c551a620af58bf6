package testutils

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// LogError is a test helper function to log an error message if it is not nil.
//
// This is to help make sure our error messages are helpful and informative.
func LogError(t *testing.T, err error) {
	if err == nil {
		return
	}

	t.Helper()
	t.Logf("error message:\n%v", err)
}

// RunParallel runs a function in parallel with the given concurrency.
//
// All goroutines are released at the same time to maximize contention.
func RunParallel(concurrency int, f func(int)) {
	start := make(chan struct{})
	wg := sync.WaitGroup{}
	wg.Add(concurrency)

	for i := range concurrency {
		go func() {
			defer wg.Done()
			<-start
			f(i)
		}()
	}

	close(start)
	wg.Wait()
}

// ObservedLogger returns a logger that records entries at debug level and above.
func ObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
