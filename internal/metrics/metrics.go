// Package metrics provides a small instrumentation surface with a no-op
// default and a Prometheus-backed implementation used by the server.
package metrics

import (
	"sync"
	"time"
)

// Recorder defines the metrics surface used across the codebase.
type Recorder interface {
	IncOpTotal(op string, success bool)
	ObserveOpSeconds(op string, success bool, seconds float64)
	ObserveGraphSize(nodes, edges int)
}

type noopRecorder struct{}

func (n *noopRecorder) IncOpTotal(string, bool)                {}
func (n *noopRecorder) ObserveOpSeconds(string, bool, float64) {}
func (n *noopRecorder) ObserveGraphSize(int, int)              {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation. Passing nil restores the no-op.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	if r == nil {
		r = &noopRecorder{}
	}
	recorder = r
}

// TimeOp starts timing op; call the returned func with the outcome.
func TimeOp(op string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		Default().IncOpTotal(op, success)
		Default().ObserveOpSeconds(op, success, dur)
	}
}
