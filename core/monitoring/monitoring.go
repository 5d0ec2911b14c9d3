// Package monitoring reports planner errors and panics to an external
// error tracker. The default is a no-op; infra wires a real backend when
// one is configured.
package monitoring

import "time"

// Monitor receives errors and panics for out-of-band reporting.
type Monitor interface {
	Capture(err error, tags map[string]string)
	CapturePanic(v any)
	Flush(timeout time.Duration)
}

// NopMonitor drops everything.
type NopMonitor struct{}

func (NopMonitor) Capture(error, map[string]string) {}
func (NopMonitor) CapturePanic(any)                 {}
func (NopMonitor) Flush(time.Duration)              {}

var current Monitor = NopMonitor{}

// Init installs the process-wide monitor.
func Init(m Monitor) {
	if m != nil {
		current = m
	}
}

// Capture reports err with optional tags. Nil errors are ignored by
// implementations.
func Capture(err error, tags map[string]string) {
	current.Capture(err, tags)
}

// Recover forwards a panic in the calling goroutine to the monitor and
// re-panics. Must be deferred directly: recover only takes effect when
// called from the deferred function itself.
func Recover() {
	if r := recover(); r != nil {
		current.CapturePanic(r)
		panic(r)
	}
}

// Flush blocks until buffered events are sent or the timeout elapses.
func Flush(d time.Duration) {
	current.Flush(d)
}
