// Package notify bridges filter mutations to search emissions: a
// trailing-edge debouncer plus a change notifier that drops no-op updates.
package notify

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of calls into one trailing-edge execution.
// Each Call resets the quiet period; when it elapses, the most recently
// supplied function runs. Stop cancels any pending execution.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the quiet period, replacing any pending
// function. A burst of N calls within the window yields exactly one run,
// of the last function supplied.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending execution and rejects further calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
