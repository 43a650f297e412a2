// Package watch re-runs a sync round whenever the workspace data files change.
package watch

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of triggers into one callback after the
// window has been quiet.
type Debouncer struct {
	window   time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger arms (or re-arms) the timer. The callback fires once the window
// elapses without another trigger.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.callback)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
