package backend

import (
	"sync"
	"time"
)

// debouncer collapses bursts of triggers into one call after the burst has
// been quiet for delay.
type debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	if delay <= 0 {
		return &debouncer{}
	}
	return &debouncer{delay: delay}
}

func (d *debouncer) trigger(fn func()) {
	if d == nil || d.delay <= 0 {
		fn()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *debouncer) cancel() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
