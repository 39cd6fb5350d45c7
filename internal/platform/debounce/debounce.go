// Package debounce delays an action until calls to Trigger stop arriving for Delay.
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	Delay  time.Duration
	Action func()

	mu    sync.Mutex
	timer *time.Timer
}

func New(delay time.Duration, action func()) *Debouncer {
	return &Debouncer{Delay: delay, Action: action}
}

// Trigger cancels any pending run and schedules a new one after Delay.
// A nil Action makes the scheduled run a no-op.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	action := d.Action
	d.timer = time.AfterFunc(d.Delay, func() {
		if action != nil {
			action()
		}
	})
}

// Stop cancels the pending run, reporting whether one was cancelled.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
