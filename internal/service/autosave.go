package service

import (
	"sync"
	"time"

	"easel/internal/domain"
)

// DefaultAutoSaveDelay is how long the editor waits after the last change
// before persisting.
const DefaultAutoSaveDelay = 2 * time.Second

// AutoSave is the debounced persistence trigger. Every Schedule call replaces
// the pending snapshot and restarts the delay timer; when the timer fires the
// latest snapshot is handed to the save function. Flush saves synchronously
// and is called unconditionally on editor teardown so no trailing edit is
// lost.
type AutoSave struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending *domain.Project
	save    func(*domain.Project)
}

func NewAutoSave(delay time.Duration, save func(*domain.Project)) *AutoSave {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	return &AutoSave{delay: delay, save: save}
}

// Schedule records the snapshot as pending and (re)starts the debounce timer.
func (a *AutoSave) Schedule(p *domain.Project) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = p
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

func (a *AutoSave) fire() {
	a.mu.Lock()
	p := a.pending
	a.pending = nil
	a.timer = nil
	a.mu.Unlock()
	if p != nil {
		a.save(p)
	}
}

// Cancel drops any pending snapshot without saving.
func (a *AutoSave) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

// Flush saves the pending snapshot immediately, skipping the debounce.
// A no-op when nothing is pending.
func (a *AutoSave) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	p := a.pending
	a.pending = nil
	a.mu.Unlock()
	if p != nil {
		a.save(p)
	}
}
