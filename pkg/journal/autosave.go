package journal

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is how long input must be idle before the draft is
// written.
const DefaultAutosaveDelay = 700 * time.Millisecond

// Status is the autosave indicator shown next to the input.
type Status int

const (
	StatusNotSaved Status = iota
	StatusSaving
	StatusSaved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSaving:
		return "Autosave: saving..."
	case StatusSaved:
		return "Autosave: saved"
	case StatusFailed:
		return "Autosave: failed"
	default:
		return "Autosave: not saved"
	}
}

// Autosaver debounces draft writes. Each Input supersedes the write
// scheduled by the previous one.
type Autosaver struct {
	store    *Store
	delay    time.Duration
	onStatus func(Status, error)

	// writeMu serializes draft writes so Cancel can wait out one in flight.
	writeMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	dirty   bool
	gen     uint64
	status  Status
}

// NewAutosaver returns an autosaver writing to s. onStatus may be nil; it is
// called from the timer goroutine when a scheduled write completes.
func NewAutosaver(s *Store, delay time.Duration, onStatus func(Status, error)) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{store: s, delay: delay, onStatus: onStatus}
}

// Input records new draft text and (re)schedules the write.
func (a *Autosaver) Input(text string) {
	a.mu.Lock()
	a.pending = text
	a.dirty = true
	a.gen++
	gen := a.gen
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		a.fire(gen)
	})
	a.status = StatusSaving
	a.mu.Unlock()

	a.report(StatusSaving, nil)
}

// Flush writes a pending draft immediately.
func (a *Autosaver) Flush() error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if !a.dirty {
		a.mu.Unlock()
		return nil
	}
	text := a.pending
	a.dirty = false
	a.gen++
	a.mu.Unlock()

	return a.write(text)
}

// Cancel drops any pending write and resets the indicator. A write already
// in progress finishes before Cancel returns, so nothing lands afterwards.
// Call it before the draft is committed as an entry.
func (a *Autosaver) Cancel() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.dirty = false
	a.gen++
	a.status = StatusNotSaved
	a.mu.Unlock()

	a.writeMu.Lock()
	a.writeMu.Unlock()

	a.report(StatusNotSaved, nil)
}

// Status returns the current indicator.
func (a *Autosaver) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Autosaver) fire(gen uint64) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	if gen != a.gen || !a.dirty {
		a.mu.Unlock()
		return
	}
	text := a.pending
	a.dirty = false
	a.timer = nil
	a.mu.Unlock()

	_ = a.write(text)
}

func (a *Autosaver) write(text string) error {
	err := a.store.SetDraft(text)
	status := StatusSaved
	if err != nil {
		status = StatusFailed
	}
	a.mu.Lock()
	a.status = status
	a.mu.Unlock()
	a.report(status, err)
	return err
}

func (a *Autosaver) report(s Status, err error) {
	if a.onStatus != nil {
		a.onStatus(s, err)
	}
}
