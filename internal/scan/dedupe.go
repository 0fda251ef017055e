package scan

import (
	"sync"
	"time"
)

// DefaultDedupeWindow is how long a repeated code is ignored.
const DefaultDedupeWindow = 2000 * time.Millisecond

// Deduplicator suppresses repeat reads of the same code.
type Deduplicator struct {
	mu       sync.Mutex
	window   time.Duration
	lastCode string
	lastAt   time.Time
	seen     bool
}

// NewDeduplicator returns a Deduplicator with the given window. A
// non-positive window uses DefaultDedupeWindow.
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupeWindow
	}
	return &Deduplicator{window: window}
}

// Window returns the configured suppression window.
func (d *Deduplicator) Window() time.Duration {
	return d.window
}

// Accept reports whether code should be processed at now. Accepted codes
// become the new reference; rejected ones leave it untouched.
func (d *Deduplicator) Accept(code string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen && code == d.lastCode && now.Sub(d.lastAt) < d.window {
		return false
	}
	d.lastCode = code
	d.lastAt = now
	d.seen = true
	return true
}

// Reset forgets the last accepted code.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	d.lastCode = ""
	d.lastAt = time.Time{}
	d.seen = false
	d.mu.Unlock()
}
