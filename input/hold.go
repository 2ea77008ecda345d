package input

import (
	"sort"
	"time"
)

// DefaultHoldTimeout keeps a key held between terminal auto-repeat events
const DefaultHoldTimeout = 150 * time.Millisecond

// HoldTracker turns press-only key events into held state
// A key counts as held until timeout elapses without another press
// Not safe for concurrent use, owned by the frame loop
type HoldTracker struct {
	timeout time.Duration
	last    map[string]time.Time
}

// NewHoldTracker creates a tracker, timeout <= 0 uses DefaultHoldTimeout
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HoldTracker{timeout: timeout, last: make(map[string]time.Time)}
}

// Press records a key event at now
func (h *HoldTracker) Press(key string, now time.Time) {
	h.last[normalizeKey(key)] = now
}

// Release drops a key immediately, for frontends that report releases
func (h *HoldTracker) Release(key string) {
	delete(h.last, normalizeKey(key))
}

// Held returns the keys pressed within the timeout, sorted, and forgets stale ones
func (h *HoldTracker) Held(now time.Time) []string {
	keys := make([]string, 0, len(h.last))
	for k, t := range h.last {
		if now.Sub(t) < h.timeout {
			keys = append(keys, k)
		} else {
			delete(h.last, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Reset forgets every key
func (h *HoldTracker) Reset() {
	clear(h.last)
}
