package filter

import (
	"strings"
	"time"
)

// DefaultDelay is the quiet period before a search value is committed.
const DefaultDelay = 250 * time.Millisecond

// Debouncer coalesces rapid input. Each Push invalidates earlier tokens, so
// only the value pushed last can be committed. It is not safe for concurrent
// use; the dashboard drives it from its update loop.
type Debouncer struct {
	seq       uint64
	pending   string
	committed string
}

// NewDebouncer returns a debouncer whose last committed value is committed.
func NewDebouncer(committed string) *Debouncer {
	return &Debouncer{committed: strings.TrimSpace(committed)}
}

// Push records value as pending and returns the token that may commit it.
func (d *Debouncer) Push(value string) uint64 {
	d.seq++
	d.pending = value
	return d.seq
}

// Fire commits the pending value when token is still the latest and the
// trimmed value differs from the last committed one.
func (d *Debouncer) Fire(token uint64) (string, bool) {
	if token != d.seq {
		return "", false
	}
	value := strings.TrimSpace(d.pending)
	if value == d.committed {
		return "", false
	}
	d.committed = value
	return value, true
}

// Reset drops any pending value and records value as committed.
func (d *Debouncer) Reset(value string) {
	d.seq++
	d.pending = value
	d.committed = strings.TrimSpace(value)
}

// Committed returns the last committed value.
func (d *Debouncer) Committed() string {
	return d.committed
}
