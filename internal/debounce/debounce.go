// Package debounce delays search input until typing pauses.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWindow is the quiet period observed for search boxes
const DefaultWindow = 500 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FiredMsg is delivered when a debounce timer elapses. Only the timer armed
// by the most recent Trigger is honored; older ones are dropped by Settle.
type FiredMsg struct {
	id    int
	tag   int
	Value string
}

// Debouncer is a trailing-edge debounce for a single input. It lives on the
// bubbletea event loop: Trigger and Settle must be called from Update.
type Debouncer struct {
	id      int
	tag     int
	window  time.Duration
	pending bool
}

// New creates a Debouncer. A non-positive window falls back to DefaultWindow.
func New(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{
		id:     nextID(),
		window: window,
	}
}

// Trigger arms a new timer for value and supersedes any pending one
func (d *Debouncer) Trigger(value string) tea.Cmd {
	d.tag++
	d.pending = true
	id, tag := d.id, d.tag
	return tea.Tick(d.window, func(time.Time) tea.Msg {
		return FiredMsg{id: id, tag: tag, Value: value}
	})
}

// Settle reports whether msg is the live timer of this debouncer and, if so,
// returns the value to propagate
func (d *Debouncer) Settle(msg tea.Msg) (string, bool) {
	fired, ok := msg.(FiredMsg)
	if !ok || fired.id != d.id || fired.tag != d.tag || !d.pending {
		return "", false
	}
	d.pending = false
	return fired.Value, true
}

// Cancel discards the pending timer, if any
func (d *Debouncer) Cancel() {
	d.tag++
	d.pending = false
}

// Pending reports whether a value is waiting for the window to elapse
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Window returns the quiet period
func (d *Debouncer) Window() time.Duration {
	return d.window
}
