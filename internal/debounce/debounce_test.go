package debounce

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDebouncer_OnlyLastValueFires(t *testing.T) {
	d := New(time.Millisecond)

	var cmds []tea.Cmd
	for _, v := range []string{"b", "bo", "bol", "bolo"} {
		cmds = append(cmds, d.Trigger(v))
	}

	var fired []string
	for _, cmd := range cmds {
		if v, ok := d.Settle(cmd()); ok {
			fired = append(fired, v)
		}
	}

	if len(fired) != 1 {
		t.Fatalf("expected exactly one propagation, got %d: %v", len(fired), fired)
	}
	if fired[0] != "bolo" {
		t.Errorf("expected last value bolo, got %q", fired[0])
	}
	if d.Pending() {
		t.Error("debouncer should be idle after firing")
	}
}

func TestDebouncer_OutOfOrderDelivery(t *testing.T) {
	d := New(time.Millisecond)

	first := d.Trigger("a")
	last := d.Trigger("ab")

	// the live timer arrives before the superseded one
	if v, ok := d.Settle(last()); !ok || v != "ab" {
		t.Fatalf("Settle(last) = %q, %v; want ab, true", v, ok)
	}
	if _, ok := d.Settle(first()); ok {
		t.Error("superseded timer must never fire")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := New(time.Millisecond)

	cmd := d.Trigger("bolo")
	d.Cancel()

	if _, ok := d.Settle(cmd()); ok {
		t.Error("cancelled timer must not fire")
	}
}

func TestDebouncer_IgnoresOtherDebouncers(t *testing.T) {
	a := New(time.Millisecond)
	b := New(time.Millisecond)

	cmdA := a.Trigger("x")
	b.Trigger("y")

	if _, ok := b.Settle(cmdA()); ok {
		t.Error("debouncer accepted another debouncer's timer")
	}
	if _, ok := a.Settle("not a fired msg"); ok {
		t.Error("debouncer accepted a foreign message")
	}
}

func TestDebouncer_WindowResetsOnEveryTrigger(t *testing.T) {
	window := 30 * time.Millisecond
	d := New(window)

	start := time.Now()
	d.Trigger("a")
	time.Sleep(20 * time.Millisecond)
	cmd := d.Trigger("ab")

	msg := cmd()
	elapsed := time.Since(start)

	if _, ok := d.Settle(msg); !ok {
		t.Fatal("expected the last timer to fire")
	}
	if elapsed < 20*time.Millisecond+window {
		t.Errorf("fired after %v, before a full window from the last trigger", elapsed)
	}
}

func TestNew_DefaultWindow(t *testing.T) {
	if got := New(0).Window(); got != DefaultWindow {
		t.Errorf("Window() = %v, want %v", got, DefaultWindow)
	}
}
