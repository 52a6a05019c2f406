package hotkey

import (
	"sync"
	"testing"
	"time"

	hook "github.com/robotn/gohook"
)

func newTestWatch(t *testing.T, key string) *Watch {
	t.Helper()
	w, err := New(key)
	if err != nil {
		t.Fatalf("New(%q): %v", key, err)
	}
	return w
}

func drain(w *Watch) []Event {
	var out []Event
	for {
		select {
		case ev := <-w.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestEdgeDetectorDedupes(t *testing.T) {
	w := newTestWatch(t, "ctrl")

	// A held key repeats and two monitors can deliver the same edge;
	// only real transitions may fire.
	w.edge(true)
	w.edge(true)
	w.edge(true)
	w.edge(false)
	w.edge(false)

	events := drain(w)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != Press || events[1].Type != Release {
		t.Errorf("events = %v,%v, want press,release", events[0].Type, events[1].Type)
	}
}

func TestEdgeDetectorConcurrentMonitors(t *testing.T) {
	w := newTestWatch(t, "ctrl")

	// Simulate global and local monitors racing on the same physical
	// edges. Whatever the interleaving, exactly one press and one
	// release fire per round, in that order.
	for round := 0; round < 50; round++ {
		var wg sync.WaitGroup
		for m := 0; m < 2; m++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.edge(true)
			}()
		}
		wg.Wait()
		for m := 0; m < 2; m++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.edge(false)
			}()
		}
		wg.Wait()

		events := drain(w)
		if len(events) != 2 {
			t.Fatalf("round %d: got %d events, want 2", round, len(events))
		}
		if events[0].Type != Press || events[1].Type != Release {
			t.Fatalf("round %d: events = %v,%v, want press,release",
				round, events[0].Type, events[1].Type)
		}
	}
}

func TestResolveKeyNames(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"ctrl", false},
		{"CTRL", false},
		{"option", false},
		{"cmd", false},
		{"f5", false},
		{"x", false},
		{"bogus-key", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := New(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestCharacterMatcherIsCaseInsensitive(t *testing.T) {
	w := newTestWatch(t, "d")

	if !w.match(hook.Event{Keychar: 'd'}) {
		t.Error("lowercase 'd' did not match")
	}
	if !w.match(hook.Event{Keychar: 'D'}) {
		t.Error("uppercase 'D' did not match")
	}
	if w.match(hook.Event{Keychar: 'e'}) {
		t.Error("'e' matched")
	}
}

func TestModifierMatcherMatchesBothSides(t *testing.T) {
	w := newTestWatch(t, "ctrl")

	codes := modifierRawcodes["ctrl"]
	for _, code := range codes {
		if !w.match(hook.Event{Rawcode: code}) {
			t.Errorf("rawcode %#x did not match ctrl", code)
		}
	}
	if w.match(hook.Event{Rawcode: 0x01}) {
		t.Error("unrelated rawcode matched ctrl")
	}
}

func TestDroppedEventsDoNotBlock(t *testing.T) {
	w := newTestWatch(t, "ctrl")

	// Overflow the buffer; edge must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			w.edge(i%2 == 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("edge blocked on full channel")
	}
}
