// Package hotkey turns the global keyboard event stream into discrete
// press/release edges for one configured push-to-talk key.
package hotkey

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	hook "github.com/robotn/gohook"
)

// EventType is a hotkey edge.
type EventType int

const (
	Press EventType = iota
	Release
)

func (t EventType) String() string {
	if t == Press {
		return "press"
	}
	return "release"
}

// Event is one detected hotkey edge.
type Event struct {
	Type EventType
	At   time.Time
}

// Watch monitors the system keyboard for the configured key and emits
// press/release edges on Events. The underlying hook can deliver the
// same physical keypress more than once (global and local monitors run
// concurrently, and held keys repeat), so Watch dedupes edges through a
// compare-and-set on the down state inside a single critical section.
type Watch struct {
	match  matcher
	events chan Event

	mu   sync.Mutex
	down bool

	stopOnce sync.Once
	done     chan struct{}
}

// matcher reports whether a raw hook event refers to the configured key.
type matcher func(ev hook.Event) bool

// New creates a watch for the named key: ctrl, alt/option, shift, cmd,
// fn, f1..f12, or a single character.
func New(key string) (*Watch, error) {
	match, err := resolveKey(key)
	if err != nil {
		return nil, err
	}
	return &Watch{
		match:  match,
		events: make(chan Event, 8),
		done:   make(chan struct{}),
	}, nil
}

// Events returns the edge channel. Edges are dropped, not buffered
// indefinitely, if the consumer falls behind.
func (w *Watch) Events() <-chan Event {
	return w.events
}

// Start begins consuming the global hook stream in a background
// goroutine.
func (w *Watch) Start() {
	raw := hook.Start()
	go w.loop(raw)
}

func (w *Watch) loop(raw chan hook.Event) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-raw:
			if !ok {
				return
			}
			switch ev.Kind {
			case hook.KeyDown, hook.KeyHold:
				if w.match(ev) {
					w.edge(true)
				}
			case hook.KeyUp:
				if w.match(ev) {
					w.edge(false)
				}
			}
		}
	}
}

// edge flips the down state and emits an event only on a real
// transition. Read-and-decide happens under one lock so racing monitor
// callbacks cannot double-fire.
func (w *Watch) edge(down bool) {
	w.mu.Lock()
	fire := w.down != down
	w.down = down
	w.mu.Unlock()

	if !fire {
		return
	}

	t := Release
	if down {
		t = Press
	}
	select {
	case w.events <- Event{Type: t, At: time.Now()}:
	default:
		slog.Warn("hotkey event dropped, consumer behind", "type", t)
	}
}

// Stop ends the watch and the underlying hook. Idempotent.
func (w *Watch) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		hook.End()
	})
}

func resolveKey(key string) (matcher, error) {
	name := strings.ToLower(strings.TrimSpace(key))
	if name == "option" {
		name = "alt" // macOS alias
	}

	if codes, ok := modifierRawcodes[name]; ok {
		return rawcodeMatcher(codes), nil
	}
	if codes, ok := functionRawcodes[name]; ok {
		return rawcodeMatcher(codes), nil
	}

	runes := []rune(key)
	if len(runes) == 1 {
		want := unicode.ToLower(runes[0])
		return func(ev hook.Event) bool {
			return unicode.ToLower(ev.Keychar) == want
		}, nil
	}

	return nil, fmt.Errorf("unknown hotkey %q: use ctrl/alt/shift/cmd/fn, f1..f12, or a single character", key)
}

func rawcodeMatcher(codes []uint16) matcher {
	return func(ev hook.Event) bool {
		for _, c := range codes {
			if ev.Rawcode == c {
				return true
			}
		}
		return false
	}
}
