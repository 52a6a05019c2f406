package insert

import (
	"bytes"
	"errors"
	"time"
)

// fakeElement is an in-memory FocusTarget.
type fakeElement struct {
	value           string
	selStart        int
	selLen          int
	selRangeErr     error
	valueWritable   bool
	selTextWritable bool
	parent          *fakeElement

	selTextWrites []string
}

func (f *fakeElement) Value() (string, error) { return f.value, nil }

func (f *fakeElement) ValueSettable() bool { return f.valueWritable }

func (f *fakeElement) SetValue(text string) error {
	if !f.valueWritable {
		return errors.New("value not settable")
	}
	f.value = text
	return nil
}

func (f *fakeElement) SelectedRange() (int, int, error) {
	if f.selRangeErr != nil {
		return 0, 0, f.selRangeErr
	}
	return f.selStart, f.selLen, nil
}

func (f *fakeElement) SetSelectedRange(start, length int) error {
	f.selStart, f.selLen = start, length
	return nil
}

func (f *fakeElement) SelectedTextSettable() bool { return f.selTextWritable }

func (f *fakeElement) SetSelectedText(text string) error {
	if !f.selTextWritable {
		return errors.New("selected text not settable")
	}
	f.selTextWrites = append(f.selTextWrites, text)
	return nil
}

func (f *fakeElement) Parent() FocusTarget {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

// fakeFocus returns a fixed element or error.
type fakeFocus struct {
	el  FocusTarget
	err error
}

func (f fakeFocus) Focused() (FocusTarget, error) { return f.el, f.err }

// postedEvent records one synthetic event.
type postedEvent struct {
	kind  string // "key", "unicode", "paste"
	code  uint16
	mods  ModFlags
	units []uint16
	down  bool
}

// fakeInput records posted events.
type fakeInput struct {
	events    []postedEvent
	shiftHeld bool
	keyErr    error
	uniErr    error
	pasteErr  error
}

func (f *fakeInput) PostKey(code uint16, mods ModFlags, down bool) error {
	if f.keyErr != nil {
		return f.keyErr
	}
	f.events = append(f.events, postedEvent{kind: "key", code: code, mods: mods, down: down})
	return nil
}

func (f *fakeInput) PostUnicode(units []uint16, down bool) error {
	if f.uniErr != nil {
		return f.uniErr
	}
	cp := append([]uint16(nil), units...)
	f.events = append(f.events, postedEvent{kind: "unicode", units: cp, down: down})
	return nil
}

func (f *fakeInput) PostPaste() error {
	if f.pasteErr != nil {
		return f.pasteErr
	}
	f.events = append(f.events, postedEvent{kind: "paste"})
	return nil
}

func (f *fakeInput) ShiftHeld() bool { return f.shiftHeld }

func (f *fakeInput) ReleaseShift() error {
	f.events = append(f.events, postedEvent{kind: "key", code: vkShiftLeft, down: false})
	f.events = append(f.events, postedEvent{kind: "key", code: vkShiftRight, down: false})
	return nil
}

// fakeClipboard is an in-memory multi-representation clipboard.
type fakeClipboard struct {
	items    []Item
	snapErr  error
	writeErr error
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		reps := make([]Representation, len(item.Representations))
		for j, rep := range item.Representations {
			reps[j] = Representation{Type: rep.Type, Data: append([]byte(nil), rep.Data...)}
		}
		out[i] = Item{Representations: reps}
	}
	return out
}

func (f *fakeClipboard) Snapshot() (*Snapshot, error) {
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return &Snapshot{Items: cloneItems(f.items)}, nil
}

func (f *fakeClipboard) WriteString(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.items = []Item{{Representations: []Representation{{Type: "text/plain", Data: []byte(text)}}}}
	return nil
}

func (f *fakeClipboard) Restore(snap *Snapshot) error {
	f.items = cloneItems(snap.Items)
	return nil
}

func itemsEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i].Representations) != len(b[i].Representations) {
			return false
		}
		for j := range a[i].Representations {
			ra, rb := a[i].Representations[j], b[i].Representations[j]
			if ra.Type != rb.Type || !bytes.Equal(ra.Data, rb.Data) {
				return false
			}
		}
	}
	return true
}

// newTestEngine builds an engine over fakes with sleeps disabled.
func newTestEngine(focus FocusProvider, input SyntheticInput, clip Clipboard, opts Options) *Engine {
	e := New(focus, input, clip, opts)
	e.sleep = func(time.Duration) {}
	return e
}
