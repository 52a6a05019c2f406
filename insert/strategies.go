package insert

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf16"
)

const (
	// unicodeChunkSize bounds the UTF-16 payload of one synthetic
	// unicode key event.
	unicodeChunkSize = 20

	chunkPause = 1 * time.Millisecond

	// Clipboard settle times: the target needs to observe the write
	// before the paste chord, and process the paste before restore.
	clipWriteSettle = 80 * time.Millisecond
	clipPasteSettle = 120 * time.Millisecond
)

// axSelectedText writes through the selected-text attribute of the
// focused element or one of its enclosing elements. A successful write
// is confirmed by the platform's editing model.
func (e *Engine) axSelectedText(text string) (Outcome, string) {
	candidates, err := focusCandidates(e.focus)
	if err != nil {
		return Fail, fmt.Sprintf("focused element: %v", err)
	}
	if len(candidates) == 0 {
		return Fail, "no focused element"
	}

	for i, el := range candidates {
		if !el.SelectedTextSettable() {
			continue
		}
		if err := el.SetSelectedText(text); err != nil {
			return Fail, fmt.Sprintf("candidate %d: set selected text: %v", i, err)
		}
		return Success, fmt.Sprintf("candidate %d", i)
	}
	return Fail, "no candidate with settable selected text"
}

// axValueReplace splices the text into the element's value at the
// reported selection range. The range is clamped defensively; apps
// report ranges past the end of their own value.
func (e *Engine) axValueReplace(text string) (Outcome, string) {
	candidates, err := focusCandidates(e.focus)
	if err != nil {
		return Fail, fmt.Sprintf("focused element: %v", err)
	}
	if len(candidates) == 0 {
		return Fail, "no focused element"
	}

	for i, el := range candidates {
		if !el.ValueSettable() {
			continue
		}
		value, err := el.Value()
		if err != nil {
			continue
		}
		start, length, err := el.SelectedRange()
		if err != nil {
			// No selection info: append at the end.
			start, length = len(utf16.Encode([]rune(value))), 0
		}

		spliced, caret := spliceUTF16(value, start, length, text)
		if err := el.SetValue(spliced); err != nil {
			return Fail, fmt.Sprintf("candidate %d: set value: %v", i, err)
		}
		// Best effort: leave the caret after the inserted text.
		_ = el.SetSelectedRange(caret, 0)
		return Success, fmt.Sprintf("candidate %d", i)
	}
	return Fail, "no candidate with settable value"
}

// unicodeTyping posts the text as chunked raw-unicode key events. There
// is no confirmation channel for this path.
func (e *Engine) unicodeTyping(text string, delay time.Duration) (Outcome, string) {
	if e.input.ShiftHeld() {
		// A held shift corrupts raw unicode payloads.
		if err := e.input.ReleaseShift(); err != nil {
			return Fail, fmt.Sprintf("release shift: %v", err)
		}
	}

	units := utf16.Encode([]rune(text))
	for off := 0; off < len(units); off += unicodeChunkSize {
		end := off + unicodeChunkSize
		if end > len(units) {
			end = len(units)
		}
		chunk := units[off:end]

		if err := e.input.PostUnicode(chunk, true); err != nil {
			return Fail, fmt.Sprintf("post chunk at %d: %v", off, err)
		}
		e.sleep(chunkPause)
		if err := e.input.PostUnicode(chunk, false); err != nil {
			return Fail, fmt.Sprintf("post chunk up at %d: %v", off, err)
		}
		if delay > 0 {
			e.sleep(delay)
		}
	}
	return Tentative, fmt.Sprintf("%d utf-16 units", len(units))
}

// keycodeTyping posts literal key-down/key-up pairs through the fixed
// keycode table, falling back to single-character unicode events for
// unmapped characters.
func (e *Engine) keycodeTyping(text string, delay time.Duration) (Outcome, string) {
	unmapped := 0
	for _, r := range text {
		ks, ok := keymap[r]
		if !ok {
			unmapped++
			units := utf16.Encode([]rune{r})
			if err := e.input.PostUnicode(units, true); err != nil {
				return Fail, fmt.Sprintf("post unicode %q: %v", r, err)
			}
			if err := e.input.PostUnicode(units, false); err != nil {
				return Fail, fmt.Sprintf("post unicode up %q: %v", r, err)
			}
		} else {
			var mods ModFlags
			if ks.shift {
				mods = ModShift
			}
			if err := e.input.PostKey(ks.code, mods, true); err != nil {
				return Fail, fmt.Sprintf("post key %q: %v", r, err)
			}
			if err := e.input.PostKey(ks.code, mods, false); err != nil {
				return Fail, fmt.Sprintf("post key up %q: %v", r, err)
			}
		}
		if delay > 0 {
			e.sleep(delay)
		}
	}
	return Tentative, fmt.Sprintf("%d unmapped fallbacks", unmapped)
}

// syntheticTyping posts one unicode event pair per character with no
// table lookup. Last resort before touching the clipboard.
func (e *Engine) syntheticTyping(text string, delay time.Duration) (Outcome, string) {
	for _, r := range text {
		units := utf16.Encode([]rune{r})
		if err := e.input.PostUnicode(units, true); err != nil {
			return Fail, fmt.Sprintf("post %q: %v", r, err)
		}
		if err := e.input.PostUnicode(units, false); err != nil {
			return Fail, fmt.Sprintf("post up %q: %v", r, err)
		}
		if delay > 0 {
			e.sleep(delay)
		}
	}
	return Tentative, ""
}

// clipboardPaste snapshots the clipboard, overwrites it with the text,
// synthesizes a paste chord, and restores the snapshot. Restoration
// happens on both outcomes.
func (e *Engine) clipboardPaste(text string) (Outcome, string) {
	snap, err := e.clip.Snapshot()
	if err != nil {
		return Fail, fmt.Sprintf("snapshot clipboard: %v", err)
	}

	if err := e.clip.WriteString(text); err != nil {
		e.restore(snap)
		return Fail, fmt.Sprintf("write clipboard: %v", err)
	}
	e.sleep(clipWriteSettle)

	if err := e.input.PostPaste(); err != nil {
		e.restore(snap)
		return Fail, fmt.Sprintf("post paste chord: %v", err)
	}

	// Give the target time to read the clipboard before it reverts.
	e.sleep(clipPasteSettle)
	e.restore(snap)
	return Tentative, ""
}

func (e *Engine) restore(snap *Snapshot) {
	if err := e.clip.Restore(snap); err != nil {
		slog.Error("restore clipboard", "error", err)
	}
}

// spliceUTF16 replaces the [start, start+length) UTF-16 range of value
// with text, clamping the range to the value's bounds. It returns the
// spliced string and the caret position after the inserted text.
func spliceUTF16(value string, start, length int, text string) (string, int) {
	units := utf16.Encode([]rune(value))

	if start < 0 {
		start = 0
	}
	if start > len(units) {
		start = len(units)
	}
	if length < 0 {
		length = 0
	}
	if start+length > len(units) {
		length = len(units) - start
	}

	ins := utf16.Encode([]rune(text))
	out := make([]uint16, 0, len(units)-length+len(ins))
	out = append(out, units[:start]...)
	out = append(out, ins...)
	out = append(out, units[start+length:]...)

	return string(utf16.Decode(out)), start + len(ins)
}
