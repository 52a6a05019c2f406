//go:build !darwin

package insert

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

// Accessibility-tree access has no portable binding outside macOS; the
// accessibility strategies fail over to synthetic typing and clipboard
// paste here.

var errNoAccessibility = errors.New("accessibility API not available on this platform")

type noFocusProvider struct{}

// NewFocusProvider returns a provider whose lookups always fail.
func NewFocusProvider() FocusProvider {
	return noFocusProvider{}
}

func (noFocusProvider) Focused() (FocusTarget, error) {
	return nil, errNoAccessibility
}

// textClipboard is a single-representation Clipboard over the system
// clipboard. Snapshots capture the plain-text contents only, which is
// all the platform binding exposes.
type textClipboard struct{}

// NewClipboard returns the plain-text clipboard adapter.
func NewClipboard() Clipboard {
	return textClipboard{}
}

const plainTextType = "text/plain"

func (textClipboard) Snapshot() (*Snapshot, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		// An empty clipboard reads as an error on some platforms;
		// snapshot it as empty rather than failing the strategy.
		return &Snapshot{}, nil
	}
	return &Snapshot{
		Items: []Item{{
			Representations: []Representation{{Type: plainTextType, Data: []byte(text)}},
		}},
	}, nil
}

func (textClipboard) WriteString(text string) error {
	return clipboard.WriteAll(text)
}

func (textClipboard) Restore(snap *Snapshot) error {
	for _, item := range snap.Items {
		for _, rep := range item.Representations {
			if rep.Type == plainTextType {
				return clipboard.WriteAll(string(rep.Data))
			}
		}
	}
	return clipboard.WriteAll("")
}

// kbdInput drives keybd_event. Only the paste chord is supported;
// keycode tables and raw unicode payloads are macOS event-system
// features.
type kbdInput struct{}

// NewSyntheticInput returns the fallback input adapter.
func NewSyntheticInput() SyntheticInput {
	return kbdInput{}
}

func (kbdInput) PostKey(uint16, ModFlags, bool) error {
	return errors.New("literal keycode events not supported on this platform")
}

func (kbdInput) PostUnicode([]uint16, bool) error {
	return errors.New("unicode key events not supported on this platform")
}

func (kbdInput) PostPaste() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.HasCTRL(true)
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}

func (kbdInput) ShiftHeld() bool { return false }

func (kbdInput) ReleaseShift() error { return nil }

// SecureInputActive always reports false outside macOS.
func SecureInputActive() bool { return false }
