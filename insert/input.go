package insert

// ModFlags is a bitmask of modifier keys attached to a synthetic key
// event.
type ModFlags uint8

const (
	ModShift ModFlags = 1 << iota
	ModControl
	ModOption
	ModCommand
)

// SyntheticInput posts synthetic keyboard events to the system. Two
// event shapes exist: literal (virtual keycode + modifiers) and
// raw-unicode payload (up to a small number of UTF-16 code units per
// event).
type SyntheticInput interface {
	// PostKey posts a key-down or key-up for a virtual keycode with
	// the given modifiers held.
	PostKey(keycode uint16, mods ModFlags, down bool) error

	// PostUnicode posts a key event carrying a raw UTF-16 payload.
	PostUnicode(units []uint16, down bool) error

	// PostPaste synthesizes the platform paste key combination.
	PostPaste() error

	// ShiftHeld reports whether a shift key is physically held right
	// now. Raw unicode injection interacts badly with held modifiers.
	ShiftHeld() bool

	// ReleaseShift posts key-up events for both shift keys.
	ReleaseShift() error
}
