package insert

// Representation is one (type, data) pair of a clipboard item.
type Representation struct {
	Type string
	Data []byte
}

// Item is the full representation set of one clipboard item.
type Item struct {
	Representations []Representation
}

// Snapshot captures the complete clipboard contents: every
// representation of every item, enough to reconstruct the clipboard
// exactly.
type Snapshot struct {
	Items []Item
}

// Clipboard abstracts the system pasteboard. Any mutation performed
// through WriteString must be paired with a Restore of a prior Snapshot,
// on both success and failure paths.
type Clipboard interface {
	// Snapshot captures the current clipboard contents.
	Snapshot() (*Snapshot, error)

	// WriteString replaces the clipboard with a single plain-string item.
	WriteString(text string) error

	// Restore puts a previously captured snapshot back.
	Restore(snap *Snapshot) error
}
