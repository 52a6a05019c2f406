package insert

// FocusTarget is a capability view of one UI element. Implementations
// wrap the platform accessibility API; tests use in-memory fakes.
//
// Range positions are UTF-16 code unit offsets, matching what the
// platform reports.
type FocusTarget interface {
	// Value returns the element's current text value.
	Value() (string, error)

	// ValueSettable reports whether the value attribute accepts writes.
	ValueSettable() bool

	// SetValue replaces the element's text value.
	SetValue(text string) error

	// SelectedRange returns the current selection as (start, length).
	SelectedRange() (start, length int, err error)

	// SetSelectedRange moves the selection.
	SetSelectedRange(start, length int) error

	// SelectedTextSettable reports whether the selected-text shortcut
	// attribute accepts writes.
	SelectedTextSettable() bool

	// SetSelectedText replaces the current selection with text.
	SetSelectedText(text string) error

	// Parent returns the enclosing element, or nil at the top.
	Parent() FocusTarget
}

// FocusProvider resolves the element that currently owns keyboard focus.
type FocusProvider interface {
	Focused() (FocusTarget, error)
}

// maxFocusAncestors bounds the walk from the reported focus element up
// through its enclosing elements. Some applications report a
// non-editable wrapper as focused; the real text element is usually
// within a few levels.
const maxFocusAncestors = 3

// focusCandidates returns the focused element followed by up to
// maxFocusAncestors enclosing elements.
func focusCandidates(p FocusProvider) ([]FocusTarget, error) {
	el, err := p.Focused()
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, nil
	}

	candidates := []FocusTarget{el}
	for i := 0; i < maxFocusAncestors; i++ {
		parent := candidates[len(candidates)-1].Parent()
		if parent == nil {
			break
		}
		candidates = append(candidates, parent)
	}
	return candidates, nil
}
