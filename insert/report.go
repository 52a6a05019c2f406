// Package insert delivers text into the application that currently owns
// keyboard focus. It tries an ordered chain of strategies, selected per
// target application, and reports what happened.
package insert

import (
	"fmt"
	"strings"
)

// Outcome is the result of one strategy attempt.
type Outcome int

const (
	// Fail means the strategy could not deliver the text; the next
	// strategy in the profile should run.
	Fail Outcome = iota

	// Tentative means the strategy ran to completion but has no
	// confirmation channel. Accepted as terminal.
	Tentative

	// Success means the platform's own editing model confirmed the
	// insertion.
	Success
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Tentative:
		return "tentative"
	default:
		return "fail"
	}
}

// Report describes the result of one Insert call. Callers branch on OK
// only; everything else is diagnostic.
type Report struct {
	OK bool `json:"ok"`

	// Strategy is the identifier of the winning strategy, empty on
	// failure.
	Strategy StrategyID `json:"strategy,omitempty"`

	// SecureInput records whether a secure-input session appeared to be
	// active during the attempt. Informational only.
	SecureInput bool `json:"secure_input"`

	// BundleID is the resolved target bundle identifier.
	BundleID string `json:"bundle_id,omitempty"`

	// Profile is the name of the resolved strategy profile.
	Profile string `json:"profile,omitempty"`

	// Attempts is the ordered human-readable attempt trail.
	Attempts []string `json:"attempts,omitempty"`
}

func (r *Report) attempt(pass int, id StrategyID, out Outcome, detail string) {
	entry := fmt.Sprintf("pass %d: %s: %s", pass+1, id, out)
	if detail != "" {
		entry += ": " + detail
	}
	r.Attempts = append(r.Attempts, entry)
}

// Trail returns the attempt entries joined for display.
func (r *Report) Trail() string {
	return strings.Join(r.Attempts, "; ")
}
