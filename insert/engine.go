package insert

import (
	"log/slog"
	"time"
)

const passBackoff = 35 * time.Millisecond

// Engine selects a per-target strategy profile and executes it across
// bounded retry passes. All calls must happen on the context that owns
// the platform's focus/clipboard/event APIs.
type Engine struct {
	focus FocusProvider
	input SyntheticInput
	clip  Clipboard

	frontmost   func() (pid int, bundleID string)
	secureInput func() bool
	overrides   map[string]string
	typeDelay   time.Duration

	sleep func(time.Duration)
}

// Options configures an Engine.
type Options struct {
	// Frontmost resolves the currently frontmost application, used when
	// the caller supplies no target bundle identifier.
	Frontmost func() (pid int, bundleID string)

	// SecureInput reports whether a secure-input session is active.
	// Diagnostic only.
	SecureInput func() bool

	// ProfileOverrides maps bundle-identifier prefixes to profile names,
	// consulted before the built-in rules.
	ProfileOverrides map[string]string

	// TypeDelay overrides the per-character delay of synthetic typing
	// strategies. Zero keeps each profile's default.
	TypeDelay time.Duration
}

// New creates an insertion engine over the given platform adapters.
func New(focus FocusProvider, input SyntheticInput, clip Clipboard, opts Options) *Engine {
	return &Engine{
		focus:       focus,
		input:       input,
		clip:        clip,
		frontmost:   opts.Frontmost,
		secureInput: opts.SecureInput,
		overrides:   opts.ProfileOverrides,
		typeDelay:   opts.TypeDelay,
		sleep:       time.Sleep,
	}
}

// Insert delivers text into the focused element of the target
// application. It never returns an error: the outcome, winning strategy
// and full attempt trail are in the report. Empty text fails
// immediately.
func (e *Engine) Insert(text string, targetPID int, targetBundleID string) *Report {
	report := &Report{}

	if text == "" {
		report.Attempts = append(report.Attempts, "empty text, nothing to insert")
		return report
	}

	if targetBundleID == "" && e.frontmost != nil {
		targetPID, targetBundleID = e.frontmost()
	}
	report.BundleID = targetBundleID
	_ = targetPID // identity travels in the report via bundle id

	if e.secureInput != nil && e.secureInput() {
		report.SecureInput = true
		// Some apps accept injection even under secure input for
		// non-password fields, so this never gates strategy choice.
		slog.Warn("secure input appears active", "bundle_id", targetBundleID)
	}

	profile := ResolveProfile(targetBundleID, e.overrides)
	report.Profile = profile.Name

	delay := profile.TypeDelay
	if e.typeDelay > 0 {
		delay = e.typeDelay
	}

	for pass := 0; pass < profile.Passes; pass++ {
		for _, id := range profile.Strategies {
			outcome, detail := e.run(id, text, delay)
			report.attempt(pass, id, outcome, detail)

			if outcome != Fail {
				report.OK = true
				report.Strategy = id
				slog.Debug("insertion succeeded",
					"strategy", id, "outcome", outcome, "pass", pass+1)
				return report
			}
		}
		if pass < profile.Passes-1 {
			e.sleep(passBackoff)
		}
	}

	slog.Warn("all insertion strategies exhausted",
		"bundle_id", targetBundleID, "profile", profile.Name, "trail", report.Trail())
	return report
}

func (e *Engine) run(id StrategyID, text string, delay time.Duration) (Outcome, string) {
	switch id {
	case AXSelectedText:
		return e.axSelectedText(text)
	case AXValueReplace:
		return e.axValueReplace(text)
	case UnicodeTyping:
		return e.unicodeTyping(text, delay)
	case KeycodeTyping:
		return e.keycodeTyping(text, delay)
	case SyntheticTyping:
		return e.syntheticTyping(text, delay)
	case ClipboardPaste:
		return e.clipboardPaste(text)
	}
	return Fail, "unknown strategy"
}
