package insert

import (
	"strings"
	"time"
)

// StrategyID identifies one insertion strategy.
type StrategyID string

const (
	AXSelectedText  StrategyID = "ax-selected-text"
	AXValueReplace  StrategyID = "ax-value-replace"
	UnicodeTyping   StrategyID = "unicode-typing"
	KeycodeTyping   StrategyID = "keycode-typing"
	SyntheticTyping StrategyID = "synthetic-typing"
	ClipboardPaste  StrategyID = "clipboard-paste"
)

// Profile is an ordered strategy chain plus retry and pacing parameters
// for one class of target application.
type Profile struct {
	Name       string
	Strategies []StrategyID
	Passes     int
	TypeDelay  time.Duration
}

const (
	defaultPasses    = 2
	defaultTypeDelay = 2 * time.Millisecond
)

// Accessibility writes confirm through the platform's own editing model,
// so they lead by default. The clipboard strategy perturbs shared system
// state and is always last.
func accessibilityProfile() Profile {
	return Profile{
		Name: "accessibility",
		Strategies: []StrategyID{
			AXSelectedText,
			AXValueReplace,
			UnicodeTyping,
			KeycodeTyping,
			SyntheticTyping,
			ClipboardPaste,
		},
		Passes:    defaultPasses,
		TypeDelay: defaultTypeDelay,
	}
}

// Electron-based editors and chat clients expose stale or read-only AX
// trees; synthetic typing lands first there.
func typingProfile() Profile {
	return Profile{
		Name: "typing",
		Strategies: []StrategyID{
			UnicodeTyping,
			KeycodeTyping,
			SyntheticTyping,
			AXSelectedText,
			AXValueReplace,
			ClipboardPaste,
		},
		Passes:    defaultPasses,
		TypeDelay: defaultTypeDelay,
	}
}

// Browsers report web content through AX unevenly: the selected-text
// attribute tends to work where the full value attribute does not.
func browserProfile() Profile {
	return Profile{
		Name: "browser",
		Strategies: []StrategyID{
			AXSelectedText,
			UnicodeTyping,
			KeycodeTyping,
			SyntheticTyping,
			AXValueReplace,
			ClipboardPaste,
		},
		Passes:    defaultPasses,
		TypeDelay: defaultTypeDelay,
	}
}

// prefixRule maps a bundle-identifier prefix to a profile name. Rules are
// ordered; the first match wins.
type prefixRule struct {
	prefix  string
	profile string
}

var builtinRules = []prefixRule{
	{"com.cursor", "typing"},
	{"com.todesktop", "typing"}, // ToDesktop-packaged Electron apps
	{"com.microsoft.VSCode", "typing"},
	{"com.tinyspeck.slackmacgap", "typing"},
	{"com.hnc.Discord", "typing"},
	{"notion.id", "typing"},
	{"org.whispersystems", "typing"},
	{"com.google.Chrome", "browser"},
	{"com.apple.Safari", "browser"},
	{"org.mozilla", "browser"},
	{"com.brave.Browser", "browser"},
	{"com.microsoft.edgemac", "browser"},
}

func profileByName(name string) (Profile, bool) {
	switch name {
	case "accessibility":
		return accessibilityProfile(), true
	case "typing":
		return typingProfile(), true
	case "browser":
		return browserProfile(), true
	}
	return Profile{}, false
}

// ResolveProfile returns the strategy profile for a bundle identifier.
// Overrides (prefix -> profile name) are consulted before the built-in
// rules; unknown applications get the accessibility-first default. The
// result is deterministic for a given bundle identifier.
func ResolveProfile(bundleID string, overrides map[string]string) Profile {
	// Overrides are checked longest-prefix-first so a more specific
	// user rule beats a broader one.
	if len(overrides) > 0 {
		best := ""
		for prefix := range overrides {
			if strings.HasPrefix(bundleID, prefix) && len(prefix) > len(best) {
				best = prefix
			}
		}
		if best != "" {
			if p, ok := profileByName(overrides[best]); ok {
				return p
			}
		}
	}

	for _, rule := range builtinRules {
		if strings.HasPrefix(bundleID, rule.prefix) {
			p, _ := profileByName(rule.profile)
			return p
		}
	}

	return accessibilityProfile()
}
