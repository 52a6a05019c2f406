//go:build !darwin

package hotkey

import "runtime"

// Raw codes as reported by the hook: X11 keysyms on Linux, virtual-key
// codes on Windows. Left and right variants both match.
var modifierRawcodes = map[string][]uint16{}

var functionRawcodes = map[string][]uint16{}

func init() {
	if runtime.GOOS == "windows" {
		modifierRawcodes = map[string][]uint16{
			"ctrl":  {0xA2, 0xA3},
			"shift": {0xA0, 0xA1},
			"alt":   {0xA4, 0xA5},
			"cmd":   {0x5B, 0x5C}, // Windows keys
		}
		functionRawcodes = map[string][]uint16{
			"f1": {0x70}, "f2": {0x71}, "f3": {0x72}, "f4": {0x73},
			"f5": {0x74}, "f6": {0x75}, "f7": {0x76}, "f8": {0x77},
			"f9": {0x78}, "f10": {0x79}, "f11": {0x7A}, "f12": {0x7B},
		}
		return
	}

	// X11 keysyms.
	modifierRawcodes = map[string][]uint16{
		"ctrl":  {0xFFE3, 0xFFE4},
		"shift": {0xFFE1, 0xFFE2},
		"alt":   {0xFFE9, 0xFFEA},
		"cmd":   {0xFFEB, 0xFFEC}, // Super keys
	}
	functionRawcodes = map[string][]uint16{
		"f1": {0xFFBE}, "f2": {0xFFBF}, "f3": {0xFFC0}, "f4": {0xFFC1},
		"f5": {0xFFC2}, "f6": {0xFFC3}, "f7": {0xFFC4}, "f8": {0xFFC5},
		"f9": {0xFFC6}, "f10": {0xFFC7}, "f11": {0xFFC8}, "f12": {0xFFC9},
	}
}
