//go:build darwin

package hotkey

// Raw virtual keycodes as reported by the hook on macOS. Left and right
// variants both match.
var modifierRawcodes = map[string][]uint16{
	"ctrl":  {0x3B, 0x3E},
	"shift": {0x38, 0x3C},
	"alt":   {0x3A, 0x3D},
	"cmd":   {0x37, 0x36},
	"fn":    {0x3F},
}

var functionRawcodes = map[string][]uint16{
	"f1": {0x7A}, "f2": {0x78}, "f3": {0x63}, "f4": {0x76},
	"f5": {0x60}, "f6": {0x61}, "f7": {0x62}, "f8": {0x64},
	"f9": {0x65}, "f10": {0x6D}, "f11": {0x67}, "f12": {0x6F},
}
