package insert

// keystroke is a literal key event: an ANSI virtual keycode plus the
// modifiers needed to produce the character.
type keystroke struct {
	code  uint16
	shift bool
}

// ANSI virtual keycodes used outside the character table.
const (
	vkReturn     uint16 = 0x24
	vkTab        uint16 = 0x30
	vkSpace      uint16 = 0x31
	vkShiftLeft  uint16 = 0x38
	vkShiftRight uint16 = 0x3C
	vkAnsiV      uint16 = 0x09
)

// keymap maps characters to literal keystrokes on the ANSI layout.
// Characters absent here fall back to single-character unicode
// injection.
var keymap = map[rune]keystroke{
	'a': {0x00, false}, 'A': {0x00, true},
	'b': {0x0B, false}, 'B': {0x0B, true},
	'c': {0x08, false}, 'C': {0x08, true},
	'd': {0x02, false}, 'D': {0x02, true},
	'e': {0x0E, false}, 'E': {0x0E, true},
	'f': {0x03, false}, 'F': {0x03, true},
	'g': {0x05, false}, 'G': {0x05, true},
	'h': {0x04, false}, 'H': {0x04, true},
	'i': {0x22, false}, 'I': {0x22, true},
	'j': {0x26, false}, 'J': {0x26, true},
	'k': {0x28, false}, 'K': {0x28, true},
	'l': {0x25, false}, 'L': {0x25, true},
	'm': {0x2E, false}, 'M': {0x2E, true},
	'n': {0x2D, false}, 'N': {0x2D, true},
	'o': {0x1F, false}, 'O': {0x1F, true},
	'p': {0x23, false}, 'P': {0x23, true},
	'q': {0x0C, false}, 'Q': {0x0C, true},
	'r': {0x0F, false}, 'R': {0x0F, true},
	's': {0x01, false}, 'S': {0x01, true},
	't': {0x11, false}, 'T': {0x11, true},
	'u': {0x20, false}, 'U': {0x20, true},
	'v': {0x09, false}, 'V': {0x09, true},
	'w': {0x0D, false}, 'W': {0x0D, true},
	'x': {0x07, false}, 'X': {0x07, true},
	'y': {0x10, false}, 'Y': {0x10, true},
	'z': {0x06, false}, 'Z': {0x06, true},

	'1': {0x12, false}, '!': {0x12, true},
	'2': {0x13, false}, '@': {0x13, true},
	'3': {0x14, false}, '#': {0x14, true},
	'4': {0x15, false}, '$': {0x15, true},
	'5': {0x17, false}, '%': {0x17, true},
	'6': {0x16, false}, '^': {0x16, true},
	'7': {0x1A, false}, '&': {0x1A, true},
	'8': {0x1C, false}, '*': {0x1C, true},
	'9': {0x19, false}, '(': {0x19, true},
	'0': {0x1D, false}, ')': {0x1D, true},

	'-':  {0x1B, false}, '_': {0x1B, true},
	'=':  {0x18, false}, '+': {0x18, true},
	'[':  {0x21, false}, '{': {0x21, true},
	']':  {0x1E, false}, '}': {0x1E, true},
	'\\': {0x2A, false}, '|': {0x2A, true},
	';':  {0x29, false}, ':': {0x29, true},
	'\'': {0x27, false}, '"': {0x27, true},
	',':  {0x2B, false}, '<': {0x2B, true},
	'.':  {0x2F, false}, '>': {0x2F, true},
	'/':  {0x2C, false}, '?': {0x2C, true},
	'`':  {0x32, false}, '~': {0x32, true},

	' ':  {vkSpace, false},
	'\n': {vkReturn, false},
	'\t': {vkTab, false},
}
