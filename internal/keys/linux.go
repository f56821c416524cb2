package keys

// Linux input-event-codes.h key codes. Left and right modifiers collapse to
// one Key; FromLinuxCode maps both, LinuxCode returns the left one.
var linuxCodes = map[uint16]Key{
	1:  Esc,
	2:  "1",
	3:  "2",
	4:  "3",
	5:  "4",
	6:  "5",
	7:  "6",
	8:  "7",
	9:  "8",
	10: "9",
	11: "0",
	12: "-",
	13: "=",
	14: Backspace,
	15: Tab,
	16: "q",
	17: "w",
	18: "e",
	19: "r",
	20: "t",
	21: "y",
	22: "u",
	23: "i",
	24: "o",
	25: "p",
	26: "[",
	27: "]",
	28: Enter,
	29: Ctrl,
	30: "a",
	31: "s",
	32: "d",
	33: "f",
	34: "g",
	35: "h",
	36: "j",
	37: "k",
	38: "l",
	39: ";",
	40: "'",
	41: "`",
	42: Shift,
	43: "\\",
	44: "z",
	45: "x",
	46: "c",
	47: "v",
	48: "b",
	49: "n",
	50: "m",
	51: ",",
	52: ".",
	53: "/",
	54: Shift,
	56: Alt,
	57: Space,
	58: CapsLock,
	59: F1,
	60: F2,
	61: F3,
	62: F4,
	63: F5,
	64: F6,
	65: F7,
	66: F8,
	67: F9,
	68: F10,
	87: F11,
	88: F12,
	96: Enter, // keypad enter
	97: Ctrl,
	100: Alt,
	102: Home,
	103: Up,
	104: PageUp,
	105: Left,
	106: Right,
	107: End,
	108: Down,
	109: PageDown,
	110: Insert,
	111: Delete,
	125: Super,
	126: Super,
}

var linuxKeys = func() map[Key]uint16 {
	m := make(map[Key]uint16, len(linuxCodes))
	for code, k := range linuxCodes {
		if prev, ok := m[k]; !ok || code < prev {
			m[k] = code
		}
	}
	return m
}()

// FromLinuxCode returns the Key for a Linux EV_KEY code.
func FromLinuxCode(code uint16) (Key, bool) {
	k, ok := linuxCodes[code]
	return k, ok
}

// LinuxCode returns the Linux EV_KEY code that produces k.
func LinuxCode(k Key) (uint16, bool) {
	code, ok := linuxKeys[k]
	return code, ok
}

// LinuxCodes returns every code LinuxCode can produce.
func LinuxCodes() []uint16 {
	out := make([]uint16, 0, len(linuxKeys))
	for _, code := range linuxKeys {
		out = append(out, code)
	}
	return out
}
