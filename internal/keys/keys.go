package keys

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Key identifies a keyboard key. Printable keys are their single character
// ("q", "3", "`"); everything else uses a lowercase name ("esc", "left").
type Key string

// Named keys.
const (
	Esc       Key = "esc"
	Enter     Key = "enter"
	Tab       Key = "tab"
	Space     Key = "space"
	Backspace Key = "backspace"
	Delete    Key = "delete"
	Insert    Key = "insert"
	Home      Key = "home"
	End       Key = "end"
	PageUp    Key = "pageup"
	PageDown  Key = "pagedown"
	Left      Key = "left"
	Right     Key = "right"
	Up        Key = "up"
	Down      Key = "down"
	Ctrl      Key = "ctrl"
	Shift     Key = "shift"
	Alt       Key = "alt"
	Super     Key = "super"
	CapsLock  Key = "capslock"
	F1        Key = "f1"
	F2        Key = "f2"
	F3        Key = "f3"
	F4        Key = "f4"
	F5        Key = "f5"
	F6        Key = "f6"
	F7        Key = "f7"
	F8        Key = "f8"
	F9        Key = "f9"
	F10       Key = "f10"
	F11       Key = "f11"
	F12       Key = "f12"
)

var named = map[Key]bool{
	Esc: true, Enter: true, Tab: true, Space: true, Backspace: true,
	Delete: true, Insert: true, Home: true, End: true, PageUp: true,
	PageDown: true, Left: true, Right: true, Up: true, Down: true,
	Ctrl: true, Shift: true, Alt: true, Super: true, CapsLock: true,
	F1: true, F2: true, F3: true, F4: true, F5: true, F6: true,
	F7: true, F8: true, F9: true, F10: true, F11: true, F12: true,
}

var aliases = map[string]Key{
	"escape":    Esc,
	"return":    Enter,
	"ret":       Enter,
	"bs":        Backspace,
	"del":       Delete,
	"ins":       Insert,
	"pgup":      PageUp,
	"pgdn":      PageDown,
	"control":   Ctrl,
	"lctrl":     Ctrl,
	"rctrl":     Ctrl,
	"lshift":    Shift,
	"rshift":    Shift,
	"option":    Alt,
	"meta":      Super,
	"cmd":       Super,
	"win":       Super,
	"grave":     "`",
	"backtick":  "`",
	"minus":     "-",
	"equal":     "=",
	"comma":     ",",
	"period":    ".",
	"dot":       ".",
	"slash":     "/",
	"backslash": "\\",
	"semicolon": ";",
	"quote":     "'",
	"lbracket":  "[",
	"rbracket":  "]",
}

// Parse normalizes a user-supplied key name. Single characters are taken
// literally (letters are lowercased); names are case-insensitive and may use
// common aliases such as "escape" or "return".
func Parse(s string) (Key, error) {
	if s == "" {
		return "", fmt.Errorf("empty key name")
	}
	if utf8.RuneCountInString(s) == 1 {
		if s == " " {
			return Space, nil
		}
		return Key(strings.ToLower(s)), nil
	}

	name := strings.ToLower(strings.TrimSpace(s))
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	if named[Key(name)] {
		return Key(name), nil
	}
	return "", fmt.Errorf("unknown key %q", s)
}

// MustParse is like Parse but panics on error. Intended for defaults.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// IsChar reports whether k is a single printable character.
func (k Key) IsChar() bool {
	return utf8.RuneCountInString(string(k)) == 1
}

// IsNamed reports whether k is one of the named keys.
func (k Key) IsNamed() bool {
	return named[k]
}

func (k Key) String() string {
	return string(k)
}

// Names returns every named key, sorted.
func Names() []Key {
	out := make([]Key, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
