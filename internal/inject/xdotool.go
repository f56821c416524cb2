package inject

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dycw/skritter/internal/keys"
)

// X11 keysym names for named keys.
var keysyms = map[keys.Key]string{
	keys.Esc:       "Escape",
	keys.Enter:     "Return",
	keys.Tab:       "Tab",
	keys.Space:     "space",
	keys.Backspace: "BackSpace",
	keys.Delete:    "Delete",
	keys.Insert:    "Insert",
	keys.Home:      "Home",
	keys.End:       "End",
	keys.PageUp:    "Prior",
	keys.PageDown:  "Next",
	keys.Left:      "Left",
	keys.Right:     "Right",
	keys.Up:        "Up",
	keys.Down:      "Down",
	keys.Ctrl:      "Control_L",
	keys.Shift:     "Shift_L",
	keys.Alt:       "Alt_L",
	keys.Super:     "Super_L",
	keys.CapsLock:  "Caps_Lock",
	keys.F1:        "F1",
	keys.F2:        "F2",
	keys.F3:        "F3",
	keys.F4:        "F4",
	keys.F5:        "F5",
	keys.F6:        "F6",
	keys.F7:        "F7",
	keys.F8:        "F8",
	keys.F9:        "F9",
	keys.F10:       "F10",
	keys.F11:       "F11",
	keys.F12:       "F12",
}

// Keysyms for punctuation, which xdotool does not accept literally.
var charKeysyms = map[keys.Key]string{
	"`":  "grave",
	"-":  "minus",
	"=":  "equal",
	"[":  "bracketleft",
	"]":  "bracketright",
	"\\": "backslash",
	";":  "semicolon",
	"'":  "apostrophe",
	",":  "comma",
	".":  "period",
	"/":  "slash",
}

// Xdotool taps keys by running `xdotool key`.
type Xdotool struct {
	path string
	run  func(ctx context.Context, name string, args ...string) ([]byte, error)
}

var _ Injector = (*Xdotool)(nil)

// NewXdotool locates xdotool on PATH.
func NewXdotool() (*Xdotool, error) {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("xdotool: %w", err)
	}
	return &Xdotool{path: path, run: runCombined}, nil
}

func runCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (x *Xdotool) Tap(ctx context.Context, k keys.Key) error {
	sym, err := Keysym(k)
	if err != nil {
		return err
	}
	out, err := x.run(ctx, x.path, "key", "--clearmodifiers", sym)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("xdotool key %s: %w: %s", sym, err, msg)
		}
		return fmt.Errorf("xdotool key %s: %w", sym, err)
	}
	return nil
}

func (x *Xdotool) Close() error { return nil }

// Keysym returns the X11 keysym name xdotool expects for k.
func Keysym(k keys.Key) (string, error) {
	if sym, ok := keysyms[k]; ok {
		return sym, nil
	}
	if sym, ok := charKeysyms[k]; ok {
		return sym, nil
	}
	if k.IsChar() {
		c := string(k)[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return string(k), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKey, k)
}
