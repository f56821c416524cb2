package events

import (
	"bufio"
	"encoding/binary"
	"io"
	"log/slog"
	"strings"

	"github.com/dycw/skritter/internal/keys"
)

// ProcDevices lists the kernel's input devices.
const ProcDevices = "/proc/bus/input/devices"

// Device is one entry of /proc/bus/input/devices.
type Device struct {
	Name     string
	Path     string
	Keyboard bool
}

// EvdevConfig configures the Linux evdev source.
type EvdevConfig struct {
	// Paths pins explicit /dev/input/event* devices. Empty means discover
	// keyboards from /proc/bus/input/devices.
	Paths []string

	// ExcludeNames skips devices whose name matches, such as our own
	// uinput keyboard.
	ExcludeNames []string

	// Watch adds keyboards plugged in after startup.
	Watch bool

	Logger *slog.Logger
}

// Linux input event types and values.
const (
	evKey = 0x01

	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// ParseDevices reads the /proc/bus/input/devices format. A device counts as a
// keyboard when it has an event handler and reports EV_KEY with a key bitmap
// wide enough to cover the letter keys.
func ParseDevices(r io.Reader) ([]Device, error) {
	var (
		devices []Device
		cur     Device
		evBits  string
		keyBits string
	)

	flush := func() {
		if cur.Path != "" {
			cur.Keyboard = isKeyboard(evBits, keyBits)
			devices = append(devices, cur)
		}
		cur = Device{}
		evBits, keyBits = "", ""
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "N: Name="):
			cur.Name = strings.Trim(strings.TrimPrefix(line, "N: Name="), `"`)
		case strings.HasPrefix(line, "H: Handlers="):
			for _, part := range strings.Fields(strings.TrimPrefix(line, "H: Handlers=")) {
				if strings.HasPrefix(part, "event") {
					cur.Path = "/dev/input/" + part
				}
			}
		case strings.HasPrefix(line, "B: EV="):
			evBits = strings.TrimPrefix(line, "B: EV=")
		case strings.HasPrefix(line, "B: KEY="):
			keyBits = strings.TrimPrefix(line, "B: KEY=")
		}
	}
	flush()
	return devices, scanner.Err()
}

// isKeyboard checks EV_KEY in the EV bitmap and that the lowest KEY word
// (codes 0-63, which hold Esc, digits and letters) is mostly populated.
func isKeyboard(evBits, keyBits string) bool {
	if evBits == "" || keyBits == "" {
		return false
	}
	ev := parseHex(evBits)
	if ev&(1<<evKey) == 0 {
		return false
	}
	words := strings.Fields(keyBits)
	low := parseHex(words[len(words)-1])
	// Esc, 1..0 and q..p set.
	const want = 0x3fffffe
	return low&want == want
}

func parseHex(s string) uint64 {
	var v uint64
	for _, c := range s {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return v
		}
		v = v<<4 | d
	}
	return v
}

// decodeKeyEvent decodes a struct input_event whose timeval occupies tvSize
// bytes. ok is false for non-key events and unknown key codes.
func decodeKeyEvent(buf []byte, tvSize int) (keys.Key, Kind, bool) {
	if len(buf) < tvSize+8 {
		return "", 0, false
	}
	typ := binary.LittleEndian.Uint16(buf[tvSize : tvSize+2])
	code := binary.LittleEndian.Uint16(buf[tvSize+2 : tvSize+4])
	value := int32(binary.LittleEndian.Uint32(buf[tvSize+4 : tvSize+8]))
	if typ != evKey {
		return "", 0, false
	}

	k, ok := keys.FromLinuxCode(code)
	if !ok {
		return "", 0, false
	}

	switch value {
	case keyRelease:
		return k, Release, true
	case keyPress:
		return k, Press, true
	case keyRepeat:
		return k, Repeat, true
	default:
		return "", 0, false
	}
}

func excluded(name string, names []string) bool {
	for _, n := range names {
		if n != "" && strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
