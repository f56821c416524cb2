package events

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dycw/skritter/internal/keys"
)

const procSample = `I: Bus=0019 Vendor=0000 Product=0001 Version=0000
N: Name="Power Button"
P: Phys=LNXPWRBN/button/input0
S: Sysfs=/devices/LNXSYSTM:00/LNXPWRBN:00/input/input0
U: Uniq=
H: Handlers=kbd event0
B: PROP=0
B: EV=3
B: KEY=10000000000000 0

I: Bus=0011 Vendor=0001 Product=0001 Version=ab41
N: Name="AT Translated Set 2 keyboard"
P: Phys=isa0060/serio0/input0
S: Sysfs=/devices/platform/i8042/serio0/input/input3
U: Uniq=
H: Handlers=sysrq kbd leds event3
B: PROP=0
B: EV=120013
B: KEY=402000000 3803078f800d001 feffffdfffefffff fffffffffffffffe
B: MSC=10
B: LED=7

I: Bus=0003 Vendor=046d Product=c52b Version=0111
N: Name="Logitech USB Receiver Mouse"
H: Handlers=mouse0 event5
B: PROP=0
B: EV=17
B: KEY=ffff0000 0 0 0 0
B: REL=1943

I: Bus=0003 Vendor=1234 Product=5678 Version=0001
N: Name="skritter virtual keyboard"
H: Handlers=sysrq kbd event9
B: PROP=0
B: EV=3
B: KEY=fffffffffffffffe
`

func TestParseDevices(t *testing.T) {
	devices, err := ParseDevices(strings.NewReader(procSample))
	require.NoError(t, err)
	require.Len(t, devices, 4)

	assert.Equal(t, Device{Name: "Power Button", Path: "/dev/input/event0", Keyboard: false}, devices[0])
	assert.Equal(t, Device{Name: "AT Translated Set 2 keyboard", Path: "/dev/input/event3", Keyboard: true}, devices[1])
	assert.False(t, devices[2].Keyboard, "mice are not keyboards")
	assert.True(t, devices[3].Keyboard)
}

func TestParseDevices_SkipsEntriesWithoutEventHandler(t *testing.T) {
	in := "N: Name=\"js\"\nH: Handlers=js0\nB: EV=3\nB: KEY=fffffffffffffffe\n"
	devices, err := ParseDevices(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestExcluded(t *testing.T) {
	names := []string{"Skritter Virtual Keyboard", ""}
	assert.True(t, excluded("skritter virtual keyboard", names))
	assert.False(t, excluded("AT Translated Set 2 keyboard", names))
	assert.False(t, excluded("", names))
}

func encodeInputEvent(tvSize int, typ, code uint16, value int32) []byte {
	buf := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(buf[tvSize:], typ)
	binary.LittleEndian.PutUint16(buf[tvSize+2:], code)
	binary.LittleEndian.PutUint32(buf[tvSize+4:], uint32(value))
	return buf
}

func TestDecodeKeyEvent(t *testing.T) {
	tests := []struct {
		name     string
		tvSize   int
		typ      uint16
		code     uint16
		value    int32
		wantKey  keys.Key
		wantKind Kind
		wantOK   bool
	}{
		{"esc press 64-bit", 16, evKey, 1, 1, keys.Esc, Press, true},
		{"q release 64-bit", 16, evKey, 16, 0, "q", Release, true},
		{"c repeat 32-bit", 8, evKey, 46, 2, "c", Repeat, true},
		{"sync event", 16, 0, 0, 0, "", 0, false},
		{"unknown code", 16, evKey, 0x2ff, 1, "", 0, false},
		{"bad value", 16, evKey, 16, 7, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := encodeInputEvent(tt.tvSize, tt.typ, tt.code, tt.value)
			k, kind, ok := decodeKeyEvent(buf, tt.tvSize)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKey, k)
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}

func TestDecodeKeyEvent_ShortBuffer(t *testing.T) {
	_, _, ok := decodeKeyEvent(make([]byte, 10), 16)
	assert.False(t, ok)
}
