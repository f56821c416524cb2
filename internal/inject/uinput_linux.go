//go:build linux

package inject

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dycw/skritter/internal/keys"
)

// uinput ioctls from linux/uinput.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565

	evSyn     = 0x00
	evKey     = 0x01
	synReport = 0
	busUSB    = 0x03

	uinputPath = "/dev/uinput"

	// Time for the display server to notice the new device.
	settleDelay = 200 * time.Millisecond
)

var timevalSize = int(unsafe.Sizeof(unix.Timeval{}))

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputUserDev mirrors struct uinput_user_dev.
type uinputUserDev struct {
	Name         [80]byte
	ID           inputID
	FFEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

// Uinput taps keys through a virtual keyboard created with /dev/uinput.
type Uinput struct {
	mu     sync.Mutex
	f      *os.File
	codes  map[keys.Key]uint16
	closed bool
}

var _ Injector = (*Uinput)(nil)

// NewUinput creates the virtual keyboard with every key in needed enabled.
// Keys without a Linux key code are rejected upfront.
func NewUinput(needed []keys.Key) (*Uinput, error) {
	codes := make(map[keys.Key]uint16, len(needed))
	for _, k := range needed {
		code, ok := keys.LinuxCode(k)
		if !ok {
			return nil, fmt.Errorf("uinput: %w: %q", ErrUnsupportedKey, k)
		}
		codes[k] = code
	}

	f, err := os.OpenFile(uinputPath, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}
	fd := int(f.Fd())

	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("uinput set EV_KEY: %w", err)
	}
	for _, code := range codes {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("uinput enable key %d: %w", code, err)
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:], DeviceName)
	dev.ID = inputID{Bustype: busUSB, Vendor: 0x1209, Product: 0x5c71, Version: 1}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("encode uinput device: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write uinput device: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("uinput create device: %w", err)
	}

	time.Sleep(settleDelay)
	return &Uinput{f: f, codes: codes}, nil
}

func (u *Uinput) Tap(ctx context.Context, k keys.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	code, ok := u.codes[k]
	if !ok {
		return fmt.Errorf("uinput: %w: %q was not registered", ErrUnsupportedKey, k)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return fmt.Errorf("uinput: device closed")
	}

	for _, value := range []int32{1, 0} {
		if _, err := u.f.Write(keyReport(code, value)); err != nil {
			return fmt.Errorf("uinput write: %w", err)
		}
	}
	return nil
}

// keyReport encodes a key event followed by SYN_REPORT.
func keyReport(code uint16, value int32) []byte {
	size := timevalSize + 8
	buf := make([]byte, 2*size)
	putEvent(buf[:size], evKey, code, value)
	putEvent(buf[size:], evSyn, synReport, 0)
	return buf
}

func putEvent(buf []byte, typ, code uint16, value int32) {
	binary.LittleEndian.PutUint16(buf[timevalSize:], typ)
	binary.LittleEndian.PutUint16(buf[timevalSize+2:], code)
	binary.LittleEndian.PutUint32(buf[timevalSize+4:], uint32(value))
}

func (u *Uinput) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return nil
	}
	u.closed = true
	_ = unix.IoctlSetInt(int(u.f.Fd()), uiDevDestroy, 0)
	return u.f.Close()
}
