//go:build !linux

package inject

import "github.com/dycw/skritter/internal/keys"

// Uinput is only implemented on Linux.
type Uinput struct {
	Injector
}

// NewUinput reports ErrNotAvailable outside Linux.
func NewUinput(needed []keys.Key) (*Uinput, error) {
	return nil, ErrNotAvailable
}
