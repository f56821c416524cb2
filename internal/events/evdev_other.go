//go:build !linux

package events

// Evdev is only implemented on Linux.
type Evdev struct {
	*Chan
}

// OpenEvdev reports ErrNotAvailable outside Linux.
func OpenEvdev(cfg EvdevConfig) (*Evdev, error) {
	return nil, ErrNotAvailable
}

// FindKeyboards reports ErrNotAvailable outside Linux.
func FindKeyboards(excludeNames []string) ([]string, error) {
	return nil, ErrNotAvailable
}
