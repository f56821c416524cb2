package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinuxCodeRoundTrip(t *testing.T) {
	for _, k := range []Key{Esc, Enter, Left, Right, "1", "3", "c", "l", "q", "`"} {
		code, ok := LinuxCode(k)
		if !assert.True(t, ok, "no code for %q", k) {
			continue
		}
		got, ok := FromLinuxCode(code)
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
}

func TestLinuxModifiersCollapse(t *testing.T) {
	left, _ := FromLinuxCode(29)
	right, _ := FromLinuxCode(97)
	assert.Equal(t, Ctrl, left)
	assert.Equal(t, Ctrl, right)

	code, ok := LinuxCode(Ctrl)
	assert.True(t, ok)
	assert.Equal(t, uint16(29), code)
}

func TestFromLinuxCodeUnknown(t *testing.T) {
	_, ok := FromLinuxCode(0)
	assert.False(t, ok)
	_, ok = LinuxCode("é")
	assert.False(t, ok)
}

func TestLinuxCodesUnique(t *testing.T) {
	seen := map[uint16]bool{}
	for _, c := range LinuxCodes() {
		assert.False(t, seen[c], "duplicate code %d", c)
		seen[c] = true
	}
}
