package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarCompletes(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, 40, 13)

	bar.Report("Test", 1, 2)
	assert.NotContains(t, buf.String(), "\n")

	bar.Report("Test", 2, 2)
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\r"))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "Test")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "█")

	bar.Finish()
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestBarNewLineOnNewWait(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, 40, 13)

	bar.Report("Test", 1, 4)
	bar.Report("Review", 1, 4)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	// Same label but the count restarted.
	bar.Report("Review", 1, 4)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	bar.Finish()
	bar.Finish()
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestBarIgnoresEmptyWait(t *testing.T) {
	var buf bytes.Buffer
	NewBar(&buf, 40, 13).Report("Init", 0, 0)
	assert.Empty(t, buf.String())
}

func TestMulti(t *testing.T) {
	assert.Equal(t, Nop, Multi())
	assert.Equal(t, Nop, Multi(nil, nil))

	var got []string
	rec := ReporterFunc(func(label string, done, total int) {
		got = append(got, label)
	})
	Multi(rec, nil, rec).Report("Test", 1, 1)
	assert.Equal(t, []string{"Test", "Test"}, got)
}
