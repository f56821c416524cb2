package inject

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dycw/skritter/internal/keys"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	ctx := context.Background()

	require.NoError(t, r.Tap(ctx, "3"))
	require.NoError(t, r.Tap(ctx, keys.Enter))
	assert.Equal(t, []keys.Key{"3", keys.Enter}, r.Taps())

	r.Reset()
	assert.Empty(t, r.Taps())
}

func TestRecorder_Err(t *testing.T) {
	boom := errors.New("boom")
	r := &Recorder{Err: boom}

	err := r.Tap(context.Background(), "1")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []keys.Key{"1"}, r.Taps(), "failed taps are still recorded")
}

func TestDryRunLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	inj, err := New(KindDryRun, nil, log)
	require.NoError(t, err)
	require.NoError(t, inj.Tap(context.Background(), keys.Left))
	require.NoError(t, inj.Close())

	assert.Contains(t, buf.String(), "tap (dry run)")
	assert.Contains(t, buf.String(), "key=left")
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind("telepathy"), nil, nil)
	assert.Error(t, err)
}

func TestKeysym(t *testing.T) {
	tests := []struct {
		key     keys.Key
		want    string
		wantErr bool
	}{
		{keys.Enter, "Return", false},
		{keys.Left, "Left", false},
		{keys.Right, "Right", false},
		{keys.Esc, "Escape", false},
		{"3", "3", false},
		{"q", "q", false},
		{"`", "grave", false},
		{"é", "", true},
		{"?", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, err := Keysym(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestXdotoolTap(t *testing.T) {
	var got [][]string
	x := &Xdotool{
		path: "/usr/bin/xdotool",
		run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			got = append(got, append([]string{name}, args...))
			return nil, nil
		},
	}

	require.NoError(t, x.Tap(context.Background(), keys.Enter))
	require.NoError(t, x.Tap(context.Background(), "1"))
	assert.Equal(t, [][]string{
		{"/usr/bin/xdotool", "key", "--clearmodifiers", "Return"},
		{"/usr/bin/xdotool", "key", "--clearmodifiers", "1"},
	}, got)
}

func TestXdotoolTap_Failure(t *testing.T) {
	x := &Xdotool{
		path: "xdotool",
		run: func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return []byte("Can't open display\n"), errors.New("exit status 1")
		},
	}

	err := x.Tap(context.Background(), keys.Right)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdotool key Right")
	assert.Contains(t, err.Error(), "Can't open display")
}

func TestXdotoolTap_UnsupportedKey(t *testing.T) {
	called := false
	x := &Xdotool{run: func(context.Context, string, ...string) ([]byte, error) {
		called = true
		return nil, nil
	}}
	err := x.Tap(context.Background(), "é")
	assert.ErrorIs(t, err, ErrUnsupportedKey)
	assert.False(t, called)
}
