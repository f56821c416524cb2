package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName      = "org.freedesktop.Notifications"
	objectPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = busName + ".Notify"

	appName = "skritter"
	// expireMs is how long the notification stays up.
	expireMs = int32(3000)
)

// DBus sends freedesktop notifications over the session bus.
type DBus struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

var _ Sender = (*DBus)(nil)

// NewDBus connects to the session bus.
func NewDBus() (*DBus, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &DBus{conn: conn, obj: conn.Object(busName, objectPath)}, nil
}

func (d *DBus) Send(ctx context.Context, summary, body string, replaces uint32) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(1)),
	}
	call := d.obj.CallWithContext(ctx, notifyMethod, 0,
		appName, replaces, "", summary, body, []string{}, hints, expireMs)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify reply: %w", err)
	}
	return id, nil
}

// Close is a no-op: the shared session bus connection stays open for the
// life of the process.
func (d *DBus) Close() error { return nil }
