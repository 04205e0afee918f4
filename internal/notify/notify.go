// Package notify delivers the session-complete cue: a terminal bell and,
// when available, a desktop notification over D-Bus.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/godbus/dbus/v5"

	"github.com/abhisek/focusflow/internal/session"
)

// Notifier delivers a completion message.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Completion returns the title and body announcing that a session of type
// t has finished.
func Completion(t session.Type) (title, body string) {
	if t == session.Rest {
		return "Break is over", "Ready for the next study session?"
	}
	return "Study session complete", "Add a few notes, then take a break."
}

// Desktop sends org.freedesktop.Notifications messages on the session bus.
type Desktop struct {
	conn *dbus.Conn
}

// ConnectDesktop connects to the user's session bus.
func ConnectDesktop() (*Desktop, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Desktop{conn: conn}, nil
}

func (d *Desktop) Notify(ctx context.Context, title, body string) error {
	obj := d.conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.CallWithContext(ctx, "org.freedesktop.Notifications.Notify", 0,
		"FocusFlow",      // app_name
		uint32(0),        // replaces_id
		"alarm-symbolic", // app_icon
		title,            // summary
		body,             // body
		[]string{},       // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)),
		},
		int32(10000), // expire_timeout
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (d *Desktop) Close() error {
	return d.conn.Close()
}

// Bell rings the terminal bell.
type Bell struct {
	w io.Writer
}

// NewBell writes BEL characters to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Notify(context.Context, string, string) error {
	_, err := io.WriteString(b.w, "\a")
	return err
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
