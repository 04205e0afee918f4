package appearance

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	portalDest       = "org.freedesktop.portal.Desktop"
	portalPath       = "/org/freedesktop/portal/desktop"
	portalSettings   = "org.freedesktop.portal.Settings"
	appearanceNS     = "org.freedesktop.appearance"
	colorSchemeKey   = "color-scheme"
	settingChanged   = "SettingChanged"
	schemePreferDark = 1
)

// PortalWatcher reads and follows the desktop color scheme through the
// XDG desktop portal on the session bus.
type PortalWatcher struct {
	conn   *dbus.Conn
	logger *zap.Logger
}

// ConnectPortal opens a private session bus connection.
func ConnectPortal(logger *zap.Logger) (*PortalWatcher, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortalWatcher{conn: conn, logger: logger}, nil
}

// Close releases the bus connection.
func (w *PortalWatcher) Close() error {
	return w.conn.Close()
}

// PrefersDark reports whether the desktop currently prefers a dark scheme.
func (w *PortalWatcher) PrefersDark() (bool, error) {
	obj := w.conn.Object(portalDest, portalPath)

	var v dbus.Variant
	err := obj.Call(portalSettings+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&v)
	if err != nil {
		// Portals older than version 2 only implement the deprecated Read.
		if err2 := obj.Call(portalSettings+".Read", 0, appearanceNS, colorSchemeKey).Store(&v); err2 != nil {
			return false, fmt.Errorf("read color-scheme: %w", err)
		}
	}
	scheme, ok := schemeValue(v)
	if !ok {
		return false, fmt.Errorf("unexpected color-scheme value %s", v.String())
	}
	return scheme == schemePreferDark, nil
}

// Watch calls onChange with the new dark preference every time the desktop
// color scheme changes, until ctx is done.
func (w *PortalWatcher) Watch(ctx context.Context, onChange func(dark bool)) error {
	if err := w.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalSettings),
		dbus.WithMatchMember(settingChanged),
	); err != nil {
		return fmt.Errorf("add match for %s failed: %w", settingChanged, err)
	}

	c := make(chan *dbus.Signal, 10)
	w.conn.Signal(c)
	defer w.conn.RemoveSignal(c)

	for {
		select {
		case sig, ok := <-c:
			if !ok {
				return nil
			}
			dark, ok := parseSettingChanged(sig)
			if !ok {
				continue
			}
			w.logger.Debug("desktop color scheme changed", zap.Bool("dark", dark))
			onChange(dark)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// parseSettingChanged extracts the color scheme from a SettingChanged
// signal. The body is (namespace, key, value).
func parseSettingChanged(sig *dbus.Signal) (dark bool, ok bool) {
	if sig == nil || sig.Name != portalSettings+"."+settingChanged || len(sig.Body) < 3 {
		return false, false
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != appearanceNS || key != colorSchemeKey {
		return false, false
	}
	v, isVariant := sig.Body[2].(dbus.Variant)
	if !isVariant {
		v = dbus.MakeVariant(sig.Body[2])
	}
	scheme, ok := schemeValue(v)
	if !ok {
		return false, false
	}
	return scheme == schemePreferDark, true
}

// schemeValue unwraps the (possibly nested) variant holding the uint32
// color-scheme value.
func schemeValue(v dbus.Variant) (uint32, bool) {
	for {
		switch val := v.Value().(type) {
		case dbus.Variant:
			v = val
		case uint32:
			return val, true
		default:
			return 0, false
		}
	}
}
