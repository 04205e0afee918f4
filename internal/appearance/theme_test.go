package appearance

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range []string{"light", "dark", "system"} {
		got, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, Theme(s), got)
	}
	_, err := Parse("sepia")
	assert.Error(t, err)
	assert.Equal(t, System, Theme("").OrDefault())
	assert.Equal(t, Dark, Dark.OrDefault())
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		theme  Theme
		osDark bool
		want   bool
	}{
		{Light, true, false},
		{Light, false, false},
		{Dark, false, true},
		{Dark, true, true},
		{System, true, true},
		{System, false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDark(tt.theme, tt.osDark), "%s/%v", tt.theme, tt.osDark)
	}
}

func TestNext(t *testing.T) {
	assert.Equal(t, Dark, Light.Next())
	assert.Equal(t, System, Dark.Next())
	assert.Equal(t, Light, System.Next())
}

func TestParseSettingChanged(t *testing.T) {
	name := portalSettings + "." + settingChanged
	tests := []struct {
		name     string
		sig      *dbus.Signal
		wantDark bool
		wantOK   bool
	}{
		{
			name:     "prefer dark",
			sig:      &dbus.Signal{Name: name, Body: []interface{}{appearanceNS, colorSchemeKey, dbus.MakeVariant(uint32(1))}},
			wantDark: true, wantOK: true,
		},
		{
			name:   "prefer light",
			sig:    &dbus.Signal{Name: name, Body: []interface{}{appearanceNS, colorSchemeKey, dbus.MakeVariant(uint32(2))}},
			wantOK: true,
		},
		{
			name:     "nested variant",
			sig:      &dbus.Signal{Name: name, Body: []interface{}{appearanceNS, colorSchemeKey, dbus.MakeVariant(dbus.MakeVariant(uint32(1)))}},
			wantDark: true, wantOK: true,
		},
		{
			name: "other key",
			sig:  &dbus.Signal{Name: name, Body: []interface{}{appearanceNS, "accent-color", dbus.MakeVariant(uint32(1))}},
		},
		{
			name: "other signal",
			sig:  &dbus.Signal{Name: "org.freedesktop.DBus.NameAcquired", Body: []interface{}{"x"}},
		},
		{
			name: "short body",
			sig:  &dbus.Signal{Name: name, Body: []interface{}{appearanceNS}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dark, ok := parseSettingChanged(tt.sig)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDark, dark)
		})
	}
}
