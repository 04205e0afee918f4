// Package persist stores each piece of application state as JSON or raw
// text under a fixed key. Storage failures are logged and degrade to the
// default value; they never reach the caller.
package persist

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/appearance"
	"github.com/abhisek/focusflow/internal/preset"
	"github.com/abhisek/focusflow/internal/session"
	"github.com/abhisek/focusflow/internal/store"
)

// Storage keys.
const (
	KeySessions       = "focusflow_sessions"
	KeyAnalyses       = "focusflow_analyses"
	KeyAPIKey         = "focusflow_api_key"
	KeyPresets        = "focusflow_presets"
	KeyActivePresetID = "focusflow_active_preset_id"
	KeyTheme          = "focusflow_theme"
)

// Adapter is the typed view over the key/value table.
type Adapter struct {
	kv     store.KVRepo
	logger *zap.Logger
}

// New creates an Adapter. A nil logger discards storage errors.
func New(kv store.KVRepo, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{kv: kv, logger: logger.Named("persist")}
}

func (a *Adapter) get(ctx context.Context, key string) (string, bool) {
	v, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.logger.Error("load failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return v, true
}

func (a *Adapter) set(ctx context.Context, key, value string) {
	if err := a.kv.Set(ctx, key, value); err != nil {
		a.logger.Error("save failed", zap.String("key", key), zap.Error(err))
	}
}

func (a *Adapter) del(ctx context.Context, key string) {
	if err := a.kv.Delete(ctx, key); err != nil {
		a.logger.Error("delete failed", zap.String("key", key), zap.Error(err))
	}
}

func loadJSON[T any](ctx context.Context, a *Adapter, key string) ([]T, bool) {
	raw, ok := a.get(ctx, key)
	if !ok || raw == "" {
		return nil, false
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		a.logger.Error("decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

func saveJSON[T any](ctx context.Context, a *Adapter, key string, v []T) {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	a.set(ctx, key, string(data))
}

// LoadSessions returns the stored session history, or an empty list.
func (a *Adapter) LoadSessions(ctx context.Context) []session.Session {
	s, _ := loadJSON[session.Session](ctx, a, KeySessions)
	return s
}

func (a *Adapter) SaveSessions(ctx context.Context, sessions []session.Session) {
	saveJSON(ctx, a, KeySessions, sessions)
}

// LoadAnalyses returns the stored analyses, newest first, or an empty list.
func (a *Adapter) LoadAnalyses(ctx context.Context) []analysis.Analysis {
	out, _ := loadJSON[analysis.Analysis](ctx, a, KeyAnalyses)
	return out
}

func (a *Adapter) SaveAnalyses(ctx context.Context, analyses []analysis.Analysis) {
	saveJSON(ctx, a, KeyAnalyses, analyses)
}

// LoadPresets returns the stored presets, falling back to the built-in
// defaults when none are stored or the stored list is empty.
func (a *Adapter) LoadPresets(ctx context.Context) []preset.Preset {
	out, ok := loadJSON[preset.Preset](ctx, a, KeyPresets)
	if !ok || len(out) == 0 {
		return preset.Defaults()
	}
	return out
}

func (a *Adapter) SavePresets(ctx context.Context, presets []preset.Preset) {
	saveJSON(ctx, a, KeyPresets, presets)
}

// LoadActivePresetID returns the stored active preset id, or "".
func (a *Adapter) LoadActivePresetID(ctx context.Context) string {
	v, _ := a.get(ctx, KeyActivePresetID)
	return v
}

// SaveActivePresetID stores id; an empty id removes the key.
func (a *Adapter) SaveActivePresetID(ctx context.Context, id string) {
	if id == "" {
		a.del(ctx, KeyActivePresetID)
		return
	}
	a.set(ctx, KeyActivePresetID, id)
}

// LoadTheme returns the stored theme, defaulting to system.
func (a *Adapter) LoadTheme(ctx context.Context) appearance.Theme {
	v, _ := a.get(ctx, KeyTheme)
	return appearance.Theme(v).OrDefault()
}

func (a *Adapter) SaveTheme(ctx context.Context, t appearance.Theme) {
	a.set(ctx, KeyTheme, string(t))
}

// LoadAPIKey returns the stored credential, or "".
func (a *Adapter) LoadAPIKey(ctx context.Context) string {
	v, _ := a.get(ctx, KeyAPIKey)
	return v
}

// SaveAPIKey stores the credential; an empty key removes it.
func (a *Adapter) SaveAPIKey(ctx context.Context, key string) {
	if key == "" {
		a.del(ctx, KeyAPIKey)
		return
	}
	a.set(ctx, KeyAPIKey, key)
}
