package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/appearance"
	"github.com/abhisek/focusflow/internal/backup"
	"github.com/abhisek/focusflow/internal/persist"
	"github.com/abhisek/focusflow/internal/preset"
	"github.com/abhisek/focusflow/internal/session"
	"github.com/abhisek/focusflow/internal/timer"
)

// ErrAnalysisInFlight rejects a second analysis while one is running.
var ErrAnalysisInFlight = errors.New("analysis already in progress")

// User-facing messages.
const (
	MsgNoSessions        = "You need at least one study session for an analysis."
	MsgMissingCredential = "Please add your Gemini API key in Settings to use AI features."
	MsgAnalysisFailed    = "Could not get an analysis from the AI. Check your key or try again."
	MsgAnalysisBusy      = "An analysis is already running."
	MsgInvalidImport     = "Invalid backup file format."
	MsgImportFailed      = "Import failed. The file may be corrupt or in the wrong format."
	MsgInvalidPreset     = "Please enter a name and valid durations for the preset."
	MsgImported          = "Data imported successfully!"
)

// UserMessage maps an error from a Controller operation to the text shown
// to the user.
func UserMessage(err error) string {
	var (
		presetErr *preset.ValidationError
		backupErr *backup.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, analysis.ErrNoSessions):
		return MsgNoSessions
	case errors.Is(err, analysis.ErrMissingCredential):
		return MsgMissingCredential
	case errors.Is(err, ErrAnalysisInFlight):
		return MsgAnalysisBusy
	case errors.As(err, &presetErr):
		return MsgInvalidPreset
	case errors.As(err, &backupErr):
		return MsgInvalidImport
	}
	var remote *analysis.RemoteError
	if errors.As(err, &remote) {
		return MsgAnalysisFailed
	}
	return err.Error()
}

// Analyzer produces an Analysis from a batch of study sessions.
type Analyzer interface {
	Analyze(ctx context.Context, apiKey string, sessions []session.Session) (analysis.Analysis, error)
	RequiresCredential() bool
}

// Job is one analysis request: the batch sent to the model and the key
// used to send it.
type Job struct {
	Batch  []session.Session
	APIKey string
}

// Controller owns the shared application state. Every mutation goes
// through it and is persisted before it returns.
type Controller struct {
	store    *persist.Adapter
	analyzer Analyzer
	logger   *zap.Logger

	sessions  []session.Session
	analyses  []analysis.Analysis
	presets   *preset.Manager
	theme     appearance.Theme
	apiKey    string
	analyzing bool
}

// NewController loads the persisted state.
func NewController(ctx context.Context, store *persist.Adapter, analyzer Analyzer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		store:    store,
		analyzer: analyzer,
		logger:   logger.Named("app"),
		sessions: store.LoadSessions(ctx),
		analyses: store.LoadAnalyses(ctx),
		presets:  preset.NewManager(store.LoadPresets(ctx), store.LoadActivePresetID(ctx)),
		theme:    store.LoadTheme(ctx),
		apiKey:   store.LoadAPIKey(ctx),
	}
	// The healed active id is written back so the next start agrees.
	store.SaveActivePresetID(ctx, c.presets.ActiveID())
	return c
}

// Sessions returns the full session history.
func (c *Controller) Sessions() []session.Session {
	return slices.Clone(c.sessions)
}

// Analyses returns the analysis history, newest first.
func (c *Controller) Analyses() []analysis.Analysis {
	return slices.Clone(c.analyses)
}

// PendingStudy returns the study sessions not yet folded into an analysis.
func (c *Controller) PendingStudy() []session.Session {
	return session.FilterByType(c.sessions, session.Study)
}

// PendingCount is len(PendingStudy()).
func (c *Controller) PendingCount() int {
	return len(c.PendingStudy())
}

// Presets returns the preset list.
func (c *Controller) Presets() []preset.Preset {
	return c.presets.List()
}

// ActivePresetID returns the active preset id, empty when none.
func (c *Controller) ActivePresetID() string {
	return c.presets.ActiveID()
}

// ActivePreset returns the active preset.
func (c *Controller) ActivePreset() (preset.Preset, bool) {
	return c.presets.Active()
}

// FindPreset looks a preset up by id or name.
func (c *Controller) FindPreset(ref string) (preset.Preset, bool) {
	return c.presets.Find(ref)
}

// Durations returns the timer durations of the active preset.
func (c *Controller) Durations() timer.Durations {
	study, rest := c.presets.Durations()
	return timer.Durations{Study: study, Rest: rest}
}

// Theme returns the stored theme preference.
func (c *Controller) Theme() appearance.Theme {
	return c.theme
}

// HasAPIKey reports whether a credential is stored.
func (c *Controller) HasAPIKey() bool {
	return c.apiKey != ""
}

// Analyzing reports whether an analysis request is in flight.
func (c *Controller) Analyzing() bool {
	return c.analyzing
}

// AppendSession records a completed session.
func (c *Controller) AppendSession(ctx context.Context, s session.Session) {
	c.sessions = append(c.sessions, s)
	c.store.SaveSessions(ctx, c.sessions)
	c.logger.Info("session recorded",
		zap.String("id", s.ID),
		zap.String("type", string(s.Type)),
		zap.Int("duration", s.Duration))
}

// BeginAnalysis claims the in-flight slot and captures the batch to send.
// It fails without side effects when there is nothing to analyze or a
// request is already running.
func (c *Controller) BeginAnalysis() (Job, error) {
	if c.analyzing {
		return Job{}, ErrAnalysisInFlight
	}
	batch := c.PendingStudy()
	if len(batch) == 0 {
		return Job{}, analysis.ErrNoSessions
	}
	if c.apiKey == "" && c.analyzer.RequiresCredential() {
		return Job{}, analysis.ErrMissingCredential
	}
	c.analyzing = true
	return Job{Batch: batch, APIKey: c.apiKey}, nil
}

// RunJob performs the remote call. It touches no Controller state and is
// safe to run off the UI goroutine.
func (c *Controller) RunJob(ctx context.Context, job Job) (analysis.Analysis, error) {
	a, err := c.analyzer.Analyze(ctx, job.APIKey, job.Batch)
	if err != nil {
		c.logger.Warn("analysis failed", zap.Int("sessions", len(job.Batch)), zap.Error(err))
		return analysis.Analysis{}, err
	}
	return a, nil
}

// CompleteAnalysis releases the in-flight slot. On success the batch is
// removed from history and the analysis is prepended; sessions recorded
// while the request was running stay pending.
func (c *Controller) CompleteAnalysis(ctx context.Context, job Job, a analysis.Analysis, err error) {
	c.analyzing = false
	if err != nil {
		return
	}

	sent := make(map[string]bool, len(job.Batch))
	for _, s := range job.Batch {
		sent[s.ID] = true
	}
	c.sessions = slices.DeleteFunc(c.sessions, func(s session.Session) bool {
		return sent[s.ID]
	})
	c.analyses = slices.Insert(c.analyses, 0, a)

	c.store.SaveAnalyses(ctx, c.analyses)
	c.store.SaveSessions(ctx, c.sessions)
	c.logger.Info("analysis stored", zap.Int("sessions", a.SessionCount))
}

// Analyze runs a full analysis synchronously.
func (c *Controller) Analyze(ctx context.Context) (analysis.Analysis, error) {
	job, err := c.BeginAnalysis()
	if err != nil {
		return analysis.Analysis{}, err
	}
	a, err := c.RunJob(ctx, job)
	c.CompleteAnalysis(ctx, job, a, err)
	return a, err
}

func (c *Controller) savePresets(ctx context.Context) {
	c.store.SavePresets(ctx, c.presets.List())
	c.store.SaveActivePresetID(ctx, c.presets.ActiveID())
}

// AddPreset validates and stores a new preset.
func (c *Controller) AddPreset(ctx context.Context, name string, study, rest int) (preset.Preset, error) {
	p, err := c.presets.Add(name, study, rest)
	if err != nil {
		return preset.Preset{}, err
	}
	c.savePresets(ctx)
	return p, nil
}

// DeletePreset removes a preset, moving the active pointer if needed.
func (c *Controller) DeletePreset(ctx context.Context, id string) error {
	if err := c.presets.Delete(id); err != nil {
		return err
	}
	c.savePresets(ctx)
	return nil
}

// ActivatePreset makes id the active preset.
func (c *Controller) ActivatePreset(ctx context.Context, id string) error {
	if err := c.presets.Activate(id); err != nil {
		return err
	}
	c.store.SaveActivePresetID(ctx, id)
	return nil
}

// SetTheme stores the theme preference.
func (c *Controller) SetTheme(ctx context.Context, t appearance.Theme) {
	c.theme = t.OrDefault()
	c.store.SaveTheme(ctx, c.theme)
}

// SetAPIKey stores the credential. A blank key clears it.
func (c *Controller) SetAPIKey(ctx context.Context, key string) {
	c.apiKey = strings.TrimSpace(key)
	c.store.SaveAPIKey(ctx, c.apiKey)
}

// Export writes both histories as a backup document.
func (c *Controller) Export(w io.Writer) error {
	return backup.Export(w, backup.Document{Sessions: c.sessions, Analyses: c.analyses})
}

// Import replaces both histories with the document read from r. Nothing
// changes when the document is invalid.
func (c *Controller) Import(ctx context.Context, r io.Reader) error {
	doc, err := backup.Import(r)
	if err != nil {
		return fmt.Errorf("import backup: %w", err)
	}
	c.sessions = doc.Sessions
	c.analyses = doc.Analyses
	c.store.SaveSessions(ctx, c.sessions)
	c.store.SaveAnalyses(ctx, c.analyses)
	c.logger.Info("backup imported",
		zap.Int("sessions", len(c.sessions)),
		zap.Int("analyses", len(c.analyses)))
	return nil
}
