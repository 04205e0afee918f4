package screen

import (
	"github.com/abhisek/focusflow/internal/appearance"
)

// Screens never mutate application state themselves. They emit the
// request messages below and the root model applies them. Finished
// sessions are the exception: the timer screen records them through its
// source straight away.

// AnalyzeMsg requests an analysis of the pending study sessions.
type AnalyzeMsg struct{}

// AddPresetMsg requests a new preset.
type AddPresetMsg struct {
	Name  string
	Study int
	Rest  int
}

// DeletePresetMsg requests deletion of a preset.
type DeletePresetMsg struct {
	ID string
}

// ActivatePresetMsg requests a change of active preset.
type ActivatePresetMsg struct {
	ID string
}

// SetThemeMsg requests a theme change.
type SetThemeMsg struct {
	Theme appearance.Theme
}

// SaveAPIKeyMsg stores the analysis credential. An empty key clears it.
type SaveAPIKeyMsg struct {
	Key string
}

// ExportMsg writes a backup to Path, or to the default file name in the
// working directory when Path is empty.
type ExportMsg struct {
	Path string
}

// ImportMsg replaces history with the backup at Path.
type ImportMsg struct {
	Path string
}

// Op identifies the request a ResultMsg answers.
type Op int

const (
	OpAddPreset Op = iota
	OpDeletePreset
	OpActivatePreset
	OpSetTheme
	OpSaveAPIKey
	OpExport
	OpImport
)

// ResultMsg is delivered to the active screen after a request has been
// applied. Text is user-facing; Err is nil on success.
type ResultMsg struct {
	Op   Op
	Text string
	Err  error
}
