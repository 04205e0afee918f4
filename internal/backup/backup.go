// Package backup reads and writes the {sessions, analyses} export document.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/session"
)

// Document is the export format.
type Document struct {
	Sessions []session.Session   `json:"sessions"`
	Analyses []analysis.Analysis `json:"analyses"`
}

// ValidationError rejects an import. Nothing is replaced when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid backup file: " + e.Reason
}

// FileName returns focusflow-backup-YYYY-MM-DD.json for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("focusflow-backup-%s.json", now.Format(time.DateOnly))
}

// Export writes doc as indented JSON. Nil lists are written as [].
func Export(w io.Writer, doc Document) error {
	if doc.Sessions == nil {
		doc.Sessions = []session.Session{}
	}
	if doc.Analyses == nil {
		doc.Analyses = []analysis.Analysis{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Import parses a backup document. Both "sessions" and "analyses" must be
// present and must be arrays.
func Import(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read backup: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &ValidationError{Reason: "not a JSON object"}
	}

	var doc Document
	if err := decodeArray(raw, "sessions", &doc.Sessions); err != nil {
		return Document{}, err
	}
	if err := decodeArray(raw, "analyses", &doc.Analyses); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func decodeArray[T any](raw map[string]json.RawMessage, field string, dst *[]T) error {
	v, ok := raw[field]
	if !ok {
		return &ValidationError{Reason: fmt.Sprintf("missing %q", field)}
	}
	v = bytes.TrimSpace(v)
	if len(v) == 0 || v[0] != '[' {
		return &ValidationError{Reason: fmt.Sprintf("%q is not an array", field)}
	}
	out := []T{}
	if err := json.Unmarshal(v, &out); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("%q: %v", field, err)}
	}
	*dst = out
	return nil
}
