// Package analysis turns a batch of study sessions into an AI-generated
// wellbeing and productivity report.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/focusflow/internal/llm"
	"github.com/abhisek/focusflow/internal/session"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 100
)

// ProviderFactory builds a provider for the given credential.
type ProviderFactory func(ctx context.Context, apiKey string) (llm.Provider, error)

// Config tunes the remote request.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration

	// RequireCredential is false only for providers that need no key.
	RequireCredential bool
}

// DefaultConfig returns the settings used by the app.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         2048,
		Temperature:       0.4,
		Timeout:           60 * time.Second,
		RequireCredential: true,
	}
}

// Client sends session notes to the model and validates the reply.
type Client struct {
	newProvider ProviderFactory
	cfg         Config
	now         func() time.Time
}

// NewClient creates an analysis client.
func NewClient(factory ProviderFactory, cfg Config) *Client {
	return &Client{newProvider: factory, cfg: cfg, now: time.Now}
}

// RequiresCredential reports whether Analyze fails without an API key.
func (c *Client) RequiresCredential() bool {
	return c.cfg.RequireCredential
}

// analysisOutput mirrors AnalysisSchema. Pointers distinguish missing
// fields from zero values.
type analysisOutput struct {
	Concentration *float64  `json:"concentration"`
	StudyCapacity *float64  `json:"studyCapacity"`
	Stress        *float64  `json:"stress"`
	Happiness     *float64  `json:"happiness"`
	Summary       *string   `json:"summary"`
	Suggestions   *[]string `json:"suggestions"`
}

// Analyze produces an Analysis for sessions. Only each session's duration
// and notes are sent.
func (c *Client) Analyze(ctx context.Context, apiKey string, sessions []session.Session) (Analysis, error) {
	if len(sessions) == 0 {
		return Analysis{}, ErrNoSessions
	}
	if apiKey == "" && c.cfg.RequireCredential {
		return Analysis{}, ErrMissingCredential
	}

	userMsg, err := buildAnalysisUserMessage(sessions)
	if err != nil {
		return Analysis{}, err
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)

	provider, err := c.newProvider(ctx, apiKey)
	if err != nil {
		return Analysis{}, &RemoteError{Err: err}
	}

	req := llm.Request{
		Instructions: analysisSystemPrompt,
		Prompt:       userMsg,
		Schema:       AnalysisSchema,
		MaxTokens:    c.cfg.MaxTokens,
		Temperature:  c.cfg.Temperature,
	}

	resp, err := provider.Generate(ctx, req)
	if err != nil {
		return Analysis{}, &RemoteError{Err: err}
	}

	out, err := decodeOutput(resp.Content)
	if err != nil {
		return Analysis{}, &RemoteError{Err: err}
	}

	return Analysis{
		Date:               c.now(),
		Concentration:      clampRating(*out.Concentration),
		StudyCapacity:      clampRating(*out.StudyCapacity),
		Stress:             clampRating(*out.Stress),
		Happiness:          clampRating(*out.Happiness),
		Summary:            *out.Summary,
		Suggestions:        append([]string{}, (*out.Suggestions)...),
		TotalStudyDuration: session.TotalMinutes(sessions),
		SessionCount:       len(sessions),
	}, nil
}

func decodeOutput(raw json.RawMessage) (*analysisOutput, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty response")
	}
	var out analysisOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}

	missing := func(name string) error {
		return fmt.Errorf("analysis response missing %s", name)
	}
	switch {
	case out.Concentration == nil:
		return nil, missing("concentration")
	case out.StudyCapacity == nil:
		return nil, missing("studyCapacity")
	case out.Stress == nil:
		return nil, missing("stress")
	case out.Happiness == nil:
		return nil, missing("happiness")
	case out.Summary == nil:
		return nil, missing("summary")
	case out.Suggestions == nil:
		return nil, missing("suggestions")
	}
	return &out, nil
}

// clampRating rounds v into [MinRating, MaxRating].
func clampRating(v float64) int {
	n := int(math.Round(v))
	return min(max(n, MinRating), MaxRating)
}
