// Package llm hides the hosted model vendors behind one Provider. Every
// request is a single turn: instructions, one prompt, and usually a JSON
// schema the reply must satisfy.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider generates one reply per request.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// returned Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the vendor model id requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	// Instructions is sent as the system prompt.
	Instructions string

	// Prompt is the user turn.
	Prompt string

	// Schema, when set, switches the vendor to structured JSON output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Finish says why the model stopped.
type Finish string

const (
	FinishStop   Finish = "stop"
	FinishLength Finish = "length"
)

// Response is a model reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	Finish  Finish
}

// Usage counts tokens for one request.
type Usage struct {
	Input  int
	Output int
}

func (u Usage) Total() int { return u.Input + u.Output }

// finish builds a Response from the raw vendor text. Empty text, and text
// that fails req.Schema, become typed errors so the retry layer can tell
// them apart from transport failures.
func finish(req Request, text string, model string, usage Usage, why Finish) (*Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ErrEmptyResponse{StopReason: string(why)}
	}
	content := json.RawMessage(text)

	if err := req.Schema.Check(content); err != nil {
		if why == FinishLength {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		return nil, err
	}

	return &Response{Content: content, Usage: usage, Model: model, Finish: why}, nil
}
