package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/store"
)

// recorder logs each request and stores it as an llm_request_events row
// for the llm inspection commands.
type recorder struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *zap.Logger
}

// WithLogging wraps p. provider is the configured vendor name.
func WithLogging(p Provider, provider string, events store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recorder{inner: p, provider: provider, events: events, log: logger.Named("llm")}
}

func (r *recorder) ModelID() string { return r.inner.ModelID() }

func (r *recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()
	resp, err := r.inner.Generate(ctx, req)
	elapsed := time.Since(started)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.Input
		ev.OutputTokens = resp.Usage.Output
		ev.ResponseBody = string(resp.Content)
	}

	log := r.log.With(
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Duration("latency", elapsed),
	)
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("model request failed", zap.Error(err))
	} else {
		log.Info("model request", zap.Int("input_tokens", ev.InputTokens), zap.Int("output_tokens", ev.OutputTokens))
	}

	// A lost event row never fails the request.
	if rerr := r.events.AppendLLMRequest(ctx, ev); rerr != nil {
		log.Warn("record model request", zap.Error(rerr))
	}
	return resp, err
}

// transcript renders req for the event log.
func transcript(req Request) string {
	var b strings.Builder
	if req.Instructions != "" {
		fmt.Fprintf(&b, "[instructions]\n%s\n\n", req.Instructions)
	}
	fmt.Fprintf(&b, "[prompt]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
