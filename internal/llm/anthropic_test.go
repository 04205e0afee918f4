package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, status int, body any, seen *map[string]any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "sk-ant", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var seen map[string]any
	p := anthropicServer(t, http.StatusOK, anthropicMessage(`{"topic":"essay","rating":88}`, "end_turn"), &seen)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		Instructions: "You review study notes.",
		Prompt:       "notes",
		Schema:       reflectionSchema(),
		MaxTokens:    512,
		Temperature:  0.4,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"essay","rating":88}`, string(resp.Content))
	assert.Equal(t, 80, resp.Usage.Total())
	assert.Equal(t, FinishStop, resp.Finish)

	assert.EqualValues(t, 512, seen["max_tokens"])
	assert.NotNil(t, seen["system"])
	assert.NotNil(t, seen["output_config"])
}

func TestAnthropicProvider_Errors(t *testing.T) {
	apiError := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": "nope"}}
	}

	p := anthropicServer(t, http.StatusTooManyRequests, apiError("rate_limit_error"), nil)
	_, err := p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 10})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	p = anthropicServer(t, http.StatusInternalServerError, apiError("api_error"), nil)
	_, err = p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 10})
	var down *ErrProviderUnavailable
	assert.ErrorAs(t, err, &down)

	p = anthropicServer(t, http.StatusOK, anthropicMessage(`{"topic":`, "max_tokens"), nil)
	_, err = p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 10, Schema: reflectionSchema()})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
