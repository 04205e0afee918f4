package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRetrying returns a retry wrapper that records its waits instead of
// sleeping.
func newRetrying(inner Provider) (*retrying, *[]time.Duration) {
	var waits []time.Duration
	r := &retrying{
		inner: inner,
		cfg:   RetryConfig{MaxAttempts: 3, InitialWait: 100 * time.Millisecond, MaxWait: 150 * time.Millisecond, Multiplier: 2},
		sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return ctx.Err()
		},
	}
	return r, &waits
}

var (
	replyOK      = Reply{Content: json.RawMessage(`{"ok":true}`)}
	replyDown    = Reply{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}}
	replyInvalid = Reply{Err: &ErrInvalidResponse{Err: errors.New("missing summary")}}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		script    []Reply
		wantErr   bool
		wantCalls int
		wantWaits int
	}{
		{"first attempt", []Reply{replyOK}, false, 1, 0},
		{"transient then success", []Reply{replyDown, replyOK}, false, 2, 1},
		{"gives up after max attempts", []Reply{replyDown, replyDown, replyDown, replyOK}, true, 3, 2},
		{"invalid reply retried once", []Reply{replyInvalid, replyOK}, false, 2, 1},
		{"second invalid reply is final", []Reply{replyInvalid, replyInvalid, replyOK}, true, 2, 1},
		{"truncation not retried", []Reply{{Err: &ErrMaxTokensExceeded{}}, replyOK}, true, 1, 0},
		{"deadline not retried", []Reply{{Err: context.DeadlineExceeded}, replyOK}, true, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			r, waits := newRetrying(mock)

			resp, err := r.Generate(context.Background(), Request{Prompt: "notes"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Len(t, mock.Requests(), tt.wantCalls)
			assert.Len(t, *waits, tt.wantWaits)
		})
	}
}

func TestRetry_BackoffIsCapped(t *testing.T) {
	r, waits := newRetrying(NewMockProvider(replyDown, replyDown, replyDown))
	_, err := r.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, *waits, 2)
	assert.InDelta(t, float64(100*time.Millisecond), float64((*waits)[0]), float64(20*time.Millisecond))
	assert.InDelta(t, float64(150*time.Millisecond), float64((*waits)[1]), float64(30*time.Millisecond))
}

func TestRetry_RateLimitUsesRetryAfter(t *testing.T) {
	r, waits := newRetrying(NewMockProvider(
		Reply{Err: &ErrRateLimit{RetryAfter: 7 * time.Second, Err: errors.New("429")}},
		replyOK,
	))
	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{7 * time.Second}, *waits)
}

func TestRetry_CancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newRetrying(NewMockProvider(replyDown, replyOK))
	_, err := r.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_ModelID(t *testing.T) {
	assert.Equal(t, ProviderMock, WithRetry(NewMockProvider(), RetryConfig{}).ModelID())
}

func TestSleepCtx(t *testing.T) {
	require.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}
