package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one scripted MockProvider answer.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider answers from a script, in order, and records requests.
// Scripted content is returned as-is so callers can test their own
// validation. With offline set, an exhausted script falls back to a
// reply synthesized from the request schema.
type MockProvider struct {
	mu       sync.Mutex
	script   []Reply
	requests []Request
	offline  bool
}

// NewMockProvider scripts the given replies. Once they run out every
// call fails with ErrProviderUnavailable.
func NewMockProvider(replies ...Reply) *MockProvider {
	return &MockProvider{script: replies}
}

// NewOfflineProvider never needs the network. It backs provider = "mock".
func NewOfflineProvider() *MockProvider {
	return &MockProvider{offline: true}
}

func (m *MockProvider) ModelID() string { return ProviderMock }

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.script) == 0 {
		if !m.offline {
			return nil, &ErrProviderUnavailable{}
		}
		b, err := json.Marshal(sample(req.Schema))
		if err != nil {
			return nil, &ErrInvalidResponse{Err: err}
		}
		return finish(req, string(b), ProviderMock, Usage{Input: len(req.Prompt) / 4, Output: len(b) / 4}, FinishStop)
	}

	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: ProviderMock, Finish: FinishStop}, nil
}

// Enqueue appends to the script.
func (m *MockProvider) Enqueue(r Reply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// sample builds the smallest value that satisfies s: numbers sit in the
// middle of their range, arrays hold minItems (at least one) elements.
func sample(s *Schema) any {
	if s == nil {
		return map[string]any{}
	}
	return sampleOf(s.Definition)
}

func sampleOf(def map[string]any) any {
	if enum := stringsOf(def["enum"]); len(enum) > 0 {
		return enum[0]
	}

	switch stringOf(def["type"]) {
	case "object":
		out := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				out[name] = sampleOf(sub)
			}
		}
		return out
	case "array":
		n := 1
		if v, ok := numberOf(def["minItems"]); ok && v > 1 {
			n = int(v)
		}
		items, _ := def["items"].(map[string]any)
		out := make([]any, n)
		for i := range out {
			out[i] = sampleOf(items)
		}
		return out
	case "integer", "number":
		lo, hasLo := numberOf(def["minimum"])
		hi, hasHi := numberOf(def["maximum"])
		var v float64
		switch {
		case hasLo && hasHi:
			v = lo + (hi-lo)/2
		case hasLo:
			v = lo
		case hasHi:
			v = hi
		}
		if stringOf(def["type"]) == "integer" {
			return int(v)
		}
		return v
	case "boolean":
		return false
	default:
		return "offline reply"
	}
}
