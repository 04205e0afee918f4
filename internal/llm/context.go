package llm

import "context"

type purposeKey struct{}

// PurposeAnalysis tags study-session analysis requests in the event log.
const PurposeAnalysis = "analysis"

// WithPurpose tags ctx so the recorder can group requests by caller.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}
