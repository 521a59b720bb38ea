package llm

import (
	"context"
	"time"
)

// CompletionClient is the contract to the external text-completion service.
// The returned text carries no structural guarantee: callers must treat it as
// untrusted and possibly non-JSON. A timeout or transport failure is reported
// as an error for that single call; no retries happen at this layer.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, timeout time.Duration, maxTokens int) (string, error)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
