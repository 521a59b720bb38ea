package evidence

import (
	"context"
	"time"
)

type MockReply struct {
	Response string
	Err      error
}

// MockCompletionClient replays scripted replies in order and records every
// prompt it was given. With an empty script it always returns Response/Err.
type MockCompletionClient struct {
	Response string
	Err      error
	Script   []MockReply

	Prompts []string
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string, timeout time.Duration, maxTokens int) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if len(m.Script) > 0 {
		reply := m.Script[0]
		m.Script = m.Script[1:]
		return reply.Response, reply.Err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
