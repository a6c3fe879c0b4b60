package llm

import (
	"context"
	"sync"
)

// MockChatModel returns canned responses in order. Once Responses is exhausted
// the last entry is repeated. Errs, when set, is consumed in the same way and
// takes precedence over Responses for that call.
type MockChatModel struct {
	Responses []Response
	Errs      []error
	ModelName string

	mu    sync.Mutex
	Calls []Request
}

func (m *MockChatModel) Name() string {
	if m.ModelName == "" {
		return "mock"
	}
	return m.ModelName
}

func (m *MockChatModel) Chat(ctx context.Context, req Request) (Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.Calls)
	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if len(m.Errs) > 0 {
		if err := m.Errs[min(n, len(m.Errs)-1)]; err != nil {
			return Response{}, err
		}
	}
	if len(m.Responses) == 0 {
		return Response{}, nil
	}
	return m.Responses[min(n, len(m.Responses)-1)], nil
}

// CallCount reports how many times Chat was invoked.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
