package ai

import "context"

// MockProvider is a test double for completion providers. It records
// every request so tests can assert on call counts and prompt content.
type MockProvider struct {
	Response  string
	Responses []string // consumed in order when non-empty, overriding Response
	Err       error
	Requests  []CompletionRequest
}

// NewMockProvider creates a MockProvider returning the given response.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{Response: response}
}

func (m *MockProvider) Complete(_ context.Context, req CompletionRequest) (CompletionResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return CompletionResponse{}, m.Err
	}

	content := m.Response
	if len(m.Responses) > 0 {
		content = m.Responses[0]
		m.Responses = m.Responses[1:]
	}

	return CompletionResponse{
		Content:      content,
		Model:        "mock",
		InputTokens:  10,
		OutputTokens: len(content),
	}, nil
}

func (m *MockProvider) HealthCheck(_ context.Context) error {
	return m.Err
}

// Calls returns how many completion requests the mock has served.
func (m *MockProvider) Calls() int {
	return len(m.Requests)
}

// LastRequest returns the most recent request, or nil if none were made.
func (m *MockProvider) LastRequest() *CompletionRequest {
	if len(m.Requests) == 0 {
		return nil
	}
	return &m.Requests[len(m.Requests)-1]
}
