package agent

import "context"

// MockAgent is an Agent for tests and dry runs. When Responder is nil it
// echoes a fixed placeholder.
type MockAgent struct {
	Responder func(prompt string) (string, error)
}

// Send implements the Agent interface.
func (m *MockAgent) Send(ctx context.Context, prompt string) (string, error) {
	if m.Responder != nil {
		return m.Responder(prompt)
	}
	return "### Test Case 1 - Placeholder\n\n**Steps:**\n\n1. (mock output)\n\n**Expected:**\n\n* (mock output)", nil
}
