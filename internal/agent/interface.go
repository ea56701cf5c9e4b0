package agent

import (
	"context"
	"fmt"
)

// Agent is the interface every completion provider implements.
type Agent interface {
	// Send sends a prompt to the provider and returns the generated text.
	Send(ctx context.Context, prompt string) (string, error)
}

// NewAgent is a factory function that returns an Agent for the provider.
func NewAgent(provider, apiKey, model string) (Agent, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicClient(apiKey, model), nil
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "mock":
		return &MockAgent{}, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
