package generate

import (
	"context"
	"fmt"
	"strings"

	"qadraft/internal/agent"
)

// Generator turns an assembled context into test-case text via a completion
// provider.
type Generator struct {
	Agent agent.Agent

	// MaxPayloadBytes bounds the serialized context handed to the provider.
	// Zero means unbounded.
	MaxPayloadBytes int
}

// Generate renders the context, sends it with the instruction template and
// returns the generated test cases verbatim, plus the rendered context that
// was used (kept for the export record). Empty provider output is an error.
func (g *Generator) Generate(ctx context.Context, gc Context) (string, string, error) {
	rendered := gc.Render(g.MaxPayloadBytes)
	prompt := BuildPrompt(rendered)

	out, err := g.Agent.Send(ctx, prompt)
	if err != nil {
		return "", rendered, fmt.Errorf("generation failed for %s: %w", gc.Ticket.Key, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", rendered, fmt.Errorf("generation failed for %s: provider returned empty output", gc.Ticket.Key)
	}
	return out, rendered, nil
}
