package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"qadraft/internal/agent"
	"qadraft/internal/correlate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	gc := Build(sampleTicket(), correlate.SelectionResult{})

	t.Run("success returns provider output verbatim", func(t *testing.T) {
		g := &Generator{Agent: &agent.MockAgent{Responder: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "TICKET: QA-1")
			return "### Test Case 1 - Login\n\n**Steps:**\n\n1. log in", nil
		}}}

		cases, rendered, err := g.Generate(ctx, gc)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(cases, "### Test Case 1"))
		assert.Contains(t, rendered, "TICKET: QA-1")
	})

	t.Run("provider failure is wrapped with the ticket key", func(t *testing.T) {
		g := &Generator{Agent: &agent.MockAgent{Responder: func(string) (string, error) {
			return "", errors.New("overloaded")
		}}}

		_, _, err := g.Generate(ctx, gc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "QA-1")
	})

	t.Run("blank output is an error", func(t *testing.T) {
		g := &Generator{Agent: &agent.MockAgent{Responder: func(string) (string, error) {
			return "   \n", nil
		}}}

		_, _, err := g.Generate(ctx, gc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty output")
	})

	t.Run("payload bound is applied to the rendered context", func(t *testing.T) {
		var seen string
		g := &Generator{
			Agent: &agent.MockAgent{Responder: func(prompt string) (string, error) {
				seen = prompt
				return "cases", nil
			}},
			MaxPayloadBytes: 80,
		}

		_, _, err := g.Generate(ctx, gc)
		require.NoError(t, err)
		assert.NotEmpty(t, seen)
	})
}
