package persona_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilkit/council/core/persona"
)

func TestDefaultCouncil(t *testing.T) {
	t.Parallel()

	council := persona.DefaultCouncil("gpt-4o")
	require.Len(t, council, 4)

	keys := make(map[string]bool, len(council))
	for _, p := range council {
		assert.NotEmpty(t, p.Key)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.SystemPrompt)
		assert.Equal(t, "gpt-4o", p.Model)
		assert.Positive(t, p.MaxTokens)
		assert.False(t, keys[p.Key], "duplicate key %q", p.Key)
		keys[p.Key] = true
	}

	assert.True(t, keys[persona.KeyLogic])
	assert.True(t, keys[persona.KeyCreative])
	assert.True(t, keys[persona.KeyPrudent])
	assert.True(t, keys[persona.KeyDevilsAdvocate])
}

func TestDefaultCouncil_DistinctPrompts(t *testing.T) {
	t.Parallel()

	council := persona.DefaultCouncil("claude-sonnet-4-20250514")
	prompts := make(map[string]bool, len(council))
	for _, p := range council {
		assert.False(t, prompts[p.SystemPrompt], "persona %q shares a system prompt", p.Key)
		prompts[p.SystemPrompt] = true
	}
}
