package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilkit/council/core/billing"
	"github.com/councilkit/council/core/fanout"
)

func TestMemory_Record(t *testing.T) {
	t.Parallel()

	m := billing.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Record(ctx, "logic", fanout.Usage{PromptTokens: 10, CompletionTokens: 20, Model: "gpt-test"}))
	require.NoError(t, m.Record(ctx, "creative", fanout.Usage{PromptTokens: 5, CompletionTokens: 7}))

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "logic", entries[0].ProducerKey)
	assert.Equal(t, 10, entries[0].Usage.PromptTokens)
	assert.Equal(t, "gpt-test", entries[0].Usage.Model)
	assert.False(t, entries[0].RecordedAt.IsZero())

	prompt, completion := m.Totals()
	assert.Equal(t, 15, prompt)
	assert.Equal(t, 27, completion)
}

func TestMemory_ConcurrentRecord(t *testing.T) {
	t.Parallel()

	m := billing.NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Record(ctx, "burst", fanout.Usage{PromptTokens: 1, CompletionTokens: 2})
		}()
	}
	wg.Wait()

	prompt, completion := m.Totals()
	assert.Equal(t, 50, prompt)
	assert.Equal(t, 100, completion)
}
