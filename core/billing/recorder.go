package billing

import (
	"context"
	"sync"
	"time"

	"github.com/councilkit/council/core/fanout"
)

// Recorder persists per-producer usage. It is the billing-side counterpart
// of fanout.UsageRecorder; every implementation in this package satisfies
// that interface.
type Recorder interface {
	Record(ctx context.Context, producerKey string, usage fanout.Usage) error
}

// Entry is one recorded usage event.
type Entry struct {
	ProducerKey string
	Usage       fanout.Usage
	RecordedAt  time.Time
}

// Memory is an in-process recorder for tests and single-instance
// deployments. Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// Record implements Recorder.
func (m *Memory) Record(_ context.Context, producerKey string, usage fanout.Usage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{
		ProducerKey: producerKey,
		Usage:       usage,
		RecordedAt:  time.Now(),
	})
	return nil
}

// Entries returns a copy of all recorded entries in record order.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Totals sums prompt and completion tokens across all entries.
func (m *Memory) Totals() (promptTokens, completionTokens int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		promptTokens += e.Usage.PromptTokens
		completionTokens += e.Usage.CompletionTokens
	}
	return promptTokens, completionTokens
}
