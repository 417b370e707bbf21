package persona

import (
	"context"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	"github.com/councilkit/council/core/fanout"
)

const (
	// DefaultLoremWords is the number of words a lorem persona emits before
	// completing.
	DefaultLoremWords = 40

	// DefaultLoremDelay is the pause between emitted words.
	DefaultLoremDelay = 30 * time.Millisecond
)

// LoremProducer emits placeholder text on a fixed cadence. It implements
// fanout.Producer and stands in for a real model in demos and tests, so the
// merged stream can be exercised without API keys.
type LoremProducer struct {
	gen       *loremgen.Lorem
	model     string
	prompt    string
	delay     time.Duration
	remaining int
	emitted   int
}

// LoremOption configures a LoremProducer.
type LoremOption func(*LoremProducer)

// WithLoremWords sets how many words the producer emits before completing.
func WithLoremWords(n int) LoremOption {
	return func(p *LoremProducer) {
		if n > 0 {
			p.remaining = n
		}
	}
}

// WithLoremDelay sets the pause before each emitted word. A zero delay
// emits as fast as the consumer pulls.
func WithLoremDelay(d time.Duration) LoremOption {
	return func(p *LoremProducer) {
		if d >= 0 {
			p.delay = d
		}
	}
}

// NewLorem creates a placeholder producer for the persona.
func NewLorem(p Persona, prompt string, opts ...LoremOption) *LoremProducer {
	lp := &LoremProducer{
		gen:       loremgen.New(),
		model:     p.Model,
		prompt:    prompt,
		delay:     DefaultLoremDelay,
		remaining: DefaultLoremWords,
	}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

// Next emits one word per call, then completes with usage estimated from
// word counts.
func (p *LoremProducer) Next(ctx context.Context) (fanout.Event, error) {
	if p.remaining <= 0 {
		return fanout.DoneEvent(fanout.Usage{
			PromptTokens:     len(strings.Fields(p.prompt)),
			CompletionTokens: p.emitted,
			Model:            p.model,
		}), nil
	}

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return fanout.Event{}, ctx.Err()
		}
	}

	p.remaining--
	p.emitted++
	return fanout.TextEvent(p.gen.Word(2, 10) + " "), nil
}
