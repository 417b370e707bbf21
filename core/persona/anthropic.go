package persona

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/councilkit/council/core/fanout"
)

const defaultAnthropicMaxTokens = 1024

// AnthropicProducer streams one persona's answer from the Anthropic
// messages API. It implements fanout.Producer.
type AnthropicProducer struct {
	stream  *ssestream.Stream[anthropic.MessageStreamEventUnion]
	message anthropic.Message
	model   string
}

// NewAnthropic starts a streaming message for the persona and wraps it as a
// producer. Usage is taken from the accumulated message once the stream
// finishes.
func NewAnthropic(ctx context.Context, client anthropic.Client, p Persona, prompt string) *AnthropicProducer {
	maxTokens := p.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if p.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.SystemPrompt}}
	}
	if p.Temperature > 0 {
		params.Temperature = anthropic.Float(p.Temperature)
	}

	return &AnthropicProducer{
		stream: client.Messages.NewStreaming(ctx, params),
		model:  p.Model,
	}
}

// Next pulls the next text delta from the stream. Non-text events are
// accumulated for usage accounting and consumed silently.
func (p *AnthropicProducer) Next(context.Context) (fanout.Event, error) {
	for p.stream.Next() {
		event := p.stream.Current()
		if err := p.message.Accumulate(event); err != nil {
			return fanout.Event{}, fmt.Errorf("anthropic accumulate: %w", err)
		}

		switch e := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if e.Delta.Type == "text_delta" && e.Delta.Text != "" {
				return fanout.TextEvent(e.Delta.Text), nil
			}
		}
	}

	if err := p.stream.Err(); err != nil {
		return fanout.Event{}, fmt.Errorf("anthropic stream: %w", err)
	}

	return fanout.DoneEvent(fanout.Usage{
		PromptTokens:     int(p.message.Usage.InputTokens),
		CompletionTokens: int(p.message.Usage.OutputTokens),
		Model:            p.model,
	}), nil
}
