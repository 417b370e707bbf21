package persona

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/councilkit/council/core/fanout"
)

// OpenAIProducer streams one persona's answer from the OpenAI
// chat-completions API. It implements fanout.Producer.
//
// The upstream stream is bound to the context passed at construction; the
// per-call context only governs each individual fetch.
type OpenAIProducer struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
	usage  fanout.Usage
}

// NewOpenAI starts a streaming completion for the persona and wraps it as a
// producer. Usage accounting requires no extra round trip: the API appends
// a usage-bearing chunk when IncludeUsage is set.
func NewOpenAI(ctx context.Context, client openai.Client, p Persona, prompt string) *OpenAIProducer {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.SystemPrompt),
			openai.UserMessage(prompt),
		},
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}
	if p.Temperature > 0 {
		params.Temperature = openai.Float(p.Temperature)
	}
	if p.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(p.MaxTokens))
	}

	return &OpenAIProducer{
		stream: client.Chat.Completions.NewStreaming(ctx, params),
		usage:  fanout.Usage{Model: p.Model},
	}
}

// Next pulls the next content delta from the stream. Chunks without content
// (role announcements, the trailing usage chunk) are consumed silently.
func (p *OpenAIProducer) Next(context.Context) (fanout.Event, error) {
	for p.stream.Next() {
		chunk := p.stream.Current()

		if chunk.Usage.TotalTokens > 0 {
			p.usage.PromptTokens = int(chunk.Usage.PromptTokens)
			p.usage.CompletionTokens = int(chunk.Usage.CompletionTokens)
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		if s := chunk.Choices[0].Delta.Content; s != "" {
			return fanout.TextEvent(s), nil
		}
	}

	if err := p.stream.Err(); err != nil {
		return fanout.Event{}, fmt.Errorf("openai stream: %w", err)
	}
	return fanout.DoneEvent(p.usage), nil
}
