package persona

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/councilkit/council/core/fanout"
)

// GeminiProducer streams one persona's answer from the Gemini API. It
// implements fanout.Producer.
type GeminiProducer struct {
	next  func() (*genai.GenerateContentResponse, error, bool)
	stop  func()
	usage fanout.Usage
}

// NewGemini starts a streaming generation for the persona and wraps the
// response sequence as a pull-based producer.
func NewGemini(ctx context.Context, client *genai.Client, p Persona, prompt string) *GeminiProducer {
	cfg := &genai.GenerateContentConfig{}
	if p.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.SystemPrompt, genai.RoleUser)
	}
	if p.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(p.Temperature))
	}
	if p.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.MaxTokens)
	}

	seq := client.Models.GenerateContentStream(ctx, p.Model, genai.Text(prompt), cfg)
	next, stop := iter.Pull2(seq)

	return &GeminiProducer{
		next:  next,
		stop:  stop,
		usage: fanout.Usage{Model: p.Model},
	}
}

// Next pulls the next text fragment from the stream. Responses without text
// (safety metadata, usage-only tails) are consumed silently.
func (p *GeminiProducer) Next(context.Context) (fanout.Event, error) {
	for {
		resp, err, ok := p.next()
		if !ok {
			p.stop()
			return fanout.DoneEvent(p.usage), nil
		}
		if err != nil {
			p.stop()
			return fanout.Event{}, fmt.Errorf("gemini stream: %w", err)
		}

		if resp.UsageMetadata != nil {
			p.usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
			p.usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		}

		if text := resp.Text(); text != "" {
			return fanout.TextEvent(text), nil
		}
	}
}
