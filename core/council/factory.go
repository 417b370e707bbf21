package council

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"

	"github.com/councilkit/council/core/fanout"
	"github.com/councilkit/council/core/persona"
)

// Provider names accepted by FactoryFor.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderLorem     = "lorem"
)

// OpenAIFactory builds producers backed by the OpenAI chat-completions API.
func OpenAIFactory(client openai.Client) ProducerFactory {
	return func(ctx context.Context, p persona.Persona, prompt string) (fanout.Producer, error) {
		return persona.NewOpenAI(ctx, client, p, prompt), nil
	}
}

// AnthropicFactory builds producers backed by the Anthropic messages API.
func AnthropicFactory(client anthropic.Client) ProducerFactory {
	return func(ctx context.Context, p persona.Persona, prompt string) (fanout.Producer, error) {
		return persona.NewAnthropic(ctx, client, p, prompt), nil
	}
}

// GeminiFactory builds producers backed by the Gemini API.
func GeminiFactory(client *genai.Client) ProducerFactory {
	return func(ctx context.Context, p persona.Persona, prompt string) (fanout.Producer, error) {
		return persona.NewGemini(ctx, client, p, prompt), nil
	}
}

// LoremFactory builds placeholder producers. It needs no API key and is the
// default in development.
func LoremFactory(opts ...persona.LoremOption) ProducerFactory {
	return func(_ context.Context, p persona.Persona, prompt string) (fanout.Producer, error) {
		return persona.NewLorem(p, prompt, opts...), nil
	}
}

// Factories maps provider names to their constructors so a server can pick
// one from configuration. Nil clients are only dereferenced when the
// matching provider is actually selected.
type Factories struct {
	OpenAI    *openai.Client
	Anthropic *anthropic.Client
	Gemini    *genai.Client
}

// FactoryFor returns the factory for the named provider. Selecting a
// provider whose client is not configured is an error; there is no silent
// fallback to placeholder output.
func (f Factories) FactoryFor(provider string) (ProducerFactory, error) {
	switch provider {
	case ProviderOpenAI:
		if f.OpenAI == nil {
			return nil, fmt.Errorf("%w: openai client not configured", ErrUnknownProvider)
		}
		return OpenAIFactory(*f.OpenAI), nil
	case ProviderAnthropic:
		if f.Anthropic == nil {
			return nil, fmt.Errorf("%w: anthropic client not configured", ErrUnknownProvider)
		}
		return AnthropicFactory(*f.Anthropic), nil
	case ProviderGemini:
		if f.Gemini == nil {
			return nil, fmt.Errorf("%w: gemini client not configured", ErrUnknownProvider)
		}
		return GeminiFactory(f.Gemini), nil
	case ProviderLorem:
		return LoremFactory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
