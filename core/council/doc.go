// Package council orchestrates multi-persona deliberation sessions.
//
// A Service holds a persona lineup and a ProducerFactory. Each call to
// Stream fans the prompt out to every persona, merges their token streams
// through core/fanout, and writes the interleaved messages to the given
// sink. Usage is recorded per persona through the configured recorder.
//
//	svc, err := council.New(
//		persona.DefaultCouncil("gpt-4o"),
//		council.OpenAIFactory(client),
//		council.WithRecorder(billing.NewMemory()),
//	)
//	if err != nil {
//		return err
//	}
//
//	mux.Handle("POST /v1/council/stream", council.Handler(svc, log))
//
// Factories exist for OpenAI, Anthropic, Gemini, and a lorem placeholder;
// FactoryFor selects one by name for configuration-driven wiring. Selecting
// an unconfigured provider fails loudly rather than degrading to
// placeholder output.
package council
