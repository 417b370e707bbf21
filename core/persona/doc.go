// Package persona defines the council voices and the streaming producers
// that back them.
//
// A Persona pairs an identity (key, name, system prompt) with the model that
// answers for it. DefaultCouncil returns the standard four-voice lineup:
// logic, creative, prudent, and devils-advocate.
//
// Each provider constructor starts an upstream stream immediately and wraps
// it as a fanout.Producer, so a council session is a slice of fanout.Source
// values built from the same prompt:
//
//	sources := make([]fanout.Source, 0, len(personas))
//	for _, p := range persona.DefaultCouncil("gpt-4o") {
//		sources = append(sources, fanout.Source{
//			Key:      p.Key,
//			Producer: persona.NewOpenAI(ctx, client, p, prompt),
//		})
//	}
//
// Available producers:
//   - NewOpenAI: OpenAI chat completions, usage via stream options.
//   - NewAnthropic: Anthropic messages, usage via event accumulation.
//   - NewGemini: Gemini generate-content streaming.
//   - NewLorem: placeholder text for demos and tests, no API key needed.
//
// Producers are not safe for concurrent use; the merge loop calls Next
// serially, which is the intended usage.
package persona
