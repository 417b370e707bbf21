package fanout

import "context"

// Sink is the single consumer of the merged output stream. The fanout loop
// is the only writer, so implementations are never written to concurrently
// by producers. A Write error is terminal for the whole session.
type Sink interface {
	Write(ctx context.Context, msg Message) error
	Close(ctx context.Context) error
}

// UsageRecorder receives each producer's final usage once that producer
// completed successfully. Record is invoked at most once per producer per
// session, after the aggregate terminal message has been written.
type UsageRecorder interface {
	Record(ctx context.Context, producerKey string, usage Usage) error
}

// NopRecorder discards usage records. It is the default recorder.
type NopRecorder struct{}

// Record implements UsageRecorder.
func (NopRecorder) Record(context.Context, string, Usage) error { return nil }
