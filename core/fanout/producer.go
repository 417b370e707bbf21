package fanout

import "context"

// Producer yields an ordered sequence of events, typically backed by one
// upstream LLM call. Next blocks until the next event is available or ctx
// is canceled. A non-nil error return is equivalent to yielding
// ErrorEvent(err): the producer is marked failed and never asked again.
//
// The fanout guarantees at most one outstanding Next call per producer, so
// implementations do not need to be safe for concurrent use. The context
// passed to Next is scoped to that single call; implementations that hold
// upstream connections should derive their lifetime from the context they
// were constructed with instead.
type Producer interface {
	Next(ctx context.Context) (Event, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(ctx context.Context) (Event, error)

// Next calls f.
func (f ProducerFunc) Next(ctx context.Context) (Event, error) {
	return f(ctx)
}

// Source pairs a producer with its identity on the merged stream.
type Source struct {
	Key      string
	Producer Producer
}

// producerState tracks one producer's lifecycle inside a running session.
type producerState int

const (
	statePending producerState = iota
	stateRunning
	stateCompleted
	stateFailed
)

// settled reports whether the producer has reached a terminal state.
func (s producerState) settled() bool {
	return s == stateCompleted || s == stateFailed
}
