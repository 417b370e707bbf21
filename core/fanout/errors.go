package fanout

import "errors"

var (
	// ErrNoProducers is returned by New when no sources are supplied.
	ErrNoProducers = errors.New("fanout requires at least one producer")

	// ErrDuplicateProducer is returned by New when two sources share a key.
	ErrDuplicateProducer = errors.New("duplicate producer key")

	// ErrFetchTimeout marks a producer fetch that exceeded the configured
	// per-fetch timeout. It surfaces as that producer's error event; the
	// session itself still terminates normally.
	ErrFetchTimeout = errors.New("producer fetch timed out")

	// ErrNilSink is returned by Run when the sink is nil.
	ErrNilSink = errors.New("sink is required")
)
