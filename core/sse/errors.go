package sse

import "errors"

var (
	// ErrStreamingUnsupported is returned when the response writer cannot
	// flush, which Server-Sent Events requires.
	ErrStreamingUnsupported = errors.New("response writer does not support streaming")

	// ErrSinkClosed is returned for writes after Close.
	ErrSinkClosed = errors.New("sse sink is closed")
)
