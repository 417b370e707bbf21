package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/councilkit/council/core/fanout"
)

// DefaultKeepAlive is the default keep-alive comment interval.
const DefaultKeepAlive = 30 * time.Second

// Sink writes fanout messages to an HTTP response as Server-Sent Events.
// It implements fanout.Sink. All frames go through one internal mutex so
// keep-alive comments never interleave with event frames on the wire.
type Sink struct {
	mu        sync.Mutex
	w         http.ResponseWriter
	flusher   http.Flusher
	ticker    *time.Ticker
	keepAlive time.Duration
	eventName string
	closed    bool
	done      chan struct{}
}

// Option configures a Sink.
type Option func(*sinkConfig)

type sinkConfig struct {
	keepAlive   time.Duration
	noKeepAlive bool
	reconnect   int
	eventName   string
}

// WithKeepAlive sets the keep-alive comment interval.
func WithKeepAlive(interval time.Duration) Option {
	return func(c *sinkConfig) {
		if interval > 0 {
			c.keepAlive = interval
		}
	}
}

// WithoutKeepAlive disables keep-alive comments.
func WithoutKeepAlive() Option {
	return func(c *sinkConfig) {
		c.noKeepAlive = true
	}
}

// WithReconnectTime sets the client reconnection hint in milliseconds.
func WithReconnectTime(milliseconds int) Option {
	return func(c *sinkConfig) {
		if milliseconds > 0 {
			c.reconnect = milliseconds
		}
	}
}

// WithEventName sets an SSE event name emitted with every frame.
func WithEventName(name string) Option {
	return func(c *sinkConfig) {
		c.eventName = name
	}
}

// New prepares w for Server-Sent Events: it validates streaming support,
// writes the SSE headers and the initial connection comment, and starts the
// keep-alive ticker. The returned sink is ready to be handed to fanout.Run.
func New(w http.ResponseWriter, opts ...Option) (*Sink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	cfg := &sinkConfig{keepAlive: DefaultKeepAlive}
	for _, opt := range opts {
		opt(cfg)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	w.WriteHeader(http.StatusOK)

	if cfg.reconnect > 0 {
		if _, err := fmt.Fprintf(w, "retry: %d\n\n", cfg.reconnect); err != nil {
			return nil, fmt.Errorf("write retry hint: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, ": connected\n\n"); err != nil {
		return nil, fmt.Errorf("write connection comment: %w", err)
	}
	flusher.Flush()

	s := &Sink{
		w:         w,
		flusher:   flusher,
		eventName: cfg.eventName,
		done:      make(chan struct{}),
	}

	if !cfg.noKeepAlive && cfg.keepAlive > 0 {
		s.keepAlive = cfg.keepAlive
		s.ticker = time.NewTicker(cfg.keepAlive)
		go s.keepAliveLoop()
	}

	return s, nil
}

// Write emits one message as an SSE data frame and flushes it immediately.
func (s *Sink) Write(ctx context.Context, msg fanout.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal sse event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	if s.eventName != "" {
		if _, err := fmt.Fprintf(s.w, "event: %s\n", s.eventName); err != nil {
			return fmt.Errorf("write sse event name: %w", err)
		}
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write sse event: %w", err)
	}
	s.flusher.Flush()

	if s.ticker != nil {
		s.ticker.Reset(s.keepAlive)
	}
	return nil
}

// Close stops the keep-alive loop and marks the sink closed. The underlying
// response is finished by the HTTP server when the handler returns.
func (s *Sink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true

	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
	s.flusher.Flush()
	return nil
}

// keepAliveLoop writes comment frames while the stream is idle so proxies
// do not reap the connection between events.
func (s *Sink) keepAliveLoop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.mu.Lock()
			if s.closed {
				s.mu.Unlock()
				return
			}
			if _, err := fmt.Fprintf(s.w, ": keepalive\n\n"); err != nil {
				s.mu.Unlock()
				return
			}
			s.flusher.Flush()
			s.mu.Unlock()
		}
	}
}
