package wsink

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/councilkit/council/core/fanout"
)

// DefaultWriteTimeout bounds a single frame write.
const DefaultWriteTimeout = 10 * time.Second

// Sink writes fanout messages to a WebSocket connection as JSON text
// frames. It implements fanout.Sink.
type Sink struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
	closed       bool
}

type config struct {
	upgrader     *websocket.Upgrader
	writeTimeout time.Duration
}

// Option configures the upgrade and the sink.
type Option func(*config)

// WithReadBuffer sets the upgrader's read buffer size.
func WithReadBuffer(size int) Option {
	return func(c *config) {
		c.upgrader.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the upgrader's write buffer size.
func WithWriteBuffer(size int) Option {
	return func(c *config) {
		c.upgrader.WriteBufferSize = size
	}
}

// WithOriginCheck sets the origin check used during the handshake.
func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(c *config) {
		c.upgrader.CheckOrigin = fn
	}
}

// WithAllowAnyOrigin disables origin checking.
func WithAllowAnyOrigin() Option {
	return func(c *config) {
		c.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
}

// WithWriteTimeout bounds each frame write.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// Upgrade performs the WebSocket handshake and returns a sink over the
// resulting connection.
func Upgrade(w http.ResponseWriter, r *http.Request, opts ...Option) (*Sink, error) {
	cfg := &config{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	conn, err := cfg.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	return &Sink{conn: conn, writeTimeout: cfg.writeTimeout}, nil
}

// Write sends one message as a JSON text frame.
func (s *Sink) Write(ctx context.Context, msg fanout.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

// Close sends a normal-closure control frame and closes the connection.
func (s *Sink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true

	deadline := time.Now().Add(s.writeTimeout)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return s.conn.Close()
}
