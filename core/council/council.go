package council

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/councilkit/council/core/fanout"
	"github.com/councilkit/council/core/logger"
	"github.com/councilkit/council/core/persona"
)

// DefaultFetchTimeout bounds how long a single producer fetch may take
// before the persona is failed with a timeout error.
const DefaultFetchTimeout = 30 * time.Second

// Request describes one council session: the question to put before the
// personas and an optional model override.
type Request struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// ProducerFactory builds a streaming producer for one persona. The context
// bounds the upstream stream's lifetime for the whole session.
type ProducerFactory func(ctx context.Context, p persona.Persona, prompt string) (fanout.Producer, error)

// Service runs council sessions: it fans a prompt out to every persona and
// merges their streams onto a single sink.
type Service struct {
	personas     []persona.Persona
	factory      ProducerFactory
	recorder     fanout.UsageRecorder
	fetchTimeout time.Duration
	log          *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder sets the usage recorder for billing. Defaults to a no-op.
func WithRecorder(r fanout.UsageRecorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithFetchTimeout bounds each producer fetch. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.fetchTimeout = d
		}
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a council service over the given personas.
func New(personas []persona.Persona, factory ProducerFactory, opts ...Option) (*Service, error) {
	if len(personas) == 0 {
		return nil, ErrNoPersonas
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	s := &Service{
		personas:     personas,
		factory:      factory,
		recorder:     fanout.NopRecorder{},
		fetchTimeout: DefaultFetchTimeout,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Stream runs one session: every persona answers req.Prompt concurrently
// and the interleaved messages land on sink. Stream blocks until the
// session finishes, the context is canceled, or the sink fails.
func (s *Service) Stream(ctx context.Context, req Request, sink fanout.Sink) error {
	if req.Prompt == "" {
		return ErrEmptyPrompt
	}

	sessionID := uuid.NewString()
	log := s.log.With(logger.ID("session_id", sessionID), logger.Component("council"))

	sources := make([]fanout.Source, 0, len(s.personas))
	for _, p := range s.personas {
		if req.Model != "" {
			p.Model = req.Model
		}
		producer, err := s.factory(ctx, p, req.Prompt)
		if err != nil {
			return fmt.Errorf("producer %q: %w", p.Key, err)
		}
		sources = append(sources, fanout.Source{Key: p.Key, Producer: producer})
	}

	f, err := fanout.New(sources,
		fanout.WithFetchTimeout(s.fetchTimeout),
		fanout.WithRecorder(s.recorder),
		fanout.WithLogger(log),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	log.InfoContext(ctx, "session started", slog.Int("personas", len(sources)))

	if err := f.Run(ctx, sink); err != nil {
		log.ErrorContext(ctx, "session failed", logger.Error(err), logger.Elapsed(start))
		return err
	}

	log.InfoContext(ctx, "session finished", logger.Elapsed(start))
	return nil
}

// Personas returns the council lineup the service was built with.
func (s *Service) Personas() []persona.Persona {
	out := make([]persona.Persona, len(s.personas))
	copy(out, s.personas)
	return out
}
