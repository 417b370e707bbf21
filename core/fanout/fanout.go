package fanout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/councilkit/council/core/logger"
)

const (
	// DefaultSettleTimeout bounds how long Run waits for in-flight producer
	// fetches to unwind after cancellation or a sink failure.
	DefaultSettleTimeout = 5 * time.Second
)

// Fanout merges events from N independently paced producers into one output
// stream with no head-of-line blocking. Construct with New, execute with
// Run. A Fanout is single-use: Run consumes the producers' iterators.
type Fanout struct {
	sources       []Source
	fetchTimeout  time.Duration
	settleTimeout time.Duration
	recorder      UsageRecorder
	logger        *slog.Logger
}

// Option configures a Fanout.
type Option func(*Fanout)

// WithFetchTimeout bounds every individual producer fetch. A fetch that
// does not resolve in time is converted into that producer's error event,
// which keeps a stalled producer from hanging the whole session. Zero
// disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fanout) {
		if d > 0 {
			f.fetchTimeout = d
		}
	}
}

// WithSettleTimeout bounds the wait for in-flight fetches to unwind when
// the session aborts early.
func WithSettleTimeout(d time.Duration) Option {
	return func(f *Fanout) {
		if d > 0 {
			f.settleTimeout = d
		}
	}
}

// WithRecorder sets the usage recorder invoked once per completed producer.
func WithRecorder(r UsageRecorder) Option {
	return func(f *Fanout) {
		if r != nil {
			f.recorder = r
		}
	}
}

// WithLogger configures structured logging. Use a discard handler to
// silence it; that is also the default.
func WithLogger(log *slog.Logger) Option {
	return func(f *Fanout) {
		if log != nil {
			f.logger = log
		}
	}
}

// New validates the source list and builds a Fanout. It fails fast on an
// empty list and on duplicate producer keys, before any I/O happens.
func New(sources []Source, opts ...Option) (*Fanout, error) {
	if len(sources) == 0 {
		return nil, ErrNoProducers
	}

	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if _, ok := seen[src.Key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProducer, src.Key)
		}
		seen[src.Key] = struct{}{}
	}

	f := &Fanout{
		sources:       append([]Source(nil), sources...),
		settleTimeout: DefaultSettleTimeout,
		recorder:      NopRecorder{},
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// result tags a fetched event with the index of the producer it came from.
type result struct {
	idx int
	ev  Event
}

// Run merges the producers' events into the sink until every producer has
// settled, then writes the aggregate terminal message, forwards usage to
// the recorder, and closes the sink.
//
// Producer failures are isolated: they surface as per-producer error
// messages on the sink and never abort siblings. A sink write failure is
// terminal for the session and is returned from Run. Cancelling ctx stops
// all sink writes; usage already earned by completed producers is still
// forwarded.
func (f *Fanout) Run(ctx context.Context, sink Sink) error {
	if sink == nil {
		return ErrNilSink
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := len(f.sources)
	results := make(chan result) // unbuffered: one outstanding event per producer

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range f.sources {
		go f.pump(ctx, i, results, &wg)
	}

	var (
		start     = time.Now()
		states    = make([]producerState, n)
		usages    = make([]*Usage, n)
		remaining = n
	)

	for remaining > 0 {
		select {
		case <-ctx.Done():
			cancel()
			f.settle(&wg)
			return errors.Join(ctx.Err(), f.forward(ctx, usages))

		case r := <-results:
			src := f.sources[r.idx]
			if states[r.idx].settled() {
				// A settled producer must not emit again; drop the event
				// instead of letting a misbehaving iterator corrupt the
				// session bookkeeping.
				f.logger.WarnContext(ctx, "event from settled producer dropped",
					logger.ID("producer", src.Key))
				continue
			}

			var msg Message
			switch {
			case r.ev.Err != nil:
				states[r.idx] = stateFailed
				remaining--
				msg = Message{Persona: src.Key, Type: TypeError, Content: r.ev.Err.Error()}
				f.logger.DebugContext(ctx, "producer failed",
					logger.ID("producer", src.Key), logger.Error(r.ev.Err))

			case r.ev.Done != nil:
				states[r.idx] = stateCompleted
				remaining--
				u := *r.ev.Done
				usages[r.idx] = &u
				msg = Message{
					Persona:   src.Key,
					Type:      TypePersonaComplete,
					LatencyMs: time.Since(start).Milliseconds(),
				}

			default:
				states[r.idx] = stateRunning
				msg = Message{Persona: src.Key, Type: TypeChunk, Content: r.ev.Text}
			}

			if err := sink.Write(ctx, msg); err != nil {
				cancel()
				f.settle(&wg)
				return errors.Join(fmt.Errorf("sink write: %w", err), f.forward(ctx, usages))
			}
		}
	}

	var errs []error
	if err := sink.Write(ctx, Message{Type: TypeComplete}); err != nil {
		errs = append(errs, fmt.Errorf("sink write: %w", err))
	}
	if err := f.forward(ctx, usages); err != nil {
		errs = append(errs, err)
	}
	if err := sink.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("sink close: %w", err))
	}
	return errors.Join(errs...)
}

// pump serially fetches events for one producer and hands them to the merge
// loop. The unbuffered send doubles as backpressure: the next fetch is not
// issued until the merge loop has taken the previous event. The pump exits
// after the producer's terminal event, so a settled iterator is never
// called again.
func (f *Fanout) pump(ctx context.Context, idx int, results chan<- result, wg *sync.WaitGroup) {
	defer wg.Done()

	p := f.sources[idx].Producer
	for {
		ev := f.fetch(ctx, p)
		select {
		case results <- result{idx: idx, ev: ev}:
		case <-ctx.Done():
			return
		}
		if ev.terminal() {
			return
		}
	}
}

// fetch resolves one Next call, converting error returns, timeouts, and
// cancellation into events so a producer failure never escapes as a
// fanout-level failure. A timed-out Next is abandoned best-effort: its
// per-fetch context is canceled and its eventual result is discarded.
func (f *Fanout) fetch(ctx context.Context, p Producer) Event {
	fctx := ctx
	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	type outcome struct {
		ev  Event
		err error
	}

	out := make(chan outcome, 1)
	go func() {
		ev, err := p.Next(fctx)
		out <- outcome{ev: ev, err: err}
	}()

	var timeoutC <-chan time.Time
	if f.fetchTimeout > 0 {
		t := time.NewTimer(f.fetchTimeout)
		defer t.Stop()
		timeoutC = t.C
	}

	select {
	case o := <-out:
		if o.err != nil {
			return ErrorEvent(o.err)
		}
		return o.ev
	case <-timeoutC:
		return ErrorEvent(fmt.Errorf("%w after %s", ErrFetchTimeout, f.fetchTimeout))
	case <-ctx.Done():
		return ErrorEvent(ctx.Err())
	}
}

// forward hands each completed producer's usage to the recorder exactly
// once. It runs detached from the session context so that billing survives
// a client disconnect: the tokens were consumed regardless.
func (f *Fanout) forward(ctx context.Context, usages []*Usage) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for i, u := range usages {
		if u == nil {
			continue
		}
		key := f.sources[i].Key
		if err := f.recorder.Record(ctx, key, *u); err != nil {
			f.logger.ErrorContext(ctx, "usage forwarding failed",
				logger.ID("producer", key), logger.Error(err))
			errs = append(errs, fmt.Errorf("record usage for %q: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// settle waits for pump goroutines to unwind, bounded by the settle
// timeout. Producers that ignore cancellation are left behind and their
// eventual results are discarded.
func (f *Fanout) settle(wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(f.settleTimeout):
		f.logger.Warn("fanout settle timed out; abandoning in-flight fetches",
			logger.Duration(f.settleTimeout))
	}
}
