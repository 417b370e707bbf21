package persona_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilkit/council/core/fanout"
	"github.com/councilkit/council/core/persona"
)

func TestLorem_EmitsConfiguredWordCount(t *testing.T) {
	t.Parallel()

	p := persona.Persona{Key: "logic", Model: "lorem-1"}
	producer := persona.NewLorem(p, "should we rewrite it",
		persona.WithLoremWords(5),
		persona.WithLoremDelay(0),
	)

	ctx := context.Background()
	var words int
	for {
		event, err := producer.Next(ctx)
		require.NoError(t, err)

		if event.Done != nil {
			assert.Equal(t, 5, words)
			assert.Equal(t, 4, event.Done.PromptTokens)
			assert.Equal(t, 5, event.Done.CompletionTokens)
			assert.Equal(t, "lorem-1", event.Done.Model)
			return
		}

		require.NotEmpty(t, event.Text)
		assert.True(t, strings.HasSuffix(event.Text, " "))
		words++
	}
}

func TestLorem_CancelInterruptsDelay(t *testing.T) {
	t.Parallel()

	producer := persona.NewLorem(persona.Persona{Key: "prudent"}, "q",
		persona.WithLoremDelay(time.Minute),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := producer.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLorem_DrivesFanoutSession(t *testing.T) {
	t.Parallel()

	personas := persona.DefaultCouncil("lorem-1")
	sources := make([]fanout.Source, 0, len(personas))
	for _, p := range personas {
		sources = append(sources, fanout.Source{
			Key: p.Key,
			Producer: persona.NewLorem(p, "is the monolith fine",
				persona.WithLoremWords(3),
				persona.WithLoremDelay(0),
			),
		})
	}

	recorder := &countingRecorder{}
	f, err := fanout.New(sources, fanout.WithRecorder(recorder))
	require.NoError(t, err)

	sink := &collectSink{}
	require.NoError(t, f.Run(context.Background(), sink))

	require.True(t, sink.closed)
	require.NotEmpty(t, sink.msgs)
	assert.Equal(t, fanout.TypeComplete, sink.msgs[len(sink.msgs)-1].Type)

	completes := 0
	for _, msg := range sink.msgs {
		if msg.Type == fanout.TypePersonaComplete {
			completes++
			assert.GreaterOrEqual(t, msg.LatencyMs, int64(0))
		}
	}
	assert.Equal(t, len(personas), completes)
	assert.Equal(t, len(personas), recorder.count)
}

type collectSink struct {
	msgs   []fanout.Message
	closed bool
}

func (s *collectSink) Write(_ context.Context, msg fanout.Message) error {
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *collectSink) Close(context.Context) error {
	s.closed = true
	return nil
}

type countingRecorder struct {
	count int
}

func (r *countingRecorder) Record(_ context.Context, _ string, _ fanout.Usage) error {
	r.count++
	return nil
}
