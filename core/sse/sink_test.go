package sse_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilkit/council/core/fanout"
	"github.com/councilkit/council/core/sse"
)

// noFlushWriter hides the recorder's Flusher implementation.
type noFlushWriter struct {
	header http.Header
	status int
}

func (w *noFlushWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *noFlushWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *noFlushWriter) WriteHeader(status int)      { w.status = status }

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("sets_sse_headers_and_preamble", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		sink, err := sse.New(w, sse.WithoutKeepAlive())
		require.NoError(t, err)
		require.NoError(t, sink.Close(context.Background()))

		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
		assert.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), ": connected\n\n"))
	})

	t.Run("reconnect_hint", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		sink, err := sse.New(w, sse.WithoutKeepAlive(), sse.WithReconnectTime(5000))
		require.NoError(t, err)
		require.NoError(t, sink.Close(context.Background()))

		assert.Contains(t, w.Body.String(), "retry: 5000\n\n")
	})

	t.Run("rejects_non_flushing_writer", func(t *testing.T) {
		t.Parallel()

		_, err := sse.New(&noFlushWriter{})
		require.ErrorIs(t, err, sse.ErrStreamingUnsupported)
	})
}

func TestSink_Write(t *testing.T) {
	t.Parallel()

	t.Run("chunk_frame_format", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		sink, err := sse.New(w, sse.WithoutKeepAlive())
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, sink.Write(ctx, fanout.Message{
			Persona: "logic",
			Type:    fanout.TypeChunk,
			Content: "first things first",
		}))
		require.NoError(t, sink.Write(ctx, fanout.Message{Type: fanout.TypeComplete}))
		require.NoError(t, sink.Close(ctx))

		body := w.Body.String()
		assert.Contains(t, body,
			`data: {"persona":"logic","type":"persona_chunk","content":"first things first"}`+"\n\n")
		assert.Contains(t, body, `data: {"type":"complete"}`+"\n\n")
		assert.True(t, strings.HasSuffix(body, "\n\n"), "frames must end with a blank line")
	})

	t.Run("event_name", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		sink, err := sse.New(w, sse.WithoutKeepAlive(), sse.WithEventName("council"))
		require.NoError(t, err)

		require.NoError(t, sink.Write(context.Background(), fanout.Message{Type: fanout.TypeComplete}))
		assert.Contains(t, w.Body.String(), "event: council\n")
	})

	t.Run("write_after_close_fails", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		sink, err := sse.New(w, sse.WithoutKeepAlive())
		require.NoError(t, err)
		require.NoError(t, sink.Close(context.Background()))

		err = sink.Write(context.Background(), fanout.Message{Type: fanout.TypeComplete})
		require.ErrorIs(t, err, sse.ErrSinkClosed)
	})

	t.Run("canceled_context_rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		sink, err := sse.New(w, sse.WithoutKeepAlive())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, sink.Write(ctx, fanout.Message{Type: fanout.TypeComplete}), context.Canceled)
	})
}

func TestSink_KeepAlive(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	sink, err := sse.New(w, sse.WithKeepAlive(30*time.Millisecond))
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, sink.Close(context.Background()))

	assert.Contains(t, w.Body.String(), ": keepalive\n\n")
}

func TestSink_DoubleCloseFails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	sink, err := sse.New(w, sse.WithoutKeepAlive())
	require.NoError(t, err)

	require.NoError(t, sink.Close(context.Background()))
	require.ErrorIs(t, sink.Close(context.Background()), sse.ErrSinkClosed)
}
