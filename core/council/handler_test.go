package council_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilkit/council/core/council"
	"github.com/councilkit/council/core/fanout"
	"github.com/councilkit/council/core/persona"
)

func newTestService(t *testing.T) *council.Service {
	t.Helper()

	svc, err := council.New(persona.DefaultCouncil("lorem-1"), loremFactory())
	require.NoError(t, err)
	return svc
}

// decodeFrames parses the data payloads out of an SSE response body.
func decodeFrames(t *testing.T, body string) []fanout.Message {
	t.Helper()

	var msgs []fanout.Message
	for _, line := range strings.Split(body, "\n") {
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var msg fanout.Message
		require.NoError(t, json.Unmarshal([]byte(payload), &msg))
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestHandler_StreamsSession(t *testing.T) {
	t.Parallel()

	handler := council.Handler(newTestService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/council/stream",
		strings.NewReader(`{"prompt":"should we shard"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	msgs := decodeFrames(t, rec.Body.String())
	require.NotEmpty(t, msgs)
	assert.Equal(t, fanout.TypeComplete, msgs[len(msgs)-1].Type)

	chunks := 0
	for _, msg := range msgs {
		if msg.Type == fanout.TypeChunk {
			chunks++
			assert.NotEmpty(t, msg.Persona)
			assert.NotEmpty(t, msg.Content)
		}
	}
	assert.Positive(t, chunks)
}

func TestHandler_RejectsGet(t *testing.T) {
	t.Parallel()

	handler := council.Handler(newTestService(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/council/stream", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_RejectsMissingPrompt(t *testing.T) {
	t.Parallel()

	handler := council.Handler(newTestService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/council/stream",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "prompt is required")
}

func TestHandler_RejectsMalformedBody(t *testing.T) {
	t.Parallel()

	handler := council.Handler(newTestService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/council/stream",
		strings.NewReader(`{"prompt":`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFactoryFor(t *testing.T) {
	t.Parallel()

	t.Run("lorem always available", func(t *testing.T) {
		t.Parallel()

		factory, err := council.Factories{}.FactoryFor(council.ProviderLorem)
		require.NoError(t, err)
		assert.NotNil(t, factory)
	})

	t.Run("unconfigured client rejected", func(t *testing.T) {
		t.Parallel()

		_, err := council.Factories{}.FactoryFor(council.ProviderOpenAI)
		require.ErrorIs(t, err, council.ErrUnknownProvider)
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		t.Parallel()

		_, err := council.Factories{}.FactoryFor("cohere")
		require.ErrorIs(t, err, council.ErrUnknownProvider)
	})
}
