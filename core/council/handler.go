package council

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/councilkit/council/core/logger"
	"github.com/councilkit/council/core/sse"
)

// maxRequestBody bounds the session request payload at 64 KiB.
const maxRequestBody = 64 << 10

// Handler returns an HTTP handler that runs a council session over SSE.
// It accepts a POST with a JSON body {"prompt": "...", "model": "..."} and
// streams the merged persona messages until the session completes or the
// client disconnects.
func Handler(svc *Service, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req Request
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Prompt == "" {
			writeError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		sink, err := sse.New(w)
		if err != nil {
			if errors.Is(err, sse.ErrStreamingUnsupported) {
				writeError(w, http.StatusInternalServerError, "streaming unsupported")
				return
			}
			log.ErrorContext(r.Context(), "open sse stream", logger.Error(err))
			return
		}

		// The keep-alive loop must not outlive the handler. A completed
		// session closes the sink itself, so this second close is a no-op.
		defer func() { _ = sink.Close(r.Context()) }()

		// Headers are already on the wire; stream errors can only be logged.
		if err := svc.Stream(r.Context(), req, sink); err != nil {
			log.ErrorContext(r.Context(), "council session", logger.Error(err))
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
