// Package wsink adapts a WebSocket connection into a fanout.Sink for
// clients that prefer a bidirectional transport over Server-Sent Events.
//
// Each fanout message becomes one JSON text frame with the same shape as
// the SSE payloads. Upgrade performs the handshake:
//
//	sink, err := wsink.Upgrade(w, r, wsink.WithAllowAnyOrigin())
//	if err != nil {
//		return // handshake already wrote the HTTP error
//	}
//	err = fo.Run(r.Context(), sink)
package wsink
