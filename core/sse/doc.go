// Package sse adapts an http.ResponseWriter into a fanout.Sink that speaks
// Server-Sent Events.
//
// The wire format is one JSON object per data frame:
//
//	data: {"persona":"logic","type":"persona_chunk","content":"..."}
//	data: {"persona":"logic","type":"persona_complete","latencyMs":412}
//	data: {"persona":"prudent","type":"error","content":"..."}
//	data: {"type":"complete"}
//
// New writes the SSE headers and an initial ": connected" comment before
// returning, so construct the sink only once the handler is committed to
// streaming. Keep-alive comments are emitted on a ticker while the stream
// is idle; they share a mutex with event writes so frames never interleave.
//
//	sink, err := sse.New(w, sse.WithKeepAlive(15*time.Second))
//	if err != nil {
//		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
//		return
//	}
//	err = fo.Run(r.Context(), sink)
package sse
