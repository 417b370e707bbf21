// Package server provides an HTTP server wrapper with graceful shutdown,
// functional options, and environment-driven configuration.
//
// The defaults are tuned for streaming workloads: the write timeout is
// disabled so long-lived SSE and WebSocket responses are never cut off,
// while read and idle timeouts stay bounded.
//
// Basic usage:
//
//	srv := server.New(":8080", server.WithLogger(log))
//	if err := srv.Start(ctx, mux); err != nil && !errors.Is(err, context.Canceled) {
//		return err
//	}
//
// Or from environment configuration:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg)
//
// Start blocks until the context is canceled or the listener fails; call
// Stop for graceful shutdown, or use Run with an errgroup for coordinated
// lifecycle management.
package server
