// Package billing provides fanout.UsageRecorder implementations.
//
// The fanout guarantees at-most-once forwarding per producer per session,
// so recorders here only need to persist, not deduplicate.
//
// Three backends are available:
//
//   - Memory: in-process, for tests and single-instance deployments.
//   - Redis: HINCRBY counters per producer key, pipelined, optional TTL.
//   - Postgres: insert-only ledger table for audit-grade accounting.
//
// Example:
//
//	recorder, err := billing.NewRedis(client, billing.WithTTL(31*24*time.Hour))
//	if err != nil {
//		return err
//	}
//	fo, err := fanout.New(sources, fanout.WithRecorder(recorder))
package billing
