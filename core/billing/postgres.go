package billing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/councilkit/council/core/fanout"
)

// DefaultUsageTable is the insert target for the Postgres recorder.
const DefaultUsageTable = "usage_records"

// Execer is the subset of pgxpool.Pool the recorder needs, kept small so
// callers can pass a pool, a connection, or a transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres appends usage events to an insert-only ledger table. Aggregation
// is left to SQL; the recorder itself never reads.
//
// Expected schema:
//
//	CREATE TABLE usage_records (
//		id                BIGSERIAL PRIMARY KEY,
//		producer_key      TEXT        NOT NULL,
//		prompt_tokens     INTEGER     NOT NULL,
//		completion_tokens INTEGER     NOT NULL,
//		model             TEXT        NOT NULL DEFAULT '',
//		recorded_at       TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Postgres struct {
	db    Execer
	table string
}

// PostgresOption configures the Postgres recorder.
type PostgresOption func(*Postgres)

// WithUsageTable overrides the default table name.
func WithUsageTable(table string) PostgresOption {
	return func(p *Postgres) {
		if table != "" {
			p.table = table
		}
	}
}

// NewPostgres creates a Postgres-backed recorder on an existing pool or
// transaction.
func NewPostgres(db Execer, opts ...PostgresOption) (*Postgres, error) {
	if db == nil {
		return nil, ErrNilClient
	}

	p := &Postgres{db: db, table: DefaultUsageTable}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Record implements Recorder.
func (p *Postgres) Record(ctx context.Context, producerKey string, usage fanout.Usage) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (producer_key, prompt_tokens, completion_tokens, model) VALUES ($1, $2, $3, $4)`,
		p.table,
	)

	if _, err := p.db.Exec(ctx, query,
		producerKey, usage.PromptTokens, usage.CompletionTokens, usage.Model,
	); err != nil {
		return fmt.Errorf("record usage in postgres: %w", err)
	}
	return nil
}
