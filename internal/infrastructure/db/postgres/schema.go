package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema evolution proper lives in an external migration tool; Bootstrap only
// guarantees the tables exist so a fresh database is immediately usable.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT        NOT NULL UNIQUE,
		email         TEXT        NOT NULL DEFAULT '',
		password_hash TEXT        NOT NULL,
		role          TEXT        NOT NULL DEFAULT 'user',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS specialists (
		id         BIGSERIAL PRIMARY KEY,
		last_name  TEXT  NOT NULL,
		first_name TEXT  NOT NULL,
		avatar     BYTEA
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT             NOT NULL,
		description    TEXT             NOT NULL,
		price          DOUBLE PRECISION NOT NULL,
		execution_time TEXT             NOT NULL,
		image          BYTEA
	)`,
}

// Bootstrap creates the application tables when they do not exist yet.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
