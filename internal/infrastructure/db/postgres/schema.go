package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/uptrace/bun"
)

// schema holds the DDL the repositories rely on. Statements are idempotent
// and run in order at startup. Two constraints carry invariants the code
// alone cannot enforce under concurrency:
//   - the partial unique index on open bids makes the one-open-bid-per-
//     (developer, project) rule hold even when two submissions race past the
//     service-level check; the losing insert fails inside the debit
//     transaction and rolls the debit back.
//   - the unique order_ref on token_orders anchors the credit idempotency
//     key the conditional capture updates against.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                  text PRIMARY KEY,
		email               text NOT NULL UNIQUE,
		display_name        text NOT NULL,
		avatar_url          text NOT NULL DEFAULT '',
		role                text NOT NULL,
		verification_status text NOT NULL,
		bid_tokens          integer NOT NULL DEFAULT 0 CHECK (bid_tokens >= 0),
		project_tokens      integer NOT NULL DEFAULT 0 CHECK (project_tokens >= 0),
		created_at          timestamptz NOT NULL,
		updated_at          timestamptz NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          text PRIMARY KEY,
		owner_id    text NOT NULL REFERENCES users (id),
		title       text NOT NULL,
		description text NOT NULL DEFAULT '',
		budget_usd  integer NOT NULL,
		status      text NOT NULL,
		created_at  timestamptz NOT NULL,
		updated_at  timestamptz NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bids (
		id           text PRIMARY KEY,
		project_id   text NOT NULL REFERENCES projects (id),
		developer_id text NOT NULL REFERENCES users (id),
		amount_usd   integer NOT NULL,
		pitch        text NOT NULL DEFAULT '',
		status       text NOT NULL,
		created_at   timestamptz NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS bids_one_open_per_pair
		ON bids (project_id, developer_id)
		WHERE status = 'open'`,

	`CREATE TABLE IF NOT EXISTS token_orders (
		id           text PRIMARY KEY,
		user_id      text NOT NULL REFERENCES users (id),
		kind         text NOT NULL,
		quantity     integer NOT NULL,
		amount_paise integer NOT NULL,
		order_ref    text NOT NULL UNIQUE,
		payment_ref  text NOT NULL DEFAULT '',
		status       text NOT NULL,
		created_at   timestamptz NOT NULL,
		captured_at  timestamptz
	)`,

	`CREATE INDEX IF NOT EXISTS projects_owner_idx ON projects (owner_id)`,
	`CREATE INDEX IF NOT EXISTS bids_project_idx ON bids (project_id)`,
}

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, db *bun.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
