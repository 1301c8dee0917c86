package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         UUID PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS captains (
	id               UUID PRIMARY KEY,
	first_name       TEXT NOT NULL,
	last_name        TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL UNIQUE,
	password         TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'inactive',
	vehicle_color    TEXT NOT NULL,
	vehicle_plate    TEXT NOT NULL,
	vehicle_capacity INTEGER NOT NULL CHECK (vehicle_capacity >= 1),
	vehicle_type     TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the account tables if they do not exist yet.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
