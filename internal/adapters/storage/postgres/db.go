package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para un solo proceso de sync
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS measurement_groups (
	id          BIGINT PRIMARY KEY,
	measured_at TIMESTAMPTZ NOT NULL,
	category    INTEGER NOT NULL,
	attribution INTEGER NOT NULL,
	device_id   TEXT NULL,
	model       INTEGER NULL,
	synced_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS measurement_groups_measured_at_idx
	ON measurement_groups (measured_at, id);

CREATE TABLE IF NOT EXISTS measurements (
	group_id BIGINT NOT NULL REFERENCES measurement_groups (id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	type     INTEGER NOT NULL,
	value    DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (group_id, position)
);

CREATE TABLE IF NOT EXISTS sync_state (
	id        SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	last_sync TIMESTAMPTZ NOT NULL
);
`

// Migrate aplica el schema; es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
