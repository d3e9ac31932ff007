package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func Open(databaseURL string, pool PoolConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db := bun.NewDB(sqlDB, pgdialect.New())
	return db, nil
}

func Close(db *bun.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id uuid PRIMARY KEY,
		name text NOT NULL UNIQUE,
		capacity integer NOT NULL CHECK (capacity > 0),
		floor text NOT NULL DEFAULT '',
		description text NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id uuid PRIMARY KEY,
		room_id uuid NOT NULL REFERENCES rooms (id),
		user_name text NOT NULL,
		title text NOT NULL,
		start_datetime timestamptz NOT NULL,
		end_datetime timestamptz NOT NULL,
		people_count integer NOT NULL CHECK (people_count > 0),
		created_at timestamptz NOT NULL,
		CHECK (start_datetime < end_datetime),
		CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
			room_id WITH =,
			tstzrange(start_datetime, end_datetime) WITH &&
		)
	)`,
	`CREATE TABLE IF NOT EXISTS measurements (
		id uuid PRIMARY KEY,
		temp double precision NOT NULL,
		hum double precision NOT NULL,
		pres double precision NOT NULL,
		motion boolean NOT NULL,
		timestamp timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS reservations_room_start_idx
		ON reservations (room_id, start_datetime)`,
	`CREATE INDEX IF NOT EXISTS measurements_timestamp_idx
		ON measurements (timestamp)`,
}

// EnsureSchema creates the tables and the room overlap exclusion constraint
// if they are missing. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
