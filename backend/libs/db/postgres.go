package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Options tunes the connection pool. Zero values take defaults.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
	PingTimeout  time.Duration
}

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 2
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
	defaultPingTimeout  = 5 * time.Second
)

// ErrNoDSN is returned when no DSN is configured.
var ErrNoDSN = errors.New("db: empty DSN")

// NewPostgresDB opens a pgx/stdlib backed *sql.DB and pings it.
func NewPostgresDB(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrNoDSN
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(orDefault(opts.MaxOpenConns, defaultMaxOpenConns))
	db.SetMaxIdleConns(orDefault(opts.MaxIdleConns, defaultMaxIdleConns))
	db.SetConnMaxLifetime(defaultConnLifetime)
	db.SetConnMaxIdleTime(defaultConnIdleTime)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
