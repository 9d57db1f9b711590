// Package database opens the relational store and runs parameterized
// statements against it. Statements use positional $n placeholders on every
// backend.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoRows is returned by Row.Scan when a single-row query matched nothing.
var ErrNoRows = errors.New("no rows in result set")

// Row is the result of a single-row query.
type Row interface {
	Scan(dest ...any) error
}

// Rows is the result of a multi-row query. Callers must Close it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier runs one statement at a time. Each call on a DB acquires a
// connection and releases it before returning (or, for Query, on Close).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// DB is a handle on the store shared by all requests.
type DB interface {
	Querier

	// WithTx runs fn inside a transaction. The transaction is committed when
	// fn returns nil and rolled back otherwise, including on panic.
	WithTx(ctx context.Context, fn func(q Querier) error) error
	Ping(ctx context.Context) error
	Close() error
}

// Options configures Open.
type Options struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// Open picks a backend from the URL scheme: postgres:// and postgresql://
// use a pgx pool, sqlite:// uses an embedded SQLite file.
func Open(ctx context.Context, opts Options) (DB, error) {
	switch {
	case strings.HasPrefix(opts.URL, "postgres://"), strings.HasPrefix(opts.URL, "postgresql://"):
		return NewPostgres(ctx, opts.URL, opts.MaxConns, opts.MinConns)
	case strings.HasPrefix(opts.URL, "sqlite://"):
		return NewSQLite(ctx, strings.TrimPrefix(opts.URL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", scheme(opts.URL))
	}
}

func scheme(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i]
	}
	return url
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
