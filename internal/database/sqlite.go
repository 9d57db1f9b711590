package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a DB backed by an embedded SQLite file (modernc.org/sqlite, no
// CGO). It is meant for local development and tests; the schema is created
// on open.
type SQLite struct {
	db *sql.DB
	sqlQuerier
}

func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: SQLite serializes writers anyway, and pragmas are
	// per connection.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, sqlQuerier: sqlQuerier{q: db}}

	if err := s.configurePragmas(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLite) configurePragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLite) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(sqlQuerier{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS medecins (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS patients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	doctorid INTEGER NOT NULL REFERENCES medecins(id),
	name TEXT NOT NULL,
	age INTEGER NOT NULL,
	sex TEXT NOT NULL,
	glucose REAL NOT NULL,
	bmi REAL NOT NULL,
	bloodpressure REAL NOT NULL,
	pedigree REAL NOT NULL,
	result INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS predictions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	patientid INTEGER NOT NULL REFERENCES patients(id),
	result INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_patients_doctor_created ON patients(doctorid, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_predictions_patient ON predictions(patientid);
`

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx.
type sqlQuerier struct {
	q interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
		QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	}
}

func (s sqlQuerier) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	query, args, err := rebind(query, args)
	if err != nil {
		return 0, err
	}
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s sqlQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	query, args, err := rebind(query, args)
	if err != nil {
		return errRow{err: err}
	}
	return sqlRow{row: s.q.QueryRowContext(ctx, query, args...)}
}

func (s sqlQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	query, args, err := rebind(query, args)
	if err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: rows}, nil
}

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	targets, finish := timeTargets(dest)
	if err := r.row.Scan(targets...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRows
		}
		return err
	}
	return finish()
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool { return r.rows.Next() }
func (r sqlRows) Err() error { return r.rows.Err() }
func (r sqlRows) Close()     { _ = r.rows.Close() }

func (r sqlRows) Scan(dest ...any) error {
	targets, finish := timeTargets(dest)
	if err := r.rows.Scan(targets...); err != nil {
		return err
	}
	return finish()
}

// timeTargets swaps *time.Time destinations for raw holders, since SQLite
// may hand DATETIME columns back as text.
func timeTargets(dest []any) ([]any, func() error) {
	var pending []func() error
	targets := make([]any, len(dest))
	for i, d := range dest {
		tp, ok := d.(*time.Time)
		if !ok {
			targets[i] = d
			continue
		}
		var raw any
		targets[i] = &raw
		pending = append(pending, func() error {
			t, err := parseTime(raw)
			if err != nil {
				return err
			}
			*tp = t
			return nil
		})
	}
	return targets, func() error {
		for _, f := range pending {
			if err := f(); err != nil {
				return err
			}
		}
		return nil
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(v any) (time.Time, error) {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("cannot scan %T into time.Time", v)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", s)
}

// rebind turns $n placeholders into SQLite's ? and orders the arguments to
// match, so the same statement text runs on both backends.
func rebind(query string, args []any) (string, []any, error) {
	var b strings.Builder
	b.Grow(len(query))
	out := make([]any, 0, len(args))
	inQuote := false

	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch == '\'' {
			inQuote = !inQuote
		}
		if ch != '$' || inQuote {
			b.WriteByte(ch)
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte(ch)
			continue
		}
		n, err := strconv.Atoi(query[i+1 : j])
		if err != nil || n < 1 || n > len(args) {
			return "", nil, fmt.Errorf("placeholder %s out of range (%d args)", query[i:j], len(args))
		}
		b.WriteByte('?')
		out = append(out, args[n-1])
		i = j - 1
	}

	return b.String(), out, nil
}
