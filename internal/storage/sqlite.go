package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS calculation_results (
	calculation_id TEXT PRIMARY KEY,
	tenant_id      TEXT NOT NULL,
	created_at     INTEGER NOT NULL,
	blob           BLOB NOT NULL
)`

// SQLite persists calculation results in a single SQLite table.
type SQLite struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path. The special
// path ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// An in-memory database exists per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLite) Save(ctx context.Context, rec Record) error {
	if rec.CalculationID == "" {
		return fmt.Errorf("calculation id is required")
	}
	createdAt := rec.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO calculation_results (calculation_id, tenant_id, created_at, blob)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(calculation_id) DO UPDATE SET
		   tenant_id = excluded.tenant_id,
		   created_at = excluded.created_at,
		   blob = excluded.blob`,
		rec.CalculationID, rec.TenantID, createdAt.UnixMilli(), rec.Blob,
	)
	if err != nil {
		return fmt.Errorf("save calculation %s: %w", rec.CalculationID, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, calculationID string) (Record, error) {
	var (
		rec       Record
		createdAt int64
	)
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT calculation_id, tenant_id, created_at, blob
		 FROM calculation_results WHERE calculation_id = ?`,
		calculationID,
	)
	if err := row.Scan(&rec.CalculationID, &rec.TenantID, &createdAt, &rec.Blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get calculation %s: %w", calculationID, err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return rec, nil
}
