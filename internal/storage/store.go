// Package storage keeps calculation responses as opaque JSON blobs keyed by
// calculation id.
package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("calculation not found")

type Record struct {
	CalculationID string
	TenantID      string
	CreatedAt     time.Time
	Blob          []byte
}

type ResultStore interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, calculationID string) (Record, error)
	Close() error
}

// Open returns a SQLite store when path is set and an in-memory store
// holding at most maxEntries results otherwise.
func Open(path string, maxEntries int) (ResultStore, error) {
	if path == "" {
		return NewMemory(maxEntries), nil
	}
	return OpenSQLite(path)
}
