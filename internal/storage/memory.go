package storage

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxEntries is used when a non-positive capacity is requested.
const DefaultMaxEntries = 1000

// Memory keeps at most a fixed number of results. Once full, saving a new
// calculation evicts the one that was saved least recently.
type Memory struct {
	records *lru.Cache[string, Record]
}

func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	// lru.New only fails for a non-positive size.
	records, _ := lru.New[string, Record](maxEntries)
	return &Memory{records: records}
}

func (m *Memory) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.CalculationID == "" {
		return fmt.Errorf("calculation id is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.Blob = append([]byte(nil), rec.Blob...)

	m.records.Add(rec.CalculationID, rec)
	return nil
}

// Get does not refresh the entry, so eviction follows save order.
func (m *Memory) Get(ctx context.Context, calculationID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	rec, ok := m.records.Peek(calculationID)
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.Blob = append([]byte(nil), rec.Blob...)
	return rec, nil
}

func (m *Memory) Len() int { return m.records.Len() }

func (m *Memory) Close() error {
	m.records.Purge()
	return nil
}
