package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]ResultStore {
	t.Helper()

	file, err := OpenSQLite(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	mem, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	all := map[string]ResultStore{
		"memory":        NewMemory(0),
		"sqlite file":   file,
		"sqlite memory": mem,
	}
	t.Cleanup(func() {
		for _, s := range all {
			_ = s.Close()
		}
	})
	return all
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			blob := []byte(`{"calculation_metadata":{"calculation_outcome":"SUCCESS"}}`)
			require.NoError(t, store.Save(ctx, Record{
				CalculationID: "calc-1",
				TenantID:      "tenant-a",
				CreatedAt:     created,
				Blob:          blob,
			}))

			rec, err := store.Get(ctx, "calc-1")
			require.NoError(t, err)
			assert.Equal(t, "tenant-a", rec.TenantID)
			assert.True(t, rec.CreatedAt.Equal(created))
			assert.JSONEq(t, string(blob), string(rec.Blob))
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, Record{CalculationID: "calc-1", TenantID: "a", Blob: []byte(`{"v":1}`)}))
			require.NoError(t, store.Save(ctx, Record{CalculationID: "calc-1", TenantID: "a", Blob: []byte(`{"v":2}`)}))

			rec, err := store.Get(ctx, "calc-1")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":2}`, string(rec.Blob))
			assert.False(t, rec.CreatedAt.IsZero())
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "nope")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestSaveRequiresID(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.Error(t, store.Save(context.Background(), Record{Blob: []byte(`{}`)}))
		})
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open("", 0)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(filepath.Join(t.TempDir(), "r.db"), 0)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLite{}, s)
}

func TestMemoryEvictsOldest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(3)

	for _, id := range []string{"calc-1", "calc-2", "calc-3"} {
		require.NoError(t, m.Save(ctx, Record{CalculationID: id, Blob: []byte(`{}`)}))
	}
	// Reads do not keep an entry alive.
	_, err := m.Get(ctx, "calc-1")
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, Record{CalculationID: "calc-4", Blob: []byte(`{}`)}))
	assert.Equal(t, 3, m.Len())

	_, err = m.Get(ctx, "calc-1")
	assert.True(t, errors.Is(err, ErrNotFound))
	for _, id := range []string{"calc-2", "calc-3", "calc-4"} {
		_, err := m.Get(ctx, id)
		assert.NoError(t, err, id)
	}
}

func TestMemoryDefaultCapacity(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	for i := 0; i < DefaultMaxEntries+10; i++ {
		require.NoError(t, m.Save(ctx, Record{CalculationID: fmt.Sprintf("calc-%d", i), Blob: []byte(`{}`)}))
	}
	assert.Equal(t, DefaultMaxEntries, m.Len())
}
