package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)
	return database
}

// memoryBlobs keeps uploads in memory and rejects bodies reading "fail".
type memoryBlobs struct {
	mu      sync.Mutex
	objects map[string]string
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: make(map[string]string)}
}

func (b *memoryBlobs) Upload(_ context.Context, bucket, key string, body io.Reader, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if string(data) == "fail" {
		return errors.New("bucket unavailable")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[bucket+"/"+key] = string(data)
	return nil
}

func (b *memoryBlobs) Delete(_ context.Context, bucket, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, bucket+"/"+key)
	return nil
}

func (b *memoryBlobs) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
