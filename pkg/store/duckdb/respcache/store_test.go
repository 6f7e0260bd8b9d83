package respcache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/price-atlas/pkg/models/store"
	"github.com/de-tools/price-atlas/pkg/store/duckdb"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return &fixture{db: db, store: s}
}

func entry(url string, fetchedAt time.Time, ttl time.Duration) store.CacheEntry {
	return store.CacheEntry{
		URL:       url,
		Body:      []byte(`{"Items":[]}`),
		FetchedAt: fetchedAt,
		ExpiresAt: fetchedAt.Add(ttl),
	}
}

func TestCacheStore_PutGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	fetched := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, f.store.Put(ctx, entry("https://example.com/page1", fetched, time.Hour)))

	got, err := f.store.Get(ctx, "https://example.com/page1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "https://example.com/page1", got.URL)
	assert.Equal(t, []byte(`{"Items":[]}`), got.Body)
	assert.WithinDuration(t, fetched, got.FetchedAt, time.Second)
	assert.WithinDuration(t, fetched.Add(time.Hour), got.ExpiresAt, time.Second)
}

func TestCacheStore_MissingURL(t *testing.T) {
	f := setupFixture(t)

	got, err := f.store.Get(context.Background(), "https://example.com/unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheStore_PutReplaces(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	fetched := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := entry("https://example.com/page1", fetched, time.Hour)
	require.NoError(t, f.store.Put(ctx, first))

	second := first
	second.Body = []byte(`{"Items":[],"Count":1}`)
	second.FetchedAt = fetched.Add(2 * time.Hour)
	second.ExpiresAt = fetched.Add(3 * time.Hour)
	require.NoError(t, f.store.Put(ctx, second))

	got, err := f.store.Get(ctx, "https://example.com/page1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.Body, got.Body)
	assert.WithinDuration(t, second.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestCacheStore_Purge(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, f.store.Put(ctx, entry("https://example.com/stale", now.Add(-48*time.Hour), time.Hour)))
	require.NoError(t, f.store.Put(ctx, entry("https://example.com/fresh", now, time.Hour)))

	removed, err := f.store.Purge(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	stale, err := f.store.Get(ctx, "https://example.com/stale")
	require.NoError(t, err)
	assert.Nil(t, stale)

	fresh, err := f.store.Get(ctx, "https://example.com/fresh")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}
