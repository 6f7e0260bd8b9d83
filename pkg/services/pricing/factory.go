package pricing

import (
	"fmt"
	"time"

	"github.com/de-tools/price-atlas/pkg/store/duckdb"
	"github.com/de-tools/price-atlas/pkg/store/duckdb/respcache"
)

// Settings configure a catalog client backed by the durable response cache.
type Settings struct {
	CachePath         string
	CacheTTL          time.Duration
	Timeout           time.Duration
	MaxAttempts       int
	BackoffMultiplier float64
	Endpoint          string
}

// NewCachedClient opens the response cache at settings.CachePath and wires a
// Client through it. The returned closer releases the cache handle.
func NewCachedClient(settings Settings) (*Client, func() error, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.CachePath})
	if err != nil {
		return nil, nil, fmt.Errorf("open response cache: %w", err)
	}

	cache, err := respcache.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create response cache store: %w", err)
	}

	transport := NewTransport(cache, TransportConfig{
		Timeout:           settings.Timeout,
		MaxAttempts:       settings.MaxAttempts,
		BackoffMultiplier: settings.BackoffMultiplier,
		CacheTTL:          settings.CacheTTL,
	})

	client := NewClient(transport, ClientConfig{Endpoint: settings.Endpoint})
	return client, db.Close, nil
}
