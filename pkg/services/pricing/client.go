package pricing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/de-tools/price-atlas/pkg/models/api"
	"github.com/de-tools/price-atlas/pkg/models/domain"
)

// Client reads the retail price catalog through a cache-backed transport.
type Client struct {
	transport *Transport
	endpoint  string
}

type ClientConfig struct {
	// Endpoint overrides the catalog endpoint, mainly for tests.
	Endpoint string
}

func NewClient(transport *Transport, cfg ClientConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Client{transport: transport, endpoint: cfg.Endpoint}
}

// Items walks every result page for q and returns the raw catalog items in
// page order, without savings-plan expansion.
func (c *Client) Items(ctx context.Context, q Query) ([]api.Item, error) {
	var items []api.Item

	pager := c.NewPager(q)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}

	return items, nil
}

// Prices walks every result page for q and returns the normalized price
// records in page order.
func (c *Client) Prices(ctx context.Context, q Query) ([]domain.PriceRecord, error) {
	var records []domain.PriceRecord

	pages := 0
	pager := c.NewPager(q)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		pages++

		for _, item := range page.Items {
			expanded, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			records = append(records, expanded...)
		}
	}

	zerolog.Ctx(ctx).Info().
		Str("currency", q.CurrencyCode).
		Int("pages", pages).
		Int("records", len(records)).
		Msg("completed catalog walk")

	return records, nil
}
