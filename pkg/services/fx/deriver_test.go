package fx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/price-atlas/pkg/models/store"
	"github.com/de-tools/price-atlas/pkg/services/pricing"
)

type memCache struct {
	entries map[string]store.CacheEntry
}

func (m *memCache) Get(_ context.Context, url string) (*store.CacheEntry, error) {
	entry, ok := m.entries[url]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (m *memCache) Put(_ context.Context, entry store.CacheEntry) error {
	m.entries[entry.URL] = entry
	return nil
}

// fxServer prices the reference meter per currency; currencies without an
// entry return an empty page.
func fxServer(prices map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		currency := strings.Trim(r.URL.Query().Get("currencyCode"), "'")

		price, ok := prices[currency]
		if !ok {
			_, _ = w.Write([]byte(`{"Items":[],"NextPageLink":"","Count":0}`))
			return
		}

		fmt.Fprintf(w,
			`{"Items":[{"meterId":"M1","skuName":"Ref SKU","armRegionName":"eastus","currencyCode":%q,"unitPrice":%s,"retailPrice":%s,"type":"Consumption"}],"NextPageLink":"","Count":1}`,
			currency, price, price)
	}))
}

func newTestDeriver(srvURL string) *Deriver {
	cache := &memCache{entries: make(map[string]store.CacheEntry)}
	transport := pricing.NewTransport(cache, pricing.TransportConfig{
		Timeout:     5 * time.Second,
		MaxAttempts: 1,
		CacheTTL:    time.Hour,
	})
	client := pricing.NewClient(transport, pricing.ClientConfig{Endpoint: srvURL})

	return NewDeriver(client, Config{
		BaseCurrency:     "USD",
		ReferenceMeterID: "M1",
	})
}

func TestDeriver_Rates(t *testing.T) {
	srv := fxServer(map[string]string{
		"USD": "10.0",
		"EUR": "8.5",
		"JPY": "1475.0",
	})
	defer srv.Close()

	deriver := newTestDeriver(srv.URL)

	rates, err := deriver.Rates(context.Background(), []string{"EUR", "JPY"})
	require.NoError(t, err)
	require.Len(t, rates, 2)

	assert.Equal(t, "EUR", rates[0].CurrencyCode)
	assert.Equal(t, "USD", rates[0].BaseCurrency)
	assert.Equal(t, "M1", rates[0].MeterID)
	assert.True(t, rates[0].Rate.Equal(decimal.RequireFromString("0.85")),
		"1 USD buys 0.85 EUR, got %s", rates[0].Rate)

	assert.Equal(t, "JPY", rates[1].CurrencyCode)
	assert.True(t, rates[1].Rate.Equal(decimal.RequireFromString("147.5")))
}

func TestDeriver_UnmatchedCurrencySkipped(t *testing.T) {
	srv := fxServer(map[string]string{
		"USD": "10.0",
		"EUR": "8.5",
		// GBP: the reference meter is not priced there.
	})
	defer srv.Close()

	deriver := newTestDeriver(srv.URL)

	rates, err := deriver.Rates(context.Background(), []string{"GBP", "EUR"})
	require.NoError(t, err, "an unmatched currency is omitted, not fatal")
	require.Len(t, rates, 1)
	assert.Equal(t, "EUR", rates[0].CurrencyCode)
}

func TestDeriver_BaseCurrencyExcluded(t *testing.T) {
	srv := fxServer(map[string]string{"USD": "10.0"})
	defer srv.Close()

	deriver := newTestDeriver(srv.URL)

	rates, err := deriver.Rates(context.Background(), []string{"USD"})
	require.NoError(t, err)
	assert.Empty(t, rates)
}

func TestDeriver_MissingReferencePrice(t *testing.T) {
	srv := fxServer(map[string]string{"EUR": "8.5"})
	defer srv.Close()

	deriver := newTestDeriver(srv.URL)

	_, err := deriver.Rates(context.Background(), []string{"EUR"})
	require.Error(t, err, "no usable on-demand price for the reference meter in the base currency")
}
