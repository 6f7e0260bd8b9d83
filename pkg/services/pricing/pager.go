package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/de-tools/price-atlas/pkg/models/api"
)

const (
	// DefaultEndpoint is the anonymous retail prices endpoint.
	DefaultEndpoint = "https://prices.azure.com/api/retail/prices"

	DefaultAPIVersion = "2023-01-01-preview"

	// DefaultMaxPages is high enough to walk any catalog to its natural end.
	DefaultMaxPages = 9999999
)

// Query describes one pagination run against the retail prices endpoint.
type Query struct {
	CurrencyCode string

	// Filter is an optional raw filter expression, e.g.
	// "serviceName eq 'Virtual Machines'".
	Filter string

	APIVersion string

	// MaxPages caps the number of pages fetched. Zero or negative yields no
	// pages; use DefaultMaxPages to walk the catalog to its natural end.
	MaxPages int
}

func (q Query) firstPageURL(endpoint string) string {
	version := q.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}

	v := url.Values{}
	v.Set("api-version", version)
	v.Set("currencyCode", fmt.Sprintf("'%s'", q.CurrencyCode))
	if q.Filter != "" {
		v.Set("$filter", q.Filter)
	}
	return endpoint + "?" + v.Encode()
}

// Pager walks the cursor-linked result pages of one Query, strictly
// sequentially. It is single-pass: once More reports false it cannot be
// rewound. Start a new Pager to read the same data again; the response cache
// underneath makes a re-walk cheap.
type Pager struct {
	transport *Transport
	next      string
	fetched   int
	maxPages  int
}

// NewPager prepares a page walk for q. Nothing is fetched until NextPage.
func (c *Client) NewPager(q Query) *Pager {
	return &Pager{
		transport: c.transport,
		next:      q.firstPageURL(c.endpoint),
		maxPages:  q.MaxPages,
	}
}

// More reports whether another page can be fetched: the previous page carried
// a cursor and the page ceiling has not been reached.
func (p *Pager) More() bool {
	return p.next != "" && p.fetched < p.maxPages
}

// NextPage fetches the next result page. Transport failures propagate
// unchanged; pages fetched before the failure remain cached, so a later run
// resumes cheaply.
func (p *Pager) NextPage(ctx context.Context) (*api.Response, error) {
	if !p.More() {
		return nil, errors.New("no more pages")
	}

	pageURL := p.next
	body, err := p.transport.GetJSON(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var page api.Response
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &MalformedResponseError{URL: pageURL, Reason: fmt.Sprintf("decode page: %v", err)}
	}
	if page.Items == nil {
		return nil, &MalformedResponseError{URL: pageURL, Reason: "missing Items array"}
	}

	p.fetched++
	p.next = page.NextPageLink

	zerolog.Ctx(ctx).Debug().
		Int("page", p.fetched).
		Int("items", len(page.Items)).
		Bool("last", page.NextPageLink == "").
		Msg("fetched result page")

	return &page, nil
}
