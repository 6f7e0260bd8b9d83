package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/de-tools/price-atlas/pkg/models/store"
)

const (
	DefaultTimeout           = 30 * time.Second
	DefaultMaxAttempts       = 4
	DefaultBackoffMultiplier = 2.0
	DefaultCacheTTL          = 24 * time.Hour
)

// DefaultRetryStatuses covers the rate-limit and server-error classes. Other
// 4xx responses indicate a malformed request (bad filter syntax, bad API
// version) and fail immediately.
var DefaultRetryStatuses = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// Cache is the durable response store the transport consults before the
// network. Get returns nil for an unknown URL; expiry is evaluated by the
// transport itself.
type Cache interface {
	Get(ctx context.Context, url string) (*store.CacheEntry, error)
	Put(ctx context.Context, entry store.CacheEntry) error
}

type TransportConfig struct {
	Timeout           time.Duration
	MaxAttempts       int
	BackoffMultiplier float64
	RetryStatuses     []int
	CacheTTL          time.Duration
}

func (c TransportConfig) withDefaults() TransportConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BackoffMultiplier <= 0 {
		c.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if len(c.RetryStatuses) == 0 {
		c.RetryStatuses = DefaultRetryStatuses
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

// Transport performs single logical GETs with caching and resilience. It is
// not safe for concurrent use; pagination is strictly sequential by design.
type Transport struct {
	client *retryablehttp.Client
	cache  Cache
	cfg    TransportConfig
	now    func() time.Time
}

func NewTransport(cache Cache, cfg TransportConfig) *Transport {
	t := &Transport{
		cache: cache,
		cfg:   cfg.withDefaults(),
		now:   time.Now,
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: t.cfg.Timeout}
	client.RetryMax = t.cfg.MaxAttempts - 1
	client.Logger = nil
	client.CheckRetry = t.checkRetry
	client.Backoff = t.backoff
	// Hand the final response back instead of discarding it so the caller can
	// report the status that exhausted the retries.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	t.client = client

	return t
}

// GetJSON resolves url to a raw JSON body, consulting the response cache
// before issuing a network call. Fresh bodies that parse as JSON are written
// back to the cache with the configured lifetime; malformed bodies are not.
func (t *Transport) GetJSON(ctx context.Context, url string) ([]byte, error) {
	log := zerolog.Ctx(ctx)

	entry, err := t.cache.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("read response cache: %w", err)
	}
	if entry != nil && t.now().Before(entry.ExpiresAt) {
		log.Debug().Str("url", url).Time("fetched_at", entry.FetchedAt).Msg("response cache hit")
		return entry.Body, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
			_ = resp.Body.Close()
		}
		return nil, &TransportError{URL: url, StatusCode: status, Attempts: t.cfg.MaxAttempts, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Attempts: t.attemptsFor(resp.StatusCode), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Attempts: t.attemptsFor(resp.StatusCode)}
	}

	if !json.Valid(body) {
		return nil, &MalformedResponseError{URL: url, Reason: "body is not valid JSON"}
	}

	fetched := t.now()
	err = t.cache.Put(ctx, store.CacheEntry{
		URL:       url,
		Body:      body,
		FetchedAt: fetched,
		ExpiresAt: fetched.Add(t.cfg.CacheTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("write response cache: %w", err)
	}

	log.Debug().Str("url", url).Int("bytes", len(body)).Msg("fetched and cached response")
	return body, nil
}

func (t *Transport) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		// Connection failures and timeouts retry like server errors.
		return true, nil
	}
	return t.retryable(resp.StatusCode), nil
}

// backoff waits backoffMultiplier^attempt seconds, unless the server supplied
// a usable Retry-After hint.
func (t *Transport) backoff(_, _ time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil {
		if hint := resp.Header.Get("Retry-After"); hint != "" {
			if secs, err := strconv.Atoi(hint); err == nil && secs >= 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return time.Duration(math.Pow(t.cfg.BackoffMultiplier, float64(attemptNum)) * float64(time.Second))
}

func (t *Transport) retryable(status int) bool {
	for _, code := range t.cfg.RetryStatuses {
		if status == code {
			return true
		}
	}
	return false
}

func (t *Transport) attemptsFor(status int) int {
	if t.retryable(status) {
		return t.cfg.MaxAttempts
	}
	return 1
}
