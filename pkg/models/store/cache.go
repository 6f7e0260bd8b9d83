package store

import "time"

// CacheEntry is one previously seen HTTP response, keyed by the exact request
// URL. An entry is only usable while the current time is before ExpiresAt;
// after that it is indistinguishable from a miss.
type CacheEntry struct {
	URL       string
	Body      []byte
	FetchedAt time.Time
	ExpiresAt time.Time
}
