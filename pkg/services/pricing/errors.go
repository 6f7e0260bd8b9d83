package pricing

import "fmt"

// TransportError reports an HTTP failure after retries were exhausted, or a
// client error that retrying cannot fix. StatusCode is zero when the request
// never produced a response.
type TransportError struct {
	URL        string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("GET %s: status %d after %d attempt(s): %v", e.URL, e.StatusCode, e.Attempts, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("GET %s: status %d after %d attempt(s)", e.URL, e.StatusCode, e.Attempts)
	default:
		return fmt.Sprintf("GET %s: failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response body that is not valid JSON, lacks
// the Items array, or carries an item without its identity fields. Such
// responses are never cached and never retried.
type MalformedResponseError struct {
	URL    string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("malformed response: %s", e.Reason)
	}
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Reason)
}
