package moviesdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// Credentials supplies the two required authentication header values. The
// client never persists or logs the key.
type Credentials interface {
	APIKey() string
	APIHost() string
}

// StaticCredentials is the plain Credentials implementation for a fixed
// key/host pair.
type StaticCredentials struct {
	Key  string
	Host string
}

func (s StaticCredentials) APIKey() string  { return s.Key }
func (s StaticCredentials) APIHost() string { return s.Host }

// roundTrip issues one GET against path with the given query, attaching the
// authentication headers and enforcing the per-attempt timeout. It surfaces
// the raw status and body and never retries; retry policy lives one layer
// up in the client.
func (c *Client) roundTrip(ctx context.Context, path string, query url.Values) (int, []byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.creds.APIKey())
	req.Header.Set("X-RapidAPI-Host", c.creds.APIHost())
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", requestURL).Msg("Requesting")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, &Error{Kind: ErrTimeout, Err: err}
		}
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, &Error{Kind: ErrTimeout, Err: err}
		}
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
