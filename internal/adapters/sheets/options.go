package sheets

import (
	"net/http"
	"strings"
	"time"

	"github.com/okian/cadenas/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithRange sets the A1 range to read.
func WithRange(rng string) Option {
	return func(c *Client) {
		if rng != "" {
			c.rng = rng
		}
	}
}

// WithEndpoint points the client at a different API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the transport. The api key is not attached to
// requests made through a custom client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each Fetch call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMinInterval spaces consecutive fetches at least d apart.
// Zero removes the limit.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}
