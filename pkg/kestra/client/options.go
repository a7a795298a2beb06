package client

import (
	"io"
	"net/http"
	"time"
)

// Option is the optional parameter setting method.
type Option func(*Client)

// WithContextName selects a stored context by name instead of the default.
func WithContextName(name string) Option {
	return func(c *Client) {
		c.contextName = name
	}
}

// WithTransport sets the base transport of every HTTP client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// WithDump writes every request and response to w.
func WithDump(w io.Writer) Option {
	return func(c *Client) {
		c.dumpOut = w
	}
}

// WithTimeout overrides [DefaultTimeout].
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}
