package minecraft

import "net/http"

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithRetryOn429(enabled bool) Option {
	return func(c *Client) { c.retry429 = enabled }
}
