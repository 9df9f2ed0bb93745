package elpris

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures the Client.
type Option func(*Client) error

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		if u == "" {
			return fmt.Errorf("base url must not be empty")
		}
		c.baseURL = u
		return nil
	}
}

// WithArea selects the bidding area, e.g. SE1..SE4.
func WithArea(area string) Option {
	return func(c *Client) error {
		if area == "" {
			return fmt.Errorf("area must not be empty")
		}
		c.area = area
		return nil
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = h
		return nil
	}
}

// WithClock replaces the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return fmt.Errorf("clock must not be nil")
		}
		c.now = now
		return nil
	}
}
