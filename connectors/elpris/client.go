// Package elpris fetches Swedish day-ahead electricity prices from the
// elprisetjustnu.se API.
package elpris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/solbatt/solbatt/core/model"
	"github.com/solbatt/solbatt/infra/logger"
)

const defaultBaseURL = "https://www.elprisetjustnu.se/api/v1/prices"

// Client fetches day-ahead spot prices for one bidding area.
type Client struct {
	baseURL string
	area    string
	http    *http.Client
	now     func() time.Time
	log     logger.Logger
}

// NewClient creates a client for the SE3 area unless overridden by options.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: defaultBaseURL,
		area:    "SE3",
		http:    &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
		log:     logger.New("elpris"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FetchDayAhead returns today's prices plus tomorrow's when already
// published. Tomorrow's feed goes live around 13:00 CET; a 404 for it is
// not an error.
func (c *Client) FetchDayAhead(ctx context.Context) ([]PriceEntry, error) {
	today := c.now()
	entries, found, err := c.fetchDay(ctx, today)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no prices published for %s", today.Format("2006-01-02"))
	}

	tomorrow, found, err := c.fetchDay(ctx, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if found {
		entries = append(entries, tomorrow...)
	} else {
		c.log.Debugf("tomorrow's prices not yet published")
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].TimeStart.Before(entries[j].TimeStart) })
	return entries, nil
}

func (c *Client) fetchDay(ctx context.Context, day time.Time) ([]PriceEntry, bool, error) {
	url := fmt.Sprintf("%s/%s_%s.json", c.baseURL, day.Format("2006/01-02"), c.area)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	var entries []PriceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}
	return entries, true, nil
}

// AlignPrices maps the fetched entries onto a slot grid starting at start,
// attaching the tariff to each slot. Every slot must be covered by an entry.
func AlignPrices(entries []PriceEntry, start time.Time, slots int, slotDur time.Duration, tariff model.Tariff) ([]model.Price, error) {
	prices := make([]model.Price, slots)
	for i := range prices {
		ts := start.Add(time.Duration(i) * slotDur)
		found := false
		for _, e := range entries {
			if !ts.Before(e.TimeStart) && ts.Before(e.TimeEnd) {
				prices[i] = model.NewPrice(e.SEKPerKWh, tariff)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no price covers slot starting %s", ts.Format(time.RFC3339))
		}
	}
	return prices, nil
}
