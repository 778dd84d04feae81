// Package workers fetches the per-wallet worker list from the pool API.
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Worker is one mining rig as reported by the pool.
type Worker struct {
	Name     string `json:"name"`
	LastSeen int64  `json:"last_seen"`
}

// Page is one slice of a wallet's worker list.
type Page struct {
	Wallet  string   `json:"wallet"`
	Total   int      `json:"total"`
	Active  int      `json:"active"`
	Workers []Worker `json:"workers"`
}

// Stats is the wallet summary used by the fast refresh.
type Stats struct {
	Wallet   string  `json:"wallet"`
	Hashrate float64 `json:"hashrate"`
	Balance  float64 `json:"balance"`
	Workers  int     `json:"workers"`
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Client talks to the pool's HTTP API.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "https://pool.example.com". A trailing slash is tolerated.
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Page fetches one page of workers for the wallet. limit is clamped to
// [1, 200] (0 means the default page size) and negative offsets are treated
// as 0, mirroring the server's own clamping.
func (c *Client) Page(ctx context.Context, wallet string, limit, offset int) (Page, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	endpoint := fmt.Sprintf("%s/api/wallet/%s/workers?%s", c.base, url.PathEscape(wallet), q.Encode())

	var page Page
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// Stats fetches the wallet summary.
func (c *Client) Stats(ctx context.Context, wallet string) (Stats, error) {
	endpoint := fmt.Sprintf("%s/api/wallet/%s", c.base, url.PathEscape(wallet))
	var stats Stats
	if err := c.getJSON(ctx, endpoint, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pool API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pool API returned %s for %s", resp.Status, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode pool API response: %w", err)
	}
	return nil
}
