// Package tariff fetches day-ahead hourly prices from the utility
// provider's API. When the fetch fails the caller falls back to the
// configured preset, so a provider outage never blocks planning.
package tariff

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kilianp07/hems/auth"
	"github.com/kilianp07/hems/core/model"
)

// Config selects the provider endpoint and its credentials.
type Config struct {
	URL  string    `json:"url"`
	Auth auth.Conf `json:"auth"`
}

// Client retrieves day-ahead tariffs.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *auth.ClientCred
}

// New returns a Client for the configured provider.
func New(cfg Config) *Client {
	return &Client{
		baseURL: cfg.URL,
		http:    &http.Client{Timeout: 10 * time.Second},
		creds:   auth.NewClientCred(cfg.Auth),
	}
}

// response is the provider's wire format: one price per slot of the day.
type response struct {
	Prices []float64 `json:"prices"`
}

// DayAhead fetches the hourly price series for the given day.
func (c *Client) DayAhead(ctx context.Context, day time.Time) (model.PriceSchedule, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return model.PriceSchedule{}, fmt.Errorf("tariff url: %w", err)
	}
	q := u.Query()
	q.Set("date", day.Format("2006-01-02"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.PriceSchedule{}, fmt.Errorf("tariff request: %w", err)
	}
	if err := c.creds.SetAuthHeader(ctx, req); err != nil {
		return model.PriceSchedule{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.PriceSchedule{}, fmt.Errorf("tariff fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return model.PriceSchedule{}, fmt.Errorf("tariff fetch: unexpected status %s", resp.Status)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.PriceSchedule{}, fmt.Errorf("tariff decode: %w", err)
	}
	return model.NewPriceSchedule(body.Prices)
}
