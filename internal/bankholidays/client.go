// Package bankholidays keeps the stored bank holiday list in step with a
// gov.uk style JSON feed.
package bankholidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const fetchTimeout = 30 * time.Second

var ErrDivisionNotFound = errors.New("bank holiday division not found")

// Event is a single holiday in the feed.
type Event struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
	Bunting bool   `json:"bunting"`
}

type division struct {
	Division string  `json:"division"`
	Events   []Event `json:"events"`
}

// Fetcher returns the holidays for one division.
type Fetcher interface {
	Fetch(ctx context.Context, division string) ([]Event, error)
}

// Client reads the bank holiday feed over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("bank holiday feed url is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: fetchTimeout}
	}
	return &Client{url: url, httpClient: httpClient}, nil
}

// Fetch downloads the feed and returns the events for the requested division.
func (c *Client) Fetch(ctx context.Context, divisionName string) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build bank holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bank holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch bank holidays: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var feed map[string]division
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode bank holidays: %w", err)
	}

	found, ok := feed[divisionName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDivisionNotFound, divisionName)
	}
	return found.Events, nil
}
