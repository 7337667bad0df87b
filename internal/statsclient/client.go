// Package statsclient is the main-service side of the stats boundary.
package statsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/sharath018/ewm-backend/internal/stats"
	"github.com/sharath018/ewm-backend/utils"
)

// Client talks to the stats-service REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Publish sends one hit with POST /hit.
func (c *Client) Publish(ctx context.Context, hit stats.EndpointHitDto) error {
	body, err := json.Marshal(hit)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post hit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("post hit: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Stats queries GET /stats.
func (c *Client) Stats(ctx context.Context, q stats.StatsQuery) ([]stats.ViewStats, error) {
	params := url.Values{}
	params.Set("start", q.Start.UTC().Format(utils.DateTimeLayout))
	params.Set("end", q.End.UTC().Format(utils.DateTimeLayout))
	params.Set("unique", strconv.FormatBool(q.Unique))
	for _, uri := range q.Uris {
		params.Add("uris", uri)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get stats: unexpected status %d", resp.StatusCode)
	}

	var out []stats.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return out, nil
}
