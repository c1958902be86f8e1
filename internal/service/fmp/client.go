package fmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	pkghttp "FinCompare/pkg/http"
)

// ErrProvider wraps error objects returned by the API in a 2xx body.
var ErrProvider = errors.New("provider error")

// Config holds the provider connection settings.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
}

// Client reads ratio snapshots and company search results from a Financial
// Modeling Prep style REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *pkghttp.Client
}

var (
	_ drepo.RatioSource     = (*Client)(nil)
	_ drepo.CompanySearcher = (*Client)(nil)
)

// New creates a provider client. Extra options are applied after the
// timeout and rate limit taken from cfg.
func New(cfg Config, opts ...pkghttp.ClientOption) *Client {
	base := []pkghttp.ClientOption{pkghttp.WithUserAgent("fincompare/1.0")}
	if cfg.Timeout > 0 {
		base = append(base, pkghttp.WithTimeout(cfg.Timeout))
	}
	if cfg.RatePerSec > 0 {
		base = append(base, pkghttp.WithRateLimit(cfg.RatePerSec, cfg.Burst))
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    pkghttp.NewClient(append(base, opts...)...),
	}
}

// Ratios returns the snapshot list for symbol. The API omits the period
// parameter for annual data.
func (c *Client) Ratios(ctx context.Context, symbol string, period drepo.Period) ([]models.RatioSnapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("fmp ratios: empty symbol")
	}
	q := map[string][]string{}
	if period == drepo.PeriodQuarter {
		q["period"] = []string{string(drepo.PeriodQuarter)}
	}

	var out []models.RatioSnapshot
	if err := c.get(ctx, "/ratios/"+url.PathEscape(symbol), q, &out); err != nil {
		return nil, fmt.Errorf("fmp ratios %s: %w", symbol, err)
	}
	return out, nil
}

// Search resolves query into candidate companies.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SelectedCompany, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SelectedCompany{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	q := map[string][]string{
		"query": {query},
		"limit": {strconv.Itoa(limit)},
	}

	var out []models.SelectedCompany
	if err := c.get(ctx, "/search", q, &out); err != nil {
		return nil, fmt.Errorf("fmp search %q: %w", query, err)
	}
	return out, nil
}

// get fetches path and decodes a JSON array into dest. The API reports some
// failures as {"Error Message": "..."} with status 200.
func (c *Client) get(ctx context.Context, path string, q map[string][]string, dest interface{}) error {
	if c.apiKey != "" {
		q["apikey"] = []string{c.apiKey}
	}
	var raw json.RawMessage
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method:      pkghttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: q,
	}, &raw)
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '{' {
		var apiErr struct {
			Message string `json:"Error Message"`
		}
		if err := json.Unmarshal(trimmed, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrProvider, apiErr.Message)
		}
		return fmt.Errorf("%w: unexpected object response", ErrProvider)
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
