// Package lookup fetches public-record property details for an address from
// a third-party real-estate data API.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	apperrors "github.com/utafrali/estatehub/pkg/errors"
	"github.com/utafrali/estatehub/pkg/httpclient"
)

const (
	upstreamName    = "property-data"
	detailsPath     = "/property-details-address"
	maxResponseBody = 2 << 20
)

// Config configures the upstream API.
type Config struct {
	BaseURL string
	APIKey  string
	APIHost string
	Timeout time.Duration
}

// Client calls the property-data API through a circuit breaker.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
}

// NewClient builds a client. Requests are never retried; the breaker alone
// protects the request path from a failing upstream.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.MaxRetries = 0
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}
	httpCfg.Headers = map[string]string{
		"x-rapidapi-key":  cfg.APIKey,
		"x-rapidapi-host": cfg.APIHost,
		"Accept":          "application/json",
	}

	return &Client{
		http: httpclient.NewCircuitBreakerClient(
			httpclient.New(httpCfg),
			httpclient.DefaultCircuitBreakerConfig(upstreamName),
			logger,
		),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// PropertyDetails returns the upstream JSON document for address unchanged.
func (c *Client) PropertyDetails(ctx context.Context, address string) (json.RawMessage, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperrors.InvalidInput("address is required")
	}

	endpoint := c.baseURL + detailsPath + "?" + url.Values{"address": {address}}.Encode()
	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.Unavailable("property data service is temporarily unavailable")
		}
		return nil, fmt.Errorf("property details request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpclient.ParseResponseError(resp, upstreamName)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read property details: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s returned a non-JSON body", upstreamName)
	}
	return json.RawMessage(body), nil
}

// State reports the breaker state for diagnostics.
func (c *Client) State() string {
	return c.http.State().String()
}

// Disabled is the lookup used when no API is configured.
type Disabled struct{}

// PropertyDetails always reports the feature as unavailable.
func (Disabled) PropertyDetails(context.Context, string) (json.RawMessage, error) {
	return nil, apperrors.Unavailable("property lookup is not configured")
}
