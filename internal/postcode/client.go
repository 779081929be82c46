package postcode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// client implements Lookup against a postcodes.io-compatible HTTP API.
// It is safe for concurrent use.
type client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a postcode lookup client for the given base URL.
func NewClient(baseURL string) (Lookup, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("postcode lookup base url is required")
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *client) Exists(ctx context.Context, postcode string) (bool, error) {
	u := fmt.Sprintf("%s/postcodes/%s/validate", c.baseURL, url.PathEscape(strings.ReplaceAll(postcode, " ", "")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("build postcode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("postcode lookup: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("postcode lookup: unexpected status %d", resp.StatusCode)
	}
}
