// Package idam supplies the caller credentials attached to downstream
// case-management calls: an OAuth2 user token and a service-to-service
// token. The token service itself is an external collaborator.
package idam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Tokens is the credential pair the case-management API expects.
type Tokens struct {
	UserToken    string
	ServiceToken string
}

// TokenProvider is the boundary contract for the identity service.
type TokenProvider interface {
	Tokens(ctx context.Context) (Tokens, error)
}

// Config carries the identity-service settings.
type Config struct {
	BaseURL      string
	S2SBaseURL   string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	ServiceName  string
}

type client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a TokenProvider against the identity and
// service-to-service token endpoints.
func NewClient(cfg Config) (TokenProvider, error) {
	if cfg.BaseURL == "" || cfg.S2SBaseURL == "" {
		return nil, fmt.Errorf("idam base urls are required")
	}
	return &client{cfg: cfg, http: &http.Client{
		Timeout:   15 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}}, nil
}

func (c *client) Tokens(ctx context.Context) (Tokens, error) {
	user, err := c.userToken(ctx)
	if err != nil {
		return Tokens{}, fmt.Errorf("user token: %w", err)
	}
	service, err := c.serviceToken(ctx)
	if err != nil {
		return Tokens{}, fmt.Errorf("service token: %w", err)
	}
	return Tokens{UserToken: user, ServiceToken: service}, nil
}

func (c *client) userToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"password"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"username":      {c.cfg.Username},
		"password":      {c.cfg.Password},
		"scope":         {"openid profile roles"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/o/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return "Bearer " + body.AccessToken, nil
}

func (c *client) serviceToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{"microservice": c.cfg.ServiceName})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.S2SBaseURL, "/")+"/lease",
		strings.NewReader(string(payload)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// The lease endpoint returns the bare JWT as the body, not JSON.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return "Bearer " + strings.TrimSpace(string(raw)), nil
}
