// Package ccd is the case-management API collaborator: it accepts the
// structured case payload plus a target event and returns the created
// case identifier. Retry policy belongs to that service, not here.
package ccd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"bulkscan/internal/idam"
	"bulkscan/internal/model"
)

// Client is the boundary contract for case creation.
type Client interface {
	// CreateCase submits the case payload under its event and returns
	// the new case identifier.
	CreateCase(ctx context.Context, req model.CaseCreationRequest) (string, error)
}

type httpClient struct {
	baseURL string
	tokens  idam.TokenProvider
	http    *http.Client
}

// NewClient builds a case-management client. The token provider supplies
// the Authorization and ServiceAuthorization credentials per call.
func NewClient(baseURL string, tokens idam.TokenProvider) (Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("case api base url is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token provider is required")
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *httpClient) CreateCase(ctx context.Context, caseReq model.CaseCreationRequest) (string, error) {
	tokens, err := c.tokens.Tokens(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire tokens: %w", err)
	}

	payload, err := json.Marshal(caseReq)
	if err != nil {
		return "", fmt.Errorf("encode case payload: %w", err)
	}

	u := fmt.Sprintf("%s/case-types/%s/cases", c.baseURL, caseReq.CaseTypeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build case request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokens.UserToken)
	req.Header.Set("ServiceAuthorization", tokens.ServiceToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create case: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("create case: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode case response: %w", err)
	}
	if body.ID == "" {
		return "", fmt.Errorf("create case: response carried no case id")
	}
	return body.ID, nil
}
