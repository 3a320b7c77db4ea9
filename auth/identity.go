// Package auth covers login against the external identity provider and the
// in-memory sessions that scope the dashboard caches.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"shopdash/models"
)

// IdentityProvider verifies credentials against the external identity
// service and returns the stable user id.
type IdentityProvider interface {
	Verify(ctx context.Context, email, password string) (string, error)
}

// HTTPIdentityProvider talks to the provider's REST endpoint
// (POST {base}/accounts:signInWithPassword?key={apiKey}).
type HTTPIdentityProvider struct {
	base   string
	apiKey string
	client *http.Client
}

// NewHTTPIdentityProvider builds a provider client. client may be nil to
// use http.DefaultClient.
func NewHTTPIdentityProvider(base, apiKey string, client *http.Client) *HTTPIdentityProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPIdentityProvider{base: strings.TrimRight(base, "/"), apiKey: apiKey, client: client}
}

func (p *HTTPIdentityProvider) Verify(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	url := p.base + "/accounts:signInWithPassword"
	if p.apiKey != "" {
		url += "?key=" + p.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return "", models.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity provider: status %d", resp.StatusCode)
	}

	var res struct {
		LocalID string `json:"localId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("identity provider: decode: %w", err)
	}
	if res.LocalID == "" {
		return "", models.ErrInvalidCredentials
	}
	return res.LocalID, nil
}
