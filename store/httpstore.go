package store

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

// HTTP talks to the realtime store over its REST surface: GET/PUT/POST/
// PATCH/DELETE on {base}/{path}.json, multi-path updates as a PATCH against
// the root with path-keyed values.
type HTTP struct {
	base   string
	token  string
	client *http.Client
}

// NewHTTP builds a client for the store at base. token may be empty for
// unauthenticated stores; client may be nil to use http.DefaultClient.
func NewHTTP(base, token string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{base: strings.TrimRight(base, "/"), token: token, client: client}
}

func (h *HTTP) url(path string) string {
	u := h.base + "/" + strings.Trim(path, "/") + ".json"
	if h.token != "" {
		u += "?auth=" + h.token
	}
	return u
}

func (h *HTTP) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.url(path), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("store %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("store %s %s: status %d", method, path, resp.StatusCode)
	}
	return data, nil
}

func (h *HTTP) Get(ctx context.Context, path string, out any) error {
	data, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	// The store answers 200 "null" for absent paths.
	if string(bytes.TrimSpace(data)) == "null" {
		return models.ErrNotFound
	}
	return json.Unmarshal(data, out)
}

func (h *HTTP) Set(ctx context.Context, path string, v any) error {
	_, err := h.do(ctx, http.MethodPut, path, v)
	return err
}

func (h *HTTP) Push(ctx context.Context, path string, v any) (string, error) {
	data, err := h.do(ctx, http.MethodPost, path, v)
	if err != nil {
		return "", err
	}
	var res struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return "", fmt.Errorf("store push %s: %w", path, err)
	}
	return res.Name, nil
}

func (h *HTTP) Update(ctx context.Context, updates map[string]any) error {
	body := make(map[string]any, len(updates))
	for p, v := range updates {
		body[strings.Trim(p, "/")] = v
	}
	_, err := h.do(ctx, http.MethodPatch, "", body)
	return err
}

func (h *HTTP) Delete(ctx context.Context, path string) error {
	_, err := h.do(ctx, http.MethodDelete, path, nil)
	return err
}
