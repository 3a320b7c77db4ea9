package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTP uploads blobs with a PUT against {base}/{name}; the stored object is
// then publicly readable at that same URL.
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP builds a client for the blob store at base. client may be nil to
// use http.DefaultClient.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{base: strings.TrimRight(base, "/"), client: client}
}

func (h *HTTP) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	url := h.base + "/" + strings.TrimLeft(name, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, r)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob upload %s: %w", name, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("blob upload %s: status %d", name, resp.StatusCode)
	}
	return url, nil
}
