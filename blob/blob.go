// Package blob stores uploaded images (product photos, shop banners,
// profile pictures) and hands back the public URL to save alongside the
// record.
package blob

import (
	"context"
	"io"
)

// Store is write-blob-get-url storage.
type Store interface {
	// Save writes the blob under name and returns its public URL.
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
