// Package store gives path-addressed access to the tree-shaped realtime
// database that holds products, sales, orders, notifications and users.
//
// Paths are slash-separated ("shops/S1/products"). A read at a path returns
// the whole subtree below it. Update applies several writes as one atomic
// multi-path operation, which keeps mirrored records (shop and buyer order
// copies) consistent.
package store

import "context"

// TreeStore is the contract both the remote realtime store and the embedded
// sqlite store satisfy.
type TreeStore interface {
	// Get reads the subtree at path into out. models.ErrNotFound when the
	// path holds no data.
	Get(ctx context.Context, path string, out any) error

	// Set replaces the subtree at path.
	Set(ctx context.Context, path string, v any) error

	// Push stores v under a fresh generated key below path and returns the key.
	Push(ctx context.Context, path string, v any) (string, error)

	// Update applies all entries as one atomic write. A nil value deletes
	// that path.
	Update(ctx context.Context, updates map[string]any) error

	// Delete removes the subtree at path.
	Delete(ctx context.Context, path string) error
}
