// Package cache holds the explicit in-memory caches the dashboard uses:
// per-session view-model memoization and a process-wide product lookaside
// for order details.
package cache

import (
	"fmt"
	"sync"

	"shopdash/models"
)

// ViewCache memoizes derived view-models for one session. Entries are
// write-once per key and live until the session ends; there is no TTL and
// no invalidation. Stale data is the accepted price for instant repeat
// navigation.
type ViewCache struct {
	mu        sync.Mutex
	dashboard map[string]models.DashboardViewModel
	feedback  map[string][]models.FeedbackEntry
}

// NewViewCache returns an empty session cache.
func NewViewCache() *ViewCache {
	return &ViewCache{
		dashboard: make(map[string]models.DashboardViewModel),
		feedback:  make(map[string][]models.FeedbackEntry),
	}
}

// DashboardKey is the cache key for one (shop, month, year) selection.
func DashboardKey(shopID string, month, year int) string {
	return fmt.Sprintf("dashboard_%s_%d_%d", shopID, month, year)
}

// GetDashboard returns the cached view-model for key, if present.
func (c *ViewCache) GetDashboard(key string) (models.DashboardViewModel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vm, ok := c.dashboard[key]
	return vm, ok
}

// PutDashboard stores vm under key. The first write wins; later writes for
// the same key are ignored.
func (c *ViewCache) PutDashboard(key string, vm models.DashboardViewModel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.dashboard[key]; ok {
		return
	}
	c.dashboard[key] = vm
}

// GetFeedback returns the session's cached feedback list for a shop.
func (c *ViewCache) GetFeedback(shopID string) ([]models.FeedbackEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.feedback[shopID]
	return list, ok
}

// PutFeedback stores the feedback list for a shop, first write wins.
func (c *ViewCache) PutFeedback(shopID string, list []models.FeedbackEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.feedback[shopID]; ok {
		return
	}
	c.feedback[shopID] = list
}

// ProductCache is a process-lifetime lookaside of product records keyed by
// shopID/productID, used when resolving order line details. Products change
// rarely; a stale entry only affects cosmetic fields.
type ProductCache struct {
	mu sync.Mutex
	m  map[string]models.Product
}

// NewProductCache returns an empty product cache.
func NewProductCache() *ProductCache {
	return &ProductCache{m: make(map[string]models.Product)}
}

func productKey(shopID, productID string) string { return shopID + "/" + productID }

// Get returns the cached product, if present.
func (c *ProductCache) Get(shopID, productID string) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.m[productKey(shopID, productID)]
	return p, ok
}

// Put stores a product record.
func (c *ProductCache) Put(shopID, productID string, p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[productKey(shopID, productID)] = p
}
