package analytics

import (
	"sort"

	"shopdash/models"
)

// ProductLookup resolves a product id to its catalog record, reporting
// whether it was found.
type ProductLookup func(productID string) (models.Product, bool)

// TopSelling ranks products by units sold in the target calendar month.
// Quantities are exact sums over the matching records. Sorting is stable, so
// ties keep first-encountered order. At most k entries are returned.
func TopSelling(records []models.SaleRecord, month, year, k int, lookup ProductLookup) []models.ProductRankEntry {
	totals := make(map[string]int)
	var order []string

	for _, r := range records {
		t := r.Time()
		if t.Year() != year || int(t.Month()) != month {
			continue
		}
		if _, seen := totals[r.ProductID]; !seen {
			order = append(order, r.ProductID)
		}
		totals[r.ProductID] += r.Quantity
	}

	entries := make([]models.ProductRankEntry, 0, len(order))
	for _, pid := range order {
		e := models.ProductRankEntry{ProductID: pid, ProductName: "Unknown", QuantitySold: totals[pid]}
		if p, ok := lookup(pid); ok {
			if p.ProductName != "" {
				e.ProductName = p.ProductName
			}
			e.ImageURL = p.ImageURL
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].QuantitySold > entries[j].QuantitySold
	})
	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}
