// Package analytics turns raw sale records and remote forecast payloads into
// the dashboard's view-models: normalization, monthly trends, top-seller
// rankings, forecast merging and the aggregation that ties them together.
package analytics

import (
	"sort"

	"shopdash/models"
)

// Timestamps above this are already milliseconds; anything below is taken
// as Unix seconds. Heterogeneous producers write both units into the sales
// tree, so the unit is inferred by magnitude.
const millisThreshold = int64(1_000_000_000_000)

// NormalizeTimestamp converts a sale timestamp to milliseconds. Applying it
// to an already-normalized value is a no-op.
func NormalizeTimestamp(ts int64) int64 {
	if ts > millisThreshold {
		return ts
	}
	return ts * 1000
}

// NormalizeSales flattens the sales tree (productId -> saleId -> sale) into
// SaleRecords with millisecond timestamps. Entries without a usable
// timestamp are skipped; a missing quantity stays zero. Keys are walked in
// sorted order so "first encountered" is stable for downstream tie-breaks.
func NormalizeSales(raw map[string]map[string]models.RawSale) []models.SaleRecord {
	productIDs := make([]string, 0, len(raw))
	for pid := range raw {
		productIDs = append(productIDs, pid)
	}
	sort.Strings(productIDs)

	var records []models.SaleRecord
	for _, pid := range productIDs {
		sales := raw[pid]
		saleIDs := make([]string, 0, len(sales))
		for sid := range sales {
			saleIDs = append(saleIDs, sid)
		}
		sort.Strings(saleIDs)

		for _, sid := range saleIDs {
			sale := sales[sid]
			if sale.Timestamp <= 0 {
				continue
			}
			productID := sale.ProductID
			if productID == "" {
				productID = pid
			}
			records = append(records, models.SaleRecord{
				ShopID:      sale.ShopID,
				ProductID:   productID,
				Quantity:    sale.Quantity,
				TimestampMS: NormalizeTimestamp(sale.Timestamp),
			})
		}
	}
	return records
}

// FilterShop keeps only the records belonging to one shop.
func FilterShop(records []models.SaleRecord, shopID string) []models.SaleRecord {
	var out []models.SaleRecord
	for _, r := range records {
		if r.ShopID == shopID {
			out = append(out, r)
		}
	}
	return out
}
