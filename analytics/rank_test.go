package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdash/models"
)

func noLookup(string) (models.Product, bool) { return models.Product{}, false }

func TestTopSellingSumsSameMonth(t *testing.T) {
	// Two sales of P1 in the same month sum to 5.
	records := NormalizeSales(map[string]map[string]models.RawSale{
		"P1": {
			"a": {ShopID: "S1", ProductID: "P1", Quantity: 3, Timestamp: 1700000000},
			"b": {ShopID: "S1", ProductID: "P1", Quantity: 2, Timestamp: 1700003600},
		},
	})
	at := time.UnixMilli(NormalizeTimestamp(1700000000))

	top := TopSelling(FilterShop(records, "S1"), int(at.Month()), at.Year(), 5, noLookup)
	require.Len(t, top, 1)
	assert.Equal(t, "P1", top[0].ProductID)
	assert.Equal(t, 5, top[0].QuantitySold)
	assert.Equal(t, "Unknown", top[0].ProductName)
}

func TestTopSellingSortedAndTruncated(t *testing.T) {
	base := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.Local).UnixMilli()
	var records []models.SaleRecord
	quantities := map[string]int{"P1": 1, "P2": 9, "P3": 4, "P4": 7, "P5": 2, "P6": 6}
	for _, pid := range []string{"P1", "P2", "P3", "P4", "P5", "P6"} {
		records = append(records, models.SaleRecord{
			ShopID: "S1", ProductID: pid, Quantity: quantities[pid], TimestampMS: base,
		})
	}

	top := TopSelling(records, 7, 2026, 5, noLookup)
	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].QuantitySold, top[i].QuantitySold)
	}
	assert.Equal(t, "P2", top[0].ProductID)

	var sum int
	for _, e := range top {
		sum += e.QuantitySold
	}
	assert.LessOrEqual(t, sum, 1+9+4+7+2+6)
}

func TestTopSellingTieBreakFirstSeen(t *testing.T) {
	base := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.Local).UnixMilli()
	records := []models.SaleRecord{
		{ShopID: "S1", ProductID: "PB", Quantity: 3, TimestampMS: base},
		{ShopID: "S1", ProductID: "PA", Quantity: 3, TimestampMS: base},
	}

	top := TopSelling(records, 7, 2026, 5, noLookup)
	require.Len(t, top, 2)
	assert.Equal(t, "PB", top[0].ProductID)
	assert.Equal(t, "PA", top[1].ProductID)
}

func TestTopSellingFiltersTargetMonth(t *testing.T) {
	july := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.Local).UnixMilli()
	june := time.Date(2026, time.June, 5, 0, 0, 0, 0, time.Local).UnixMilli()
	records := []models.SaleRecord{
		{ShopID: "S1", ProductID: "P1", Quantity: 3, TimestampMS: july},
		{ShopID: "S1", ProductID: "P1", Quantity: 8, TimestampMS: june},
	}

	top := TopSelling(records, 7, 2026, 5, noLookup)
	require.Len(t, top, 1)
	assert.Equal(t, 3, top[0].QuantitySold)
}

func TestTopSellingResolvesNames(t *testing.T) {
	base := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.Local).UnixMilli()
	records := []models.SaleRecord{
		{ShopID: "S1", ProductID: "P1", Quantity: 3, TimestampMS: base},
	}
	lookup := func(pid string) (models.Product, bool) {
		return models.Product{ProductName: "Peel Chair", ImageURL: "/p1.jpg"}, pid == "P1"
	}

	top := TopSelling(records, 7, 2026, 5, lookup)
	require.Len(t, top, 1)
	assert.Equal(t, "Peel Chair", top[0].ProductName)
	assert.Equal(t, "/p1.jpg", top[0].ImageURL)
}
