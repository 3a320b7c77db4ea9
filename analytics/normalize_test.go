package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdash/models"
)

func TestNormalizeTimestampIdempotent(t *testing.T) {
	cases := []int64{1, 1700000000, 999_999_999_999, 1_000_000_000_001, 1700000000000}
	for _, ts := range cases {
		once := NormalizeTimestamp(ts)
		twice := NormalizeTimestamp(once)
		assert.Equal(t, once, twice, "ts=%d", ts)
	}
}

func TestNormalizeTimestampUnits(t *testing.T) {
	// Seconds get scaled, milliseconds pass through.
	assert.Equal(t, int64(1700000000000), NormalizeTimestamp(1700000000))
	assert.Equal(t, int64(1700000000000), NormalizeTimestamp(1700000000000))
}

func TestNormalizeSalesFlattens(t *testing.T) {
	raw := map[string]map[string]models.RawSale{
		"P1": {
			"a": {ShopID: "S1", ProductID: "P1", Quantity: 3, Timestamp: 1700000000},
			"b": {ShopID: "S1", ProductID: "P1", Quantity: 2, Timestamp: 1700003600000},
		},
		"P2": {
			"c": {ShopID: "S2", ProductID: "P2", Quantity: 1, Timestamp: 1700000100},
		},
	}

	records := NormalizeSales(raw)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Greater(t, r.TimestampMS, int64(1_000_000_000_000))
	}
}

func TestNormalizeSalesSkipsMalformed(t *testing.T) {
	raw := map[string]map[string]models.RawSale{
		"P1": {
			"ok":       {ShopID: "S1", ProductID: "P1", Quantity: 3, Timestamp: 1700000000},
			"no-stamp": {ShopID: "S1", ProductID: "P1", Quantity: 9},
		},
	}

	records := NormalizeSales(raw)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Quantity)
}

func TestNormalizeSalesMissingQuantityIsZero(t *testing.T) {
	raw := map[string]map[string]models.RawSale{
		"P1": {"a": {ShopID: "S1", ProductID: "P1", Timestamp: 1700000000}},
	}

	records := NormalizeSales(raw)
	require.Len(t, records, 1)
	assert.Zero(t, records[0].Quantity)
}

func TestNormalizeSalesFallsBackToOuterKey(t *testing.T) {
	raw := map[string]map[string]models.RawSale{
		"P7": {"a": {ShopID: "S1", Quantity: 1, Timestamp: 1700000000}},
	}

	records := NormalizeSales(raw)
	require.Len(t, records, 1)
	assert.Equal(t, "P7", records[0].ProductID)
}

func TestFilterShop(t *testing.T) {
	records := []models.SaleRecord{
		{ShopID: "S1", ProductID: "P1"},
		{ShopID: "S2", ProductID: "P2"},
		{ShopID: "S1", ProductID: "P3"},
	}
	got := FilterShop(records, "S1")
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].ProductID)
	assert.Equal(t, "P3", got[1].ProductID)
}
