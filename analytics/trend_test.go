package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdash/models"
)

func msAt(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local).UnixMilli()
}

func TestBuildMonthlyTrendZeroFillsGaps(t *testing.T) {
	records := []models.SaleRecord{
		{ShopID: "S1", ProductID: "P1", Quantity: 4, TimestampMS: msAt(2026, time.January, 10)},
		{ShopID: "S1", ProductID: "P2", Quantity: 2, TimestampMS: msAt(2026, time.April, 3)},
	}
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.Local)

	series := BuildMonthlyTrend(records, now)
	require.Len(t, series, 6) // Jan..Jun inclusive

	// No gaps, strictly increasing.
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Month.Next(), series[i].Month)
	}
	assert.Equal(t, models.MonthKey("2026-01"), series[0].Month)
	assert.Equal(t, models.MonthKey("2026-06"), series[len(series)-1].Month)

	assert.Equal(t, 4, series[0].Quantity)
	assert.Equal(t, 0, series[1].Quantity) // February zero-filled
	assert.Equal(t, 2, series[3].Quantity)
	assert.Equal(t, 0, series[5].Quantity)
}

func TestBuildMonthlyTrendCrossesYears(t *testing.T) {
	records := []models.SaleRecord{
		{ShopID: "S1", ProductID: "P1", Quantity: 1, TimestampMS: msAt(2025, time.November, 1)},
	}
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local)

	series := BuildMonthlyTrend(records, now)
	require.Len(t, series, 4)
	assert.Equal(t, models.MonthKey("2025-11"), series[0].Month)
	assert.Equal(t, models.MonthKey("2025-12"), series[1].Month)
	assert.Equal(t, models.MonthKey("2026-01"), series[2].Month)
	assert.Equal(t, models.MonthKey("2026-02"), series[3].Month)
}

func TestBuildMonthlyTrendEmptyInput(t *testing.T) {
	assert.Empty(t, BuildMonthlyTrend(nil, time.Now()))
}

func TestBuildMonthlyTrendLastEntryIsCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.Local)
	records := []models.SaleRecord{
		{ShopID: "S1", ProductID: "P1", Quantity: 7, TimestampMS: msAt(2026, time.August, 1)},
	}

	series := BuildMonthlyTrend(records, now)
	require.Len(t, series, 1)
	assert.Equal(t, models.MonthKeyFor(now), series[0].Month)
}
