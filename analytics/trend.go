package analytics

import (
	"time"

	"shopdash/models"
)

// BuildMonthlyTrend folds a shop's full sale history into a month-by-month
// quantity series running from the first observed sale month to now,
// inclusive, with zero-filled gaps. No sales ever means an empty series.
func BuildMonthlyTrend(records []models.SaleRecord, now time.Time) models.TrendSeries {
	if len(records) == 0 {
		return nil
	}

	acc := make(map[models.MonthKey]int)
	var earliest models.MonthKey
	for _, r := range records {
		key := models.MonthKeyFor(r.Time())
		acc[key] += r.Quantity
		if earliest == "" || key < earliest {
			earliest = key
		}
	}

	last := models.MonthKeyFor(now)
	var series models.TrendSeries
	for key := earliest; key <= last; key = key.Next() {
		series = append(series, models.TrendPoint{Month: key, Quantity: acc[key]})
	}
	return series
}
