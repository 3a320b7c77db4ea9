package analytics

import (
	"sort"

	"shopdash/models"
)

const (
	noForecastExplanation = "No forecast available."
	noExplanation         = "No explanation available."

	unknownProductName  = "Unknown Product"
	placeholderImageURL = "/placeholder-product.png"
)

// MergeForecast joins the remote forecast payload with local product
// metadata and keeps the top k by predicted units. A failed remote call is
// absorbed: the result is an empty list and an all-zero summary explaining
// that no forecast is available. A forecast may reference products deleted
// since it was computed; those keep placeholder metadata.
func MergeForecast(payload models.ForecastPayload, fetchErr error, products map[string]models.Product, k int) ([]models.ProductRankEntry, models.ForecastSummary) {
	if fetchErr != nil {
		return nil, models.ForecastSummary{Explanation: noForecastExplanation}
	}

	forecasts := make([]models.ProductForecast, len(payload.ProductForecasts))
	copy(forecasts, payload.ProductForecasts)
	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].PredictedNextMonth > forecasts[j].PredictedNextMonth
	})
	if len(forecasts) > k {
		forecasts = forecasts[:k]
	}

	entries := make([]models.ProductRankEntry, 0, len(forecasts))
	for _, f := range forecasts {
		e := models.ProductRankEntry{
			ProductID:          f.ProductID,
			ProductName:        unknownProductName,
			PredictedNextMonth: f.PredictedNextMonth,
			ImageURL:           placeholderImageURL,
		}
		if p, ok := products[f.ProductID]; ok {
			if p.ProductName != "" {
				e.ProductName = p.ProductName
			}
			if p.ImageURL != "" {
				e.ImageURL = p.ImageURL
			}
		}
		entries = append(entries, e)
	}

	summary := models.ForecastSummary{
		TotalPredictedUnits:        payload.TotalPredictedUnits,
		TotalEstimatedWorkers:      payload.TotalEstimatedWorkers,
		TotalEstimatedRattanMeters: payload.TotalEstimatedRattanMeters,
		TotalProjectedRevenue:      payload.TotalProjectedRevenue,
		Explanation:                payload.Explanation,
	}
	if summary.Explanation == "" {
		summary.Explanation = noExplanation
	}
	return entries, summary
}
