package analytics

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdash/models"
)

func TestMergeForecastOrdersByPrediction(t *testing.T) {
	payload := models.ForecastPayload{
		ProductForecasts: []models.ProductForecast{
			{ProductID: "P9", PredictedNextMonth: 40},
			{ProductID: "P2", PredictedNextMonth: 100},
		},
	}

	entries, _ := MergeForecast(payload, nil, nil, 5)
	require.Len(t, entries, 2)
	assert.Equal(t, "P2", entries[0].ProductID)
	assert.Equal(t, "P9", entries[1].ProductID)
}

func TestMergeForecastAttachesMetadata(t *testing.T) {
	payload := models.ForecastPayload{
		ProductForecasts: []models.ProductForecast{
			{ProductID: "P1", PredictedNextMonth: 10},
			{ProductID: "gone", PredictedNextMonth: 5},
		},
		Explanation: "More chairs next month.",
	}
	products := map[string]models.Product{
		"P1": {ProductName: "Peel Chair", ImageURL: "/p1.jpg"},
	}

	entries, summary := MergeForecast(payload, nil, products, 5)
	require.Len(t, entries, 2)
	assert.Equal(t, "Peel Chair", entries[0].ProductName)
	assert.Equal(t, "/p1.jpg", entries[0].ImageURL)

	// Deleted products keep placeholders; this is expected, not an error.
	assert.Equal(t, "Unknown Product", entries[1].ProductName)
	assert.Equal(t, "/placeholder-product.png", entries[1].ImageURL)

	assert.Equal(t, "More chairs next month.", summary.Explanation)
}

func TestMergeForecastTruncatesToK(t *testing.T) {
	payload := models.ForecastPayload{
		ProductForecasts: []models.ProductForecast{
			{ProductID: "A", PredictedNextMonth: 1},
			{ProductID: "B", PredictedNextMonth: 2},
			{ProductID: "C", PredictedNextMonth: 3},
		},
	}

	entries, _ := MergeForecast(payload, nil, nil, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "C", entries[0].ProductID)
	assert.Equal(t, "B", entries[1].ProductID)
}

func TestMergeForecastFailureAbsorbed(t *testing.T) {
	entries, summary := MergeForecast(models.ForecastPayload{}, errors.New("boom"), nil, 5)
	assert.Empty(t, entries)
	assert.Zero(t, summary.TotalPredictedUnits)
	assert.Zero(t, summary.TotalEstimatedWorkers)
	assert.Zero(t, summary.TotalEstimatedRattanMeters)
	assert.True(t, summary.TotalProjectedRevenue.Equal(decimal.Zero))
	assert.Equal(t, "No forecast available.", summary.Explanation)
}

func TestMergeForecastEmptyExplanationDefaulted(t *testing.T) {
	_, summary := MergeForecast(models.ForecastPayload{}, nil, nil, 5)
	assert.Equal(t, "No explanation available.", summary.Explanation)
}
