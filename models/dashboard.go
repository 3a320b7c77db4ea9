// models/dashboard.go
package models

import "github.com/shopspring/decimal"

// ProductRankEntry is one row of a top-products list, ranked either by units
// sold in the selected month or by forecast units for the next month.
type ProductRankEntry struct {
	ProductID          string `json:"productId"`
	ProductName        string `json:"productName"`
	QuantitySold       int    `json:"quantitySold,omitempty"`
	PredictedNextMonth int    `json:"predictedNextMonth,omitempty"`
	ImageURL           string `json:"imageUrl,omitempty"`
}

// PerformanceTotals are the month totals returned by the performance API.
type PerformanceTotals struct {
	TotalOrders  int             `json:"totalOrders"`
	ItemsSold    int             `json:"itemsSold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// ForecastSummary carries the remote forecast aggregates. All fields default
// to zero values when the forecast service is unavailable.
type ForecastSummary struct {
	TotalPredictedUnits        int             `json:"totalPredictedUnits"`
	TotalEstimatedWorkers      int             `json:"totalEstimatedWorkers"`
	TotalEstimatedRattanMeters float64         `json:"totalEstimatedRattanMeters"`
	TotalProjectedRevenue      decimal.Decimal `json:"totalProjectedRevenue"`
	Explanation                string          `json:"explanation"`
}

// ProductForecast is one product's predicted demand for next month.
type ProductForecast struct {
	ProductID          string `json:"productId"`
	PredictedNextMonth int    `json:"predictedNextMonth"`
}

// ForecastPayload is the raw response of GET /forecast/shop/{shopId}.
type ForecastPayload struct {
	ProductForecasts           []ProductForecast `json:"productForecasts"`
	TotalPredictedUnits        int               `json:"totalPredictedUnits"`
	TotalEstimatedWorkers      int               `json:"totalEstimatedWorkers"`
	TotalEstimatedRattanMeters float64           `json:"totalEstimatedRattanMeters"`
	TotalProjectedRevenue      decimal.Decimal   `json:"totalProjectedRevenue"`
	Explanation                string            `json:"explanation"`
}

// DashboardStats is everything the overview page renders for one
// (shop, month, year) selection.
type DashboardStats struct {
	PerformanceTotals
	MonthlySalesTrend TrendSeries          `json:"monthlySalesTrend"`
	TopThisMonth      []ProductRankEntry   `json:"topThisMonth"`
	TopForecasts      []ProductRankEntry   `json:"topForecasts"`
	ForecastSummary   ForecastSummary      `json:"forecastSummary"`
	ActiveProducts    int                  `json:"activeProducts"`
	AverageRating     float64              `json:"averageRating"`
	ProductTypes      map[string][]Product `json:"productTypes"`
	RecentFeedback    []FeedbackEntry      `json:"recentFeedback"`
}

// DashboardViewModel is the unit cached per (shopId, month, year) for the
// lifetime of a session.
type DashboardViewModel struct {
	ShopInfo ShopInfo       `json:"shopInfo"`
	Stats    DashboardStats `json:"stats"`
}
