package analytics

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopdash/cache"
	"shopdash/models"
	"shopdash/store"
)

type fakeAPI struct {
	mu            sync.Mutex
	perfCalls     int
	shopsCalls    int
	productCalls  int
	forecastCalls int

	perfErr     error
	forecastErr error

	perf     models.PerformanceTotals
	shops    []models.Shop
	products []models.Product
	forecast models.ForecastPayload
}

func (f *fakeAPI) ShopPerformance(ctx context.Context, shopID string, month, year int) (models.PerformanceTotals, error) {
	f.mu.Lock()
	f.perfCalls++
	f.mu.Unlock()
	return f.perf, f.perfErr
}

func (f *fakeAPI) Shops(ctx context.Context) ([]models.Shop, error) {
	f.mu.Lock()
	f.shopsCalls++
	f.mu.Unlock()
	return f.shops, nil
}

func (f *fakeAPI) ShopProducts(ctx context.Context, shopID string) ([]models.Product, error) {
	f.mu.Lock()
	f.productCalls++
	f.mu.Unlock()
	return f.products, nil
}

func (f *fakeAPI) Forecast(ctx context.Context, shopID string, month, year int) (models.ForecastPayload, error) {
	f.mu.Lock()
	f.forecastCalls++
	f.mu.Unlock()
	return f.forecast, f.forecastErr
}

func seedStore(t *testing.T) *store.SQLite {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "sales", map[string]any{
		"P1": map[string]any{
			"a": models.RawSale{ShopID: "S1", ProductID: "P1", Quantity: 3, Timestamp: 1700000000},
			"b": models.RawSale{ShopID: "S1", ProductID: "P1", Quantity: 2, Timestamp: 1700003600},
		},
		"P2": map[string]any{
			"c": models.RawSale{ShopID: "S2", ProductID: "P2", Quantity: 9, Timestamp: 1700000000},
		},
	}))
	require.NoError(t, st.Set(ctx, "shops/S1/products", map[string]models.Product{
		"P1": {
			ProductName: "Peel Chair",
			ProductType: "Chair",
			ImageURL:    "/p1.jpg",
			Ratings: map[string]models.Rating{
				"r1": {UserFullName: "Ana", Stars: 5, Comment: "Lovely", Timestamp: 1700000000000},
				"r2": {UserFullName: "Ben", Stars: 3, Timestamp: 1700100000000},
			},
		},
	}))
	return st
}

func testAggregator(t *testing.T, api *fakeAPI) *Aggregator {
	t.Helper()
	agg := NewAggregator(api, seedStore(t), zap.NewNop(), 5)
	// Pin "now" to the sale month so the trend is a single entry.
	saleTime := time.UnixMilli(NormalizeTimestamp(1700000000))
	agg.now = func() time.Time { return saleTime }
	return agg
}

func saleMonthYear() (int, int) {
	at := time.UnixMilli(NormalizeTimestamp(1700000000))
	return int(at.Month()), at.Year()
}

func TestDashboardAssemblesViewModel(t *testing.T) {
	api := &fakeAPI{
		perf:  models.PerformanceTotals{TotalOrders: 4, ItemsSold: 5, TotalRevenue: decimal.NewFromInt(1200)},
		shops: []models.Shop{{ShopID: "S1", OwnerID: "U1", StoreName: "Rattan Works", StorePhotoURL: "/logo.jpg"}},
		forecast: models.ForecastPayload{
			ProductForecasts:    []models.ProductForecast{{ProductID: "P1", PredictedNextMonth: 8}},
			TotalPredictedUnits: 8,
			Explanation:         "Steady demand.",
		},
	}
	agg := testAggregator(t, api)
	month, year := saleMonthYear()

	vm, err := agg.Dashboard(context.Background(), cache.NewViewCache(), "S1", month, year)
	require.NoError(t, err)

	assert.Equal(t, "Rattan Works", vm.ShopInfo.StoreName)
	assert.Equal(t, 4, vm.Stats.TotalOrders)

	// Trend covers exactly the sale month; S2's sale is excluded.
	require.Len(t, vm.Stats.MonthlySalesTrend, 1)
	assert.Equal(t, 5, vm.Stats.MonthlySalesTrend[0].Quantity)

	require.Len(t, vm.Stats.TopThisMonth, 1)
	assert.Equal(t, "Peel Chair", vm.Stats.TopThisMonth[0].ProductName)
	assert.Equal(t, 5, vm.Stats.TopThisMonth[0].QuantitySold)

	require.Len(t, vm.Stats.TopForecasts, 1)
	assert.Equal(t, 8, vm.Stats.TopForecasts[0].PredictedNextMonth)
	assert.Equal(t, "Steady demand.", vm.Stats.ForecastSummary.Explanation)

	assert.Equal(t, 1, vm.Stats.ActiveProducts)
	assert.InDelta(t, 4.0, vm.Stats.AverageRating, 0.001)
	require.Len(t, vm.Stats.RecentFeedback, 2)
	assert.Equal(t, "Ben", vm.Stats.RecentFeedback[0].UserFullName) // newest first
	require.Contains(t, vm.Stats.ProductTypes, "Chair")
}

func TestDashboardCachesPerKey(t *testing.T) {
	api := &fakeAPI{shops: []models.Shop{{ShopID: "S1", StoreName: "Rattan Works"}}}
	agg := testAggregator(t, api)
	views := cache.NewViewCache()
	month, year := saleMonthYear()

	first, err := agg.Dashboard(context.Background(), views, "S1", month, year)
	require.NoError(t, err)
	second, err := agg.Dashboard(context.Background(), views, "S1", month, year)
	require.NoError(t, err)

	// Network calls happened exactly once; content is identical.
	assert.Equal(t, 1, api.perfCalls)
	assert.Equal(t, 1, api.shopsCalls)
	assert.Equal(t, 1, api.productCalls)
	assert.Equal(t, 1, api.forecastCalls)
	assert.Equal(t, first, second)

	// A different key fetches again.
	_, err = agg.Dashboard(context.Background(), views, "S1", month, year-1)
	require.NoError(t, err)
	assert.Equal(t, 2, api.perfCalls)
}

func TestDashboardAbortsOnRemoteFailure(t *testing.T) {
	api := &fakeAPI{perfErr: errors.New("upstream down")}
	agg := testAggregator(t, api)
	views := cache.NewViewCache()
	month, year := saleMonthYear()

	_, err := agg.Dashboard(context.Background(), views, "S1", month, year)
	require.ErrorIs(t, err, models.ErrFetchFailed)

	// Nothing cached for the failed key; a later attempt refetches.
	api.perfErr = nil
	_, err = agg.Dashboard(context.Background(), views, "S1", month, year)
	require.NoError(t, err)
	assert.Equal(t, 2, api.perfCalls)
}

func TestDashboardFailureLeavesCachedKeysIntact(t *testing.T) {
	api := &fakeAPI{shops: []models.Shop{{ShopID: "S1", StoreName: "Rattan Works"}}}
	agg := testAggregator(t, api)
	views := cache.NewViewCache()
	month, year := saleMonthYear()

	cached, err := agg.Dashboard(context.Background(), views, "S1", month, year)
	require.NoError(t, err)

	api.perfErr = errors.New("upstream down")
	_, err = agg.Dashboard(context.Background(), views, "S1", month, year-1)
	require.ErrorIs(t, err, models.ErrFetchFailed)

	again, err := agg.Dashboard(context.Background(), views, "S1", month, year)
	require.NoError(t, err)
	assert.Equal(t, cached, again)
}

func TestDashboardForecastFailureAbsorbed(t *testing.T) {
	api := &fakeAPI{
		shops:       []models.Shop{{ShopID: "S1", StoreName: "Rattan Works"}},
		forecastErr: errors.New("forecast service down"),
	}
	agg := testAggregator(t, api)
	month, year := saleMonthYear()

	vm, err := agg.Dashboard(context.Background(), cache.NewViewCache(), "S1", month, year)
	require.NoError(t, err)
	assert.Empty(t, vm.Stats.TopForecasts)
	assert.Equal(t, "No forecast available.", vm.Stats.ForecastSummary.Explanation)
	assert.Zero(t, vm.Stats.ForecastSummary.TotalPredictedUnits)

	// The rest of the dashboard still renders.
	assert.NotEmpty(t, vm.Stats.TopThisMonth)
}
