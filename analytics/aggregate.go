package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shopdash/cache"
	"shopdash/models"
	"shopdash/store"
)

// API is the slice of the forecast/performance service the aggregator needs.
type API interface {
	ShopPerformance(ctx context.Context, shopID string, month, year int) (models.PerformanceTotals, error)
	Shops(ctx context.Context) ([]models.Shop, error)
	ShopProducts(ctx context.Context, shopID string) ([]models.Product, error)
	Forecast(ctx context.Context, shopID string, month, year int) (models.ForecastPayload, error)
}

// Aggregator assembles the dashboard view-model for a (shop, month, year)
// selection, memoized in the caller's session cache.
type Aggregator struct {
	api   API
	store store.TreeStore
	log   *zap.Logger
	topN  int
	now   func() time.Time
}

// NewAggregator wires the aggregator. topN is the length of the top-seller
// and top-forecast lists.
func NewAggregator(api API, st store.TreeStore, log *zap.Logger, topN int) *Aggregator {
	return &Aggregator{api: api, store: st, log: log, topN: topN, now: time.Now}
}

// Dashboard returns the cached view-model for the key or fetches and builds
// it. The remote calls and store reads run as one group that is cancelled
// together; any failure (other than the forecast, which is absorbed) aborts
// the whole aggregation and leaves previously cached keys untouched.
func (a *Aggregator) Dashboard(ctx context.Context, views *cache.ViewCache, shopID string, month, year int) (models.DashboardViewModel, error) {
	key := cache.DashboardKey(shopID, month, year)
	if vm, ok := views.GetDashboard(key); ok {
		return vm, nil
	}

	var (
		perf         models.PerformanceTotals
		shops        []models.Shop
		apiProducts  []models.Product
		forecast     models.ForecastPayload
		forecastErr  error
		rawSales     map[string]map[string]models.RawSale
		shopProducts map[string]models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		perf, err = a.api.ShopPerformance(gctx, shopID, month, year)
		return err
	})
	g.Go(func() (err error) {
		shops, err = a.api.Shops(gctx)
		return err
	})
	g.Go(func() (err error) {
		apiProducts, err = a.api.ShopProducts(gctx, shopID)
		return err
	})
	g.Go(func() error {
		// Absorbed: a missing forecast degrades the view, never fails it.
		forecast, forecastErr = a.api.Forecast(gctx, shopID, month, year)
		if forecastErr != nil {
			a.log.Warn("forecast unavailable", zap.String("shopId", shopID), zap.Error(forecastErr))
		}
		return nil
	})
	g.Go(func() error {
		err := a.store.Get(gctx, "sales", &rawSales)
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := a.store.Get(gctx, "shops/"+shopID+"/products", &shopProducts)
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		a.log.Error("dashboard aggregation aborted",
			zap.String("shopId", shopID), zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		return models.DashboardViewModel{}, fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
	}

	apiNames := make(map[string]string, len(apiProducts))
	for _, p := range apiProducts {
		apiNames[p.ID] = p.ProductName
	}
	lookup := func(pid string) (models.Product, bool) {
		if p, ok := shopProducts[pid]; ok {
			return p, true
		}
		if name, ok := apiNames[pid]; ok {
			return models.Product{ID: pid, ProductName: name}, true
		}
		return models.Product{}, false
	}

	records := FilterShop(NormalizeSales(rawSales), shopID)
	topForecasts, summary := MergeForecast(forecast, forecastErr, shopProducts, a.topN)
	feedback := FlattenRatings(shopProducts)
	if len(feedback) > a.topN {
		feedback = feedback[:a.topN]
	}

	vm := models.DashboardViewModel{
		ShopInfo: shopInfoFor(shops, shopID),
		Stats: models.DashboardStats{
			PerformanceTotals: perf,
			MonthlySalesTrend: BuildMonthlyTrend(records, a.now()),
			TopThisMonth:      TopSelling(records, month, year, a.topN, lookup),
			TopForecasts:      topForecasts,
			ForecastSummary:   summary,
			ActiveProducts:    len(shopProducts),
			AverageRating:     AverageRating(shopProducts),
			ProductTypes:      GroupByType(shopProducts),
			RecentFeedback:    feedback,
		},
	}

	views.PutDashboard(key, vm)
	return vm, nil
}

func shopInfoFor(shops []models.Shop, shopID string) models.ShopInfo {
	for _, s := range shops {
		if s.ShopID == shopID {
			name := s.StoreName
			if name == "" {
				name = "Your Shop"
			}
			return models.ShopInfo{
				StoreName:          name,
				StorePhotoURL:      s.StorePhotoURL,
				StoreBackgroundURL: s.StoreBackgroundURL,
			}
		}
	}
	return models.ShopInfo{StoreName: "Your Shop"}
}
