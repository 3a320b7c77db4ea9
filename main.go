// main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/analytics"
	"shopdash/auth"
	"shopdash/blob"
	"shopdash/cache"
	"shopdash/config"
	"shopdash/controllers"
	"shopdash/routes"
	"shopdash/shopapi"
	"shopdash/store"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Realtime store: remote when configured, embedded sqlite otherwise.
	var treeStore store.TreeStore
	if cfg.StoreURL != "" {
		treeStore = store.NewHTTP(cfg.StoreURL, cfg.StoreAuthToken, nil)
		logger.Info("using remote realtime store", zap.String("url", cfg.StoreURL))
	} else {
		s, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open embedded store", zap.Error(err))
		}
		defer s.Close()
		treeStore = s
		logger.Info("using embedded store", zap.String("path", cfg.SQLitePath))
	}

	// Blob storage: remote when configured, local media dir otherwise.
	var blobs blob.Store
	serveMedia := false
	if cfg.BlobURL != "" {
		blobs = blob.NewHTTP(cfg.BlobURL, nil)
	} else {
		local, err := blob.NewLocal(cfg.MediaDir, "/media")
		if err != nil {
			logger.Fatal("failed to prepare media dir", zap.Error(err))
		}
		blobs = local
		serveMedia = true
	}

	api := shopapi.New(cfg.ForecastAPIURL, nil)
	identity := auth.NewHTTPIdentityProvider(cfg.AuthURL, cfg.AuthAPIKey, nil)
	sessions := auth.NewManager()
	aggregator := analytics.NewAggregator(api, treeStore, logger, cfg.TopProducts)
	products := cache.NewProductCache()

	router := gin.Default()
	if serveMedia {
		router.Static("/media", cfg.MediaDir)
	}

	routes.RegisterRoutes(router, routes.Controllers{
		Sessions:      sessions,
		Auth:          &controllers.AuthController{Identity: identity, Shops: api, Sessions: sessions, Log: logger},
		Dashboard:     &controllers.DashboardController{Aggregator: aggregator, Log: logger},
		Products:      &controllers.ProductController{Store: treeStore, Blobs: blobs, Log: logger},
		Orders:        &controllers.OrderController{Store: treeStore, Notifier: api, Products: products, Log: logger},
		Feedback:      &controllers.FeedbackController{Store: treeStore, Log: logger},
		Notifications: &controllers.NotificationController{Store: treeStore, Log: logger},
		Profile:       &controllers.ProfileController{Store: treeStore, Blobs: blobs, Log: logger},
		Shop:          &controllers.ShopController{Store: treeStore, Blobs: blobs, Log: logger},
	})

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
