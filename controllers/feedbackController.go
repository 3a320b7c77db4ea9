package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/analytics"
	"shopdash/auth"
	"shopdash/models"
	"shopdash/store"
)

// FeedbackController serves the flattened product-rating feed, cached per
// session.
type FeedbackController struct {
	Store store.TreeStore
	Log   *zap.Logger
}

// ListFeedback returns every rating across the shop's products, newest
// first.
func (fc *FeedbackController) ListFeedback(c *gin.Context) {
	s := auth.SessionFrom(c)
	if list, ok := s.Views.GetFeedback(s.ShopID); ok {
		c.JSON(http.StatusOK, list)
		return
	}

	var products map[string]models.Product
	err := fc.Store.Get(c.Request.Context(), "shops/"+s.ShopID+"/products", &products)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		fc.Log.Error("feedback read failed", zap.String("shopId", s.ShopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}

	feedback := analytics.FlattenRatings(products)
	if feedback == nil {
		feedback = []models.FeedbackEntry{}
	}
	s.Views.PutFeedback(s.ShopID, feedback)
	c.JSON(http.StatusOK, feedback)
}
