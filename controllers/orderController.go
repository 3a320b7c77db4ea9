package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/auth"
	"shopdash/cache"
	"shopdash/models"
	"shopdash/store"
)

// DeliveryNotifier covers the remote API calls the orders flow needs: the
// shop lookup for the notification's display name and the notification
// trigger itself.
type DeliveryNotifier interface {
	Shop(ctx context.Context, shopID string) (models.Shop, error)
	NotifyDeliveryStarted(ctx context.Context, buyerID, orderID, shopName string) error
}

// OrderController processes buyer orders: listing by status, detail view,
// approval and delivery scheduling.
type OrderController struct {
	Store    store.TreeStore
	Notifier DeliveryNotifier
	Products *cache.ProductCache
	Log      *zap.Logger
}

func shopOrderPath(shopID, orderID string) string {
	return "shopOrders/" + shopID + "/" + orderID
}

func userOrderPath(buyerID, orderID string) string {
	return "userOrders/" + buyerID + "/" + orderID
}

// ListOrders returns the shop's orders bucketed by status.
func (oc *OrderController) ListOrders(c *gin.Context) {
	s := auth.SessionFrom(c)

	var orders map[string]models.Order
	err := oc.Store.Get(c.Request.Context(), "shopOrders/"+s.ShopID, &orders)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		oc.Log.Error("orders read failed", zap.String("shopId", s.ShopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}

	var buckets models.OrderBuckets
	for id, o := range orders {
		o.OrderID = id
		o.ShopID = s.ShopID
		buckets.Add(o)
	}
	c.JSON(http.StatusOK, buckets)
}

func (oc *OrderController) loadOrder(c *gin.Context, shopID, orderID string) (models.Order, bool) {
	var order models.Order
	err := oc.Store.Get(c.Request.Context(), shopOrderPath(shopID, orderID), &order)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return models.Order{}, false
	}
	if err != nil {
		oc.Log.Error("order read failed", zap.String("orderId", orderID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return models.Order{}, false
	}
	order.OrderID = orderID
	order.ShopID = shopID
	return order, true
}

// GetOrder returns one order plus the catalog records of its line items,
// resolved through the product cache.
func (oc *OrderController) GetOrder(c *gin.Context) {
	s := auth.SessionFrom(c)
	order, ok := oc.loadOrder(c, s.ShopID, c.Param("id"))
	if !ok {
		return
	}

	details := make(map[string]models.Product)
	for _, item := range order.Items {
		if p, ok := oc.Products.Get(s.ShopID, item.ProductID); ok {
			details[item.ProductID] = p
			continue
		}
		var p models.Product
		err := oc.Store.Get(c.Request.Context(), "shops/"+s.ShopID+"/products/"+item.ProductID, &p)
		if err != nil {
			// The product may have been deleted since the order was placed.
			if !errors.Is(err, models.ErrNotFound) {
				oc.Log.Warn("order product lookup failed",
					zap.String("productId", item.ProductID), zap.Error(err))
			}
			continue
		}
		oc.Products.Put(s.ShopID, item.ProductID, p)
		details[item.ProductID] = p
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "products": details})
}

// transition writes the status change to both order mirrors in one atomic
// multi-path update, with any extra per-order fields.
func (oc *OrderController) transition(c *gin.Context, order models.Order, next models.OrderStatus, extra map[string]any) bool {
	if !order.Status.CanTransition(next) {
		err := fmt.Errorf("%w: %s to %s", models.ErrInvalidTransition, order.Status, next)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return false
	}

	updates := map[string]any{
		shopOrderPath(order.ShopID, order.OrderID) + "/status": next,
		userOrderPath(order.BuyerID, order.OrderID) + "/status": next,
	}
	for field, v := range extra {
		updates[shopOrderPath(order.ShopID, order.OrderID)+"/"+field] = v
		updates[userOrderPath(order.BuyerID, order.OrderID)+"/"+field] = v
	}

	if err := oc.Store.Update(c.Request.Context(), updates); err != nil {
		oc.Log.Error("order transition failed",
			zap.String("orderId", order.OrderID), zap.String("to", string(next)), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update order"})
		return false
	}
	return true
}

// ApproveOrder moves a pending order to Approved.
func (oc *OrderController) ApproveOrder(c *gin.Context) {
	s := auth.SessionFrom(c)
	order, ok := oc.loadOrder(c, s.ShopID, c.Param("id"))
	if !ok {
		return
	}
	if !oc.transition(c, order, models.StatusApproved, nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order approved"})
}

type deliveryRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// SetDelivery moves an approved order to To Deliver with its delivery
// window, then triggers the buyer's notification. The notification is
// fire-and-forget: a failure is logged, not surfaced.
func (oc *OrderController) SetDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := auth.SessionFrom(c)
	order, ok := oc.loadOrder(c, s.ShopID, c.Param("id"))
	if !ok {
		return
	}

	estimate := models.DeliveryEstimate{From: req.From, To: req.To}
	if !oc.transition(c, order, models.StatusToDeliver, map[string]any{"deliveryEstimate": estimate}) {
		return
	}

	shopName := s.StoreName
	if shop, err := oc.Notifier.Shop(c.Request.Context(), s.ShopID); err == nil && shop.StoreName != "" {
		shopName = shop.StoreName
	}
	if err := oc.Notifier.NotifyDeliveryStarted(c.Request.Context(), order.BuyerID, order.OrderID, shopName); err != nil {
		oc.Log.Warn("delivery notification failed", zap.String("orderId", order.OrderID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery estimate set", "deliveryEstimate": estimate})
}
