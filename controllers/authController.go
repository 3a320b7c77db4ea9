package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/auth"
	"shopdash/models"
)

// ShopDirectory resolves the owner of each shop; backed by the remote API's
// GET /shops.
type ShopDirectory interface {
	Shops(ctx context.Context) ([]models.Shop, error)
}

// AuthController handles login and logout.
type AuthController struct {
	Identity auth.IdentityProvider
	Shops    ShopDirectory
	Sessions *auth.Manager
	Log      *zap.Logger
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, resolves the shop owned by the user and opens
// a session. Failures surface as inline messages, never as fatal errors.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := ac.Identity.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		ac.Log.Error("identity provider unavailable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not verify credentials. Please try again."})
		return
	}

	shops, err := ac.Shops.Shops(c.Request.Context())
	if err != nil {
		ac.Log.Error("shop directory fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load shop data. Please try again."})
		return
	}

	owned, err := ownedShop(shops, userID)
	if errors.Is(err, models.ErrNoShopForUser) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No matching shop found for this user."})
		return
	}

	s := ac.Sessions.Create(userID, owned.ShopID, owned.StoreName)
	ac.Log.Info("merchant logged in", zap.String("shopId", s.ShopID))
	c.JSON(http.StatusOK, gin.H{
		"token":     s.Token,
		"userId":    s.UserID,
		"shopId":    s.ShopID,
		"storeName": s.StoreName,
	})
}

// ownedShop finds the shop whose ownerId matches userID.
func ownedShop(shops []models.Shop, userID string) (models.Shop, error) {
	for _, s := range shops {
		if s.OwnerID == userID {
			return s, nil
		}
	}
	return models.Shop{}, models.ErrNoShopForUser
}

// Logout ends the session, dropping its cached view-models.
func (ac *AuthController) Logout(c *gin.Context) {
	s := auth.SessionFrom(c)
	ac.Sessions.End(s.Token)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
