package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/auth"
	"shopdash/blob"
	"shopdash/models"
	"shopdash/store"
)

// ShopController edits the public shop profile.
type ShopController struct {
	Store store.TreeStore
	Blobs blob.Store
	Log   *zap.Logger
}

// GetShop returns the shop profile plus its product count.
func (sc *ShopController) GetShop(c *gin.Context) {
	s := auth.SessionFrom(c)

	var shop struct {
		models.Shop
		Products map[string]models.Product `json:"products"`
	}
	err := sc.Store.Get(c.Request.Context(), "shops/"+s.ShopID, &shop)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	if err != nil {
		sc.Log.Error("shop read failed", zap.String("shopId", s.ShopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}

	shop.ShopID = s.ShopID
	c.JSON(http.StatusOK, gin.H{
		"shop":         shop.Shop,
		"productCount": len(shop.Products),
	})
}

type shopUpdateRequest struct {
	StoreName        string `json:"storeName" binding:"required"`
	ShopAddress      string `json:"shopAddress"`
	StoreDescription string `json:"storeDescription"`
}

// UpdateShop writes the editable shop profile fields.
func (sc *ShopController) UpdateShop(c *gin.Context) {
	var req shopUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := auth.SessionFrom(c)
	base := "shops/" + s.ShopID
	updates := map[string]any{
		base + "/storeName":        req.StoreName,
		base + "/shopAddress":      req.ShopAddress,
		base + "/storeDescription": req.StoreDescription,
	}
	if err := sc.Store.Update(c.Request.Context(), updates); err != nil {
		sc.Log.Error("shop update failed", zap.String("shopId", s.ShopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save changes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop profile updated"})
}

// uploadShopImage covers the store photo and the banner, which differ only
// in the field they land in.
func (sc *ShopController) uploadShopImage(c *gin.Context, field string) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	s := auth.SessionFrom(c)
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	name := fmt.Sprintf("shop_images/%s_%s_%d", s.ShopID, field, time.Now().UnixMilli())
	url, err := sc.Blobs.Save(c.Request.Context(), name, fh.Header.Get("Content-Type"), f)
	if err != nil {
		sc.Log.Error("shop image upload failed", zap.String("shopId", s.ShopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := sc.Store.Update(c.Request.Context(), map[string]any{
		"shops/" + s.ShopID + "/" + field: url,
	}); err != nil {
		sc.Log.Error("shop image write failed", zap.String("shopId", s.ShopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{field: url})
}

// UploadPhoto replaces the shop's profile photo.
func (sc *ShopController) UploadPhoto(c *gin.Context) {
	sc.uploadShopImage(c, "storePhotoUrl")
}

// UploadBackground replaces the shop's banner image.
func (sc *ShopController) UploadBackground(c *gin.Context) {
	sc.uploadShopImage(c, "storeBackgroundUrl")
}
