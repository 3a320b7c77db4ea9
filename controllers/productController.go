package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopdash/analytics"
	"shopdash/auth"
	"shopdash/blob"
	"shopdash/models"
	"shopdash/store"
)

// ProductController manages the shop's catalog in the realtime store.
type ProductController struct {
	Store store.TreeStore
	Blobs blob.Store
	Log   *zap.Logger
}

func productsPath(shopID string) string { return "shops/" + shopID + "/products" }

func (pc *ProductController) loadProducts(c *gin.Context, shopID string) (map[string]models.Product, bool) {
	var products map[string]models.Product
	err := pc.Store.Get(c.Request.Context(), productsPath(shopID), &products)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		pc.Log.Error("product read failed", zap.String("shopId", shopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return nil, false
	}
	return products, true
}

// ListProducts returns the catalog grouped by product type, optionally
// filtered by a name substring.
func (pc *ProductController) ListProducts(c *gin.Context) {
	s := auth.SessionFrom(c)
	products, ok := pc.loadProducts(c, s.ShopID)
	if !ok {
		return
	}

	if q := strings.ToLower(c.Query("search")); q != "" {
		for id, p := range products {
			if !strings.Contains(strings.ToLower(p.ProductName), q) {
				delete(products, id)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"productTypes": analytics.GroupByType(products)})
}

func validateProduct(p *models.Product) error {
	if !models.ValidRattanType(p.RattanType) {
		return fmt.Errorf("unknown rattan type %q", p.RattanType)
	}
	p.ProductType = models.NormalizeProductType(p.ProductType)
	return nil
}

// CreateProduct adds a catalog item under a generated key.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateProduct(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := auth.SessionFrom(c)
	product.ID = ""
	id, err := pc.Store.Push(c.Request.Context(), productsPath(s.ShopID), product)
	if err != nil {
		pc.Log.Error("product create failed", zap.String("shopId", s.ShopID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save product"})
		return
	}

	product.ID = id
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct edits the editable fields of a product. Field-level writes
// keep ratings and gallery images intact.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateProduct(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := auth.SessionFrom(c)
	base := productsPath(s.ShopID) + "/" + id
	updates := map[string]any{
		base + "/productName": product.ProductName,
		base + "/productType": product.ProductType,
		base + "/rattanType":  product.RattanType,
		base + "/description": product.Description,
		base + "/price":       product.Price,
		base + "/stock":       product.Stock,
	}
	if err := pc.Store.Update(c.Request.Context(), updates); err != nil {
		pc.Log.Error("product update failed", zap.String("productId", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct removes a product and everything under it.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	s := auth.SessionFrom(c)
	id := c.Param("id")
	if err := pc.Store.Delete(c.Request.Context(), productsPath(s.ShopID)+"/"+id); err != nil {
		pc.Log.Error("product delete failed", zap.String("productId", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (pc *ProductController) saveUpload(c *gin.Context, fh *multipart.FileHeader, name string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return pc.Blobs.Save(c.Request.Context(), name, fh.Header.Get("Content-Type"), f)
}

// UploadImage replaces the product's main photo.
func (pc *ProductController) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	s := auth.SessionFrom(c)
	id := c.Param("id")
	name := fmt.Sprintf("product_images/%d_%s", time.Now().UnixMilli(), fh.Filename)
	url, err := pc.saveUpload(c, fh, name)
	if err != nil {
		pc.Log.Error("image upload failed", zap.String("productId", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
		return
	}

	path := productsPath(s.ShopID) + "/" + id + "/imageUrl"
	if err := pc.Store.Update(c.Request.Context(), map[string]any{path: url}); err != nil {
		pc.Log.Error("image url write failed", zap.String("productId", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// UploadGallery replaces the product's gallery with the uploaded files.
func (pc *ProductController) UploadGallery(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one image file is required"})
		return
	}

	s := auth.SessionFrom(c)
	id := c.Param("id")
	var urls []string
	for _, fh := range form.File["images"] {
		name := fmt.Sprintf("product_gallery/%d_%s", time.Now().UnixMilli(), fh.Filename)
		url, err := pc.saveUpload(c, fh, name)
		if err != nil {
			pc.Log.Error("gallery upload failed", zap.String("productId", id), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload gallery"})
			return
		}
		urls = append(urls, url)
	}

	path := productsPath(s.ShopID) + "/" + id + "/galleryImages"
	if err := pc.Store.Update(c.Request.Context(), map[string]any{path: urls}); err != nil {
		pc.Log.Error("gallery write failed", zap.String("productId", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save gallery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"galleryImages": urls})
}
