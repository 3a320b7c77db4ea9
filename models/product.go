package models

import "github.com/shopspring/decimal"

// Product types shown as catalog groups. Anything else falls under Others.
const (
	TypeChair     = "Chair"
	TypeSofa      = "Sofa"
	TypeBaskets   = "Baskets"
	TypeTableDeco = "Table Deco"
	TypeOthers    = "Others"
)

// ProductTypes lists the catalog groups in display order.
var ProductTypes = []string{TypeChair, TypeSofa, TypeBaskets, TypeTableDeco, TypeOthers}

// RattanTypes lists the accepted material types.
var RattanTypes = []string{"Natural Rattan", "Wicker Rattan", "Reed Rattan", "Synthetic Rattan"}

// Product is a catalog item stored under shops/{shopId}/products/{productId}.
type Product struct {
	ID            string            `json:"productId,omitempty"`
	ProductName   string            `json:"productName" binding:"required"`
	ProductType   string            `json:"productType"`
	RattanType    string            `json:"rattanType,omitempty"`
	Description   string            `json:"description,omitempty"`
	Price         decimal.Decimal   `json:"price"`
	Stock         int               `json:"stock"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	GalleryImages []string          `json:"galleryImages,omitempty"`
	Ratings       map[string]Rating `json:"ratings,omitempty"`
}

// Rating is one buyer review attached to a product.
type Rating struct {
	UserFullName string `json:"userFullName"`
	Stars        int    `json:"stars"`
	Comment      string `json:"comment"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// NormalizeProductType maps unknown or empty types to Others.
func NormalizeProductType(t string) string {
	for _, known := range ProductTypes {
		if t == known {
			return t
		}
	}
	return TypeOthers
}

// ValidRattanType reports whether t is an accepted material type. Empty is
// allowed: not every product declares a material.
func ValidRattanType(t string) bool {
	if t == "" {
		return true
	}
	for _, known := range RattanTypes {
		if t == known {
			return true
		}
	}
	return false
}
