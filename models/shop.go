package models

// Shop is a merchant record from the shop directory (remote API) and from
// shops/{shopId} in the store.
type Shop struct {
	ShopID             string `json:"shopId"`
	OwnerID            string `json:"ownerId,omitempty"`
	StoreName          string `json:"storeName"`
	ShopAddress        string `json:"shopAddress,omitempty"`
	StoreDescription   string `json:"storeDescription,omitempty"`
	StorePhotoURL      string `json:"storePhotoUrl,omitempty"`
	StoreBackgroundURL string `json:"storeBackgroundUrl,omitempty"`
}

// ShopInfo is the header slice of a shop used by the dashboard banner.
type ShopInfo struct {
	StoreName          string `json:"storeName"`
	StorePhotoURL      string `json:"storePhotoUrl,omitempty"`
	StoreBackgroundURL string `json:"storeBackgroundUrl,omitempty"`
}
