package catalogitem

import "github.com/shopspring/decimal"

// CatalogItem represents a product in the catalog.
type CatalogItem struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	PictureURI string          `json:"pictureUri"`
	Price      decimal.Decimal `json:"price"`
}
