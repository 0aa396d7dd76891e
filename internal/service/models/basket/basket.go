package basket

import "github.com/shopspring/decimal"

// Basket represents a buyer's cart before checkout.
type Basket struct {
	ID      int64  `json:"id"`
	BuyerID string `json:"buyerId"`
	Items   []Item `json:"items"`
}

// Item represents a line in a basket. UnitPrice is the price at the moment
// the item was added to the basket.
type Item struct {
	ID            int64           `json:"id"`
	BasketID      int64           `json:"basketId"`
	CatalogItemID int64           `json:"catalogItemId"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
}

// CatalogItemIDs returns the distinct catalog item ids referenced by the basket,
// in order of first appearance.
func (b *Basket) CatalogItemIDs() []int64 {
	seen := make(map[int64]struct{}, len(b.Items))
	ids := make([]int64, 0, len(b.Items))
	for _, item := range b.Items {
		if _, ok := seen[item.CatalogItemID]; ok {
			continue
		}
		seen[item.CatalogItemID] = struct{}{}
		ids = append(ids, item.CatalogItemID)
	}

	return ids
}
