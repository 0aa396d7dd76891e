package reservation

import "github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"

// Item is a single reservation request line: which catalog item and how many units.
type Item struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// FromOrderItems builds one reservation line per order item.
func FromOrderItems(items []orderitem.OrderItem) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = Item{
			ItemID:   item.ItemOrdered.CatalogItemID,
			Quantity: item.Units,
		}
	}

	return out
}
