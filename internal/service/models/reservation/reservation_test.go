package reservation

import (
	"encoding/json"
	"testing"

	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
)

func TestFromOrderItems_UsesCatalogItemID(t *testing.T) {
	items := []orderitem.OrderItem{
		{ID: 900, ItemOrdered: orderitem.ItemOrdered{CatalogItemID: 1}, Units: 2},
		{ID: 901, ItemOrdered: orderitem.ItemOrdered{CatalogItemID: 5}, Units: 1},
	}

	data, err := json.Marshal(FromOrderItems(items))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `[{"itemId":1,"quantity":2},{"itemId":5,"quantity":1}]`
	if string(data) != want {
		t.Fatalf("payload = %s, want %s", data, want)
	}
}
