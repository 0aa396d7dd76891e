package basket

import (
	"slices"
	"testing"
)

func TestCatalogItemIDs_Distinct(t *testing.T) {
	b := Basket{Items: []Item{
		{CatalogItemID: 3},
		{CatalogItemID: 1},
		{CatalogItemID: 3},
		{CatalogItemID: 2},
	}}

	got := b.CatalogItemIDs()
	if !slices.Equal(got, []int64{3, 1, 2}) {
		t.Fatalf("unexpected ids: %v", got)
	}
}
