package orderitem

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNew_RejectsNonPositiveUnits(t *testing.T) {
	for _, units := range []int{0, -1} {
		_, err := New(ItemOrdered{CatalogItemID: 1}, decimal.NewFromInt(1), units)
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("units=%d: expected ErrInvalid, got %v", units, err)
		}
	}
}

func TestNew_RejectsUnitsAboveColumnRange(t *testing.T) {
	limit := int64(math.MaxInt32)
	if _, err := New(ItemOrdered{CatalogItemID: 1}, decimal.NewFromInt(1), int(limit+1)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := New(ItemOrdered{CatalogItemID: 1}, decimal.NewFromInt(1), int(limit)); err != nil {
		t.Fatalf("MaxUnits rejected: %v", err)
	}
}

func TestNew_RejectsNegativePrice(t *testing.T) {
	_, err := New(ItemOrdered{CatalogItemID: 1}, decimal.RequireFromString("-0.01"), 1)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestNew_AllowsFreeItems(t *testing.T) {
	item, err := New(ItemOrdered{CatalogItemID: 1, ProductName: "Sticker"}, decimal.Zero, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Subtotal().IsZero() {
		t.Fatalf("subtotal = %s, want 0", item.Subtotal())
	}
}
