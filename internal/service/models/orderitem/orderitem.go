package orderitem

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaxUnits is the largest quantity an order item can carry; it matches the
// INT units column.
const MaxUnits = math.MaxInt32

// ErrInvalid is returned when an order item violates its invariants.
var ErrInvalid = errors.New("invalid order item")

// ItemOrdered is a snapshot of the catalog item at the time of checkout.
type ItemOrdered struct {
	CatalogItemID int64  `json:"catalogItemId"`
	ProductName   string `json:"productName"`
	PictureURI    string `json:"pictureUri"`
}

// OrderItem represents an item within an order.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ItemOrdered ItemOrdered     `json:"itemOrdered"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Units       int             `json:"units"`
}

// New creates an order item. Units must be in (0, MaxUnits] and the unit price must not be negative.
func New(itemOrdered ItemOrdered, unitPrice decimal.Decimal, units int) (OrderItem, error) {
	if units <= 0 {
		return OrderItem{}, fmt.Errorf("%w: units must be positive, got %d", ErrInvalid, units)
	}
	if int64(units) > MaxUnits {
		return OrderItem{}, fmt.Errorf("%w: units must not exceed %d, got %d", ErrInvalid, MaxUnits, units)
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, fmt.Errorf("%w: unit price must not be negative, got %s", ErrInvalid, unitPrice)
	}

	return OrderItem{
		ItemOrdered: itemOrdered,
		UnitPrice:   unitPrice,
		Units:       units,
	}, nil
}

// Subtotal returns UnitPrice * Units.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Units)))
}
