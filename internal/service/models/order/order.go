package order

import (
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/address"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// Order represents a placed order.
type Order struct {
	ID            int64                 `json:"id"`
	BuyerID       string                `json:"buyerId"`
	ShipToAddress address.Address       `json:"shipToAddress"`
	OrderDate     time.Time             `json:"orderDate"`
	OrderItems    []orderitem.OrderItem `json:"orderItems"`
}

// New creates an order that owns its own copy of items.
func New(buyerID string, shipTo address.Address, items []orderitem.OrderItem) Order {
	snapshot := make([]orderitem.OrderItem, len(items))
	copy(snapshot, items)

	return Order{
		BuyerID:       buyerID,
		ShipToAddress: shipTo,
		OrderDate:     time.Now().UTC(),
		OrderItems:    snapshot,
	}
}

// Total returns the sum of unit price times units over all items.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.OrderItems {
		total = total.Add(item.Subtotal())
	}

	return total
}
