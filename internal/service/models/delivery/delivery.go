package delivery

import (
	"encoding/json"

	"github.com/corray333/backend-labs/checkout/internal/service/models/address"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDetails is the projection of a placed order sent to the delivery service.
// It is never persisted.
type OrderDetails struct {
	ID            uuid.UUID
	OrderID       int64
	BuyerID       string
	ShipToAddress address.Address
	OrderItems    []orderitem.OrderItem
	FinalPrice    decimal.Decimal
}

// FromOrder builds delivery details for o with a freshly generated id.
func FromOrder(o order.Order) OrderDetails {
	return OrderDetails{
		ID:            uuid.New(),
		OrderID:       o.ID,
		BuyerID:       o.BuyerID,
		ShipToAddress: o.ShipToAddress,
		OrderItems:    o.OrderItems,
		FinalPrice:    o.Total(),
	}
}

type wireItemOrdered struct {
	CatalogItemID int64  `json:"catalogItemId"`
	ProductName   string `json:"productName"`
	PictureURI    string `json:"pictureUri"`
}

type wireOrderItem struct {
	ID          int64           `json:"id"`
	ItemOrdered wireItemOrdered `json:"itemOrdered"`
	UnitPrice   json.Number     `json:"unitPrice"`
	Units       int             `json:"units"`
}

type wireOrderDetails struct {
	ID            uuid.UUID       `json:"id"`
	BuyerID       string          `json:"buyerId"`
	ShipToAddress address.Address `json:"shipToAddress"`
	OrderItems    []wireOrderItem `json:"orderItems"`
	FinalPrice    json.Number     `json:"finalPrice"`
}

// MarshalJSON encodes the details with money as JSON numbers with two decimals.
func (d OrderDetails) MarshalJSON() ([]byte, error) {
	items := make([]wireOrderItem, len(d.OrderItems))
	for i, item := range d.OrderItems {
		items[i] = wireOrderItem{
			ID: item.ID,
			ItemOrdered: wireItemOrdered{
				CatalogItemID: item.ItemOrdered.CatalogItemID,
				ProductName:   item.ItemOrdered.ProductName,
				PictureURI:    item.ItemOrdered.PictureURI,
			},
			UnitPrice: money(item.UnitPrice),
			Units:     item.Units,
		}
	}

	return json.Marshal(wireOrderDetails{
		ID:            d.ID,
		BuyerID:       d.BuyerID,
		ShipToAddress: d.ShipToAddress,
		OrderItems:    items,
		FinalPrice:    money(d.FinalPrice),
	})
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
