package iorderitem

import (
	"context"

	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item postgres repository.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error)
}
