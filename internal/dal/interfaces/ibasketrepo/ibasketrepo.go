package ibasketrepo

import (
	"context"

	"github.com/corray333/backend-labs/checkout/internal/service/models/basket"
)

// IBasketRepository is an interface for basket lookups.
type IBasketRepository interface {
	// FindWithItems returns the basket with its items, or nil if it does not exist.
	FindWithItems(ctx context.Context, id int64) (*basket.Basket, error)
}
