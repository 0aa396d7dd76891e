package orderstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/dal/uow"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
)

// Store persists orders together with their items.
type Store struct {
	pg *postgres.Client
}

// NewStore creates a new order store.
func NewStore(pg *postgres.Client) *Store {
	return &Store{pg: pg}
}

func (s *Store) newUOW() *uow.UnitOfWork {
	return uow.NewUnitOfWork(s.pg.Pool())
}

// AddOrder writes the order and all of its items in one transaction and
// returns the order with generated ids. Nothing is written on error.
func (s *Store) AddOrder(ctx context.Context, o order.Order) (order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() {
		if err := work.Rollback(context.WithoutCancel(ctx)); err != nil {
			slog.ErrorContext(ctx, "Failed to rollback order transaction", "error", err)
		}
	}()

	saved, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]orderitem.OrderItem, len(o.OrderItems))
	for i, item := range o.OrderItems {
		item.OrderID = saved.ID
		items[i] = item
	}

	saved.OrderItems, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return saved, nil
}

// GetOrder returns the order with its items, or nil if it does not exist.
func (s *Store) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	orders, err := s.ListOrders(ctx, &order.QueryOrdersModel{Ids: []int64{id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	return &orders[0], nil
}

// ListOrders returns the orders matching filter with their items, newest first.
func (s *Store) ListOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	items, err := work.OrderItemRepository().ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		if found, ok := byOrder[orders[i].ID]; ok {
			orders[i].OrderItems = found
		}
	}

	return orders, nil
}
