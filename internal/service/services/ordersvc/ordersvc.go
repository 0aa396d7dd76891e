package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/metrics"
	"github.com/corray333/backend-labs/checkout/internal/service/models/address"
	"github.com/corray333/backend-labs/checkout/internal/service/models/basket"
	"github.com/corray333/backend-labs/checkout/internal/service/models/catalogitem"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrBasketNotFound     = errors.New("basket not found")
	ErrEmptyBasket        = errors.New("basket is empty")
	ErrInvalidBasketItem  = errors.New("invalid basket item")
	ErrCatalogItemMissing = errors.New("catalog item missing")
	ErrPersistence        = errors.New("failed to persist order")
)

type basketRepository interface {
	FindWithItems(ctx context.Context, id int64) (*basket.Basket, error)
}

type catalogRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]catalogitem.CatalogItem, error)
}

type orderStore interface {
	AddOrder(ctx context.Context, o order.Order) (order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	ListOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

type reservationPublisher interface {
	Publish(ctx context.Context, items []orderitem.OrderItem)
}

type deliveryNotifier interface {
	Notify(ctx context.Context, o order.Order)
}

type uriComposer interface {
	ComposePicURI(uri string) string
}

// OrderService is a service for placing and reading orders.
type OrderService struct {
	baskets   basketRepository
	catalog   catalogRepository
	store     orderStore
	publisher reservationPublisher
	notifier  deliveryNotifier
	uris      uriComposer
	metrics   *metrics.Registry
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithBasketRepository(r basketRepository) option {
	return func(s *OrderService) {
		s.baskets = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalogRepository(r catalogRepository) option {
	return func(s *OrderService) {
		s.catalog = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderStore(st orderStore) option {
	return func(s *OrderService) {
		s.store = st
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithReservationPublisher(p reservationPublisher) option {
	return func(s *OrderService) {
		s.publisher = p
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithDeliveryNotifier(n deliveryNotifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// WithURIComposer sets how catalog picture URIs are rewritten into order items.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithURIComposer(c uriComposer) option {
	return func(s *OrderService) {
		s.uris = c
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.Registry) option {
	return func(s *OrderService) {
		s.metrics = m
	}
}

// CreateOrder turns the basket into a persisted order. Once the order is
// stored the call succeeds: the reservation message and the delivery
// notification are attempted afterwards and their failures are only logged.
// A context cancelled before the order is stored aborts with nothing written.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	basketID int64,
	shipTo address.Address,
) (order.Order, error) {
	started := time.Now()
	defer func() { s.metrics.ObserveDuration(time.Since(started)) }()

	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.CreateOrder")
	defer span.End()
	span.SetAttributes(attribute.Int64("basket.id", basketID))

	placed, err := s.placeOrder(ctx, basketID, shipTo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.IncOrder(resultOf(err))
		slog.WarnContext(ctx, "Checkout failed", "basket_id", basketID, "error", err)

		return order.Order{}, err
	}
	s.metrics.IncOrder(metrics.ResultPlaced)
	span.SetAttributes(attribute.Int64("order.id", placed.ID))
	slog.InfoContext(ctx, "Order placed",
		"order_id", placed.ID,
		"basket_id", basketID,
		"items", len(placed.OrderItems),
		"total", placed.Total().StringFixed(2),
	)

	// The order is durable; a caller going away must not skip the side effects.
	sideCtx := context.WithoutCancel(ctx)
	if s.publisher != nil {
		s.publisher.Publish(sideCtx, placed.OrderItems)
	}
	if s.notifier != nil {
		s.notifier.Notify(sideCtx, placed)
	}

	return placed, nil
}

func (s *OrderService) placeOrder(
	ctx context.Context,
	basketID int64,
	shipTo address.Address,
) (order.Order, error) {
	b, err := s.baskets.FindWithItems(ctx, basketID)
	if err != nil {
		return order.Order{}, err
	}
	if b == nil {
		return order.Order{}, fmt.Errorf("%w: %d", ErrBasketNotFound, basketID)
	}
	if len(b.Items) == 0 {
		return order.Order{}, fmt.Errorf("%w: %d", ErrEmptyBasket, basketID)
	}

	catalogItems, err := s.catalog.ListByIDs(ctx, b.CatalogItemIDs())
	if err != nil {
		return order.Order{}, err
	}
	byID := make(map[int64]catalogitem.CatalogItem, len(catalogItems))
	for _, item := range catalogItems {
		byID[item.ID] = item
	}

	items := make([]orderitem.OrderItem, 0, len(b.Items))
	for _, basketItem := range b.Items {
		catalogItem, ok := byID[basketItem.CatalogItemID]
		if !ok {
			return order.Order{}, fmt.Errorf("%w: %d", ErrCatalogItemMissing, basketItem.CatalogItemID)
		}

		pictureURI := catalogItem.PictureURI
		if s.uris != nil {
			pictureURI = s.uris.ComposePicURI(pictureURI)
		}
		itemOrdered := orderitem.ItemOrdered{
			CatalogItemID: catalogItem.ID,
			ProductName:   catalogItem.Name,
			PictureURI:    pictureURI,
		}

		item, err := orderitem.New(itemOrdered, basketItem.UnitPrice, basketItem.Quantity)
		if err != nil {
			return order.Order{}, fmt.Errorf("%w: basket item %d: %w", ErrInvalidBasketItem, basketItem.ID, err)
		}
		items = append(items, item)
	}

	o := order.New(b.BuyerID, shipTo, items)

	if err := ctx.Err(); err != nil {
		return order.Order{}, err
	}

	placed, err := s.store.AddOrder(ctx, o)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return order.Order{}, ctxErr
		}

		return order.Order{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return placed, nil
}

// GetOrder returns the order with its items, or nil if it does not exist.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.GetOrder")
	defer span.End()

	return s.store.GetOrder(ctx, id)
}

// ListOrders retrieves orders with their items based on filter.
func (s *OrderService) ListOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.ListOrders")
	defer span.End()

	return s.store.ListOrders(ctx, filter)
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, ErrBasketNotFound):
		return metrics.ResultBasketNotFound
	case errors.Is(err, ErrEmptyBasket):
		return metrics.ResultEmptyBasket
	case errors.Is(err, ErrInvalidBasketItem):
		return metrics.ResultInvalidItem
	case errors.Is(err, ErrCatalogItemMissing):
		return metrics.ResultCatalogItemMissing
	case errors.Is(err, ErrPersistence):
		return metrics.ResultPersistenceFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCancelled
	default:
		return metrics.ResultFailed
	}
}
