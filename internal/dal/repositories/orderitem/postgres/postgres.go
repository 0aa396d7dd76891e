package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id            int64           `db:"id"`
	OrderId       int64           `db:"order_id"`
	CatalogItemId int64           `db:"catalog_item_id"`
	ProductName   string          `db:"product_name"`
	PictureUri    string          `db:"picture_uri"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Units         int             `db:"units"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ID:      oi.Id,
		OrderID: oi.OrderId,
		ItemOrdered: orderitem.ItemOrdered{
			CatalogItemID: oi.CatalogItemId,
			ProductName:   oi.ProductName,
			PictureURI:    oi.PictureUri,
		},
		UnitPrice: oi.UnitPrice,
		Units:     oi.Units,
	}
}

// OrderItemDalFromModel converts service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi *orderitem.OrderItem) *OrderItemDal {
	return &OrderItemDal{
		Id:            oi.ID,
		OrderId:       oi.OrderID,
		CatalogItemId: oi.ItemOrdered.CatalogItemID,
		ProductName:   oi.ItemOrdered.ProductName,
		PictureUri:    oi.ItemOrdered.PictureURI,
		UnitPrice:     oi.UnitPrice,
		Units:         oi.Units,
	}
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts order items in one statement and returns them with ids, in input order.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	orderIds := make([]int64, len(orderItems))
	catalogItemIds := make([]int64, len(orderItems))
	productNames := make([]string, len(orderItems))
	pictureUris := make([]string, len(orderItems))
	unitPrices := make([]string, len(orderItems))
	units := make([]int32, len(orderItems))

	for i := range orderItems {
		dal := OrderItemDalFromModel(&orderItems[i])
		if dal.Units <= 0 || int64(dal.Units) > orderitem.MaxUnits {
			return nil, fmt.Errorf("%w: units out of range: %d", orderitem.ErrInvalid, dal.Units)
		}
		orderIds[i] = dal.OrderId
		catalogItemIds[i] = dal.CatalogItemId
		productNames[i] = dal.ProductName
		pictureUris[i] = dal.PictureUri
		unitPrices[i] = dal.UnitPrice.String()
		units[i] = int32(dal.Units)
	}

	// WITH ORDINALITY keeps RETURNING aligned with the input slice.
	sql := `
		INSERT INTO order_items (order_id, catalog_item_id, product_name, picture_uri, unit_price, units)
		SELECT order_id, catalog_item_id, product_name, picture_uri, unit_price, units
		FROM unnest($1::bigint[], $2::bigint[], $3::text[], $4::text[], $5::numeric[], $6::int[])
			WITH ORDINALITY AS t(order_id, catalog_item_id, product_name, picture_uri, unit_price, units, ord)
		ORDER BY ord
		RETURNING id, order_id, catalog_item_id, product_name, picture_uri, unit_price, units
	`

	rows, err := r.conn.Query(ctx, sql, orderIds, catalogItemIds, productNames, pictureUris, unitPrices, units)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(orderItems))
	for rows.Next() {
		dal, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// ListByOrderIDs retrieves the items of the given orders.
func (r *PostgresOrderItemRepository) ListByOrderIDs(
	ctx context.Context,
	orderIDs []int64,
) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql, args, err := r.sb.
		Select(
			"id",
			"order_id",
			"catalog_item_id",
			"product_name",
			"picture_uri",
			"unit_price",
			"units",
		).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		dal, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrderItem(row scanner) (*OrderItemDal, error) {
	var dal OrderItemDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.CatalogItemId,
		&dal.ProductName,
		&dal.PictureUri,
		&dal.UnitPrice,
		&dal.Units,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order item: %w", err)
	}

	return &dal, nil
}
