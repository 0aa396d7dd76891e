package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/service/models/address"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model
type OrderDal struct {
	Id            int64     `db:"id"`
	BuyerId       string    `db:"buyer_id"`
	ShipToStreet  string    `db:"ship_to_street"`
	ShipToCity    string    `db:"ship_to_city"`
	ShipToState   string    `db:"ship_to_state"`
	ShipToCountry string    `db:"ship_to_country"`
	ShipToZipCode string    `db:"ship_to_zipcode"`
	OrderDate     time.Time `db:"order_date"`
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() order.Order {
	return order.Order{
		ID:      o.Id,
		BuyerID: o.BuyerId,
		ShipToAddress: address.Address{
			Street:  o.ShipToStreet,
			City:    o.ShipToCity,
			State:   o.ShipToState,
			Country: o.ShipToCountry,
			ZipCode: o.ShipToZipCode,
		},
		OrderDate:  o.OrderDate,
		OrderItems: []orderitem.OrderItem{}, // Will be populated separately
	}
}

// OrderDalFromModel converts service layer Order model to OrderDal
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:            o.ID,
		BuyerId:       o.BuyerID,
		ShipToStreet:  o.ShipToAddress.Street,
		ShipToCity:    o.ShipToAddress.City,
		ShipToState:   o.ShipToAddress.State,
		ShipToCountry: o.ShipToAddress.Country,
		ShipToZipCode: o.ShipToAddress.ZipCode,
		OrderDate:     o.OrderDate,
	}
}

var orderColumns = []string{
	"id",
	"buyer_id",
	"ship_to_street",
	"ship_to_city",
	"ship_to_state",
	"ship_to_country",
	"ship_to_zipcode",
	"order_date",
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts the order header and returns it with the generated id.
// Items are not written here.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.
		Insert("orders").
		Columns(orderColumns[1:]...).
		Values(
			dal.BuyerId,
			dal.ShipToStreet,
			dal.ShipToCity,
			dal.ShipToState,
			dal.ShipToCountry,
			dal.ShipToZipCode,
			dal.OrderDate,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// Query retrieves orders based on filter criteria
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.BuyerIds) > 0 {
		query = query.Where(sq.Eq{"buyer_id": filter.BuyerIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.BuyerId,
			&dal.ShipToStreet,
			&dal.ShipToCity,
			&dal.ShipToState,
			&dal.ShipToCountry,
			&dal.ShipToZipCode,
			&dal.OrderDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
