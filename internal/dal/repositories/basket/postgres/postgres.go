package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/service/models/basket"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BasketItemDal represents basket item data access layer model.
type BasketItemDal struct {
	Id            int64           `db:"id"`
	BasketId      int64           `db:"basket_id"`
	CatalogItemId int64           `db:"catalog_item_id"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Quantity      int             `db:"quantity"`
}

// ToModel converts BasketItemDal to service layer basket item.
func (b *BasketItemDal) ToModel() basket.Item {
	return basket.Item{
		ID:            b.Id,
		BasketID:      b.BasketId,
		CatalogItemID: b.CatalogItemId,
		UnitPrice:     b.UnitPrice,
		Quantity:      b.Quantity,
	}
}

// PostgresBasketRepository represents a Postgres basket repository.
type PostgresBasketRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresBasketRepository creates a new Postgres basket repository.
func NewPostgresBasketRepository(conn postgres.GenericConn) *PostgresBasketRepository {
	return &PostgresBasketRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindWithItems returns the basket with its items, or nil if no basket has the id.
func (r *PostgresBasketRepository) FindWithItems(ctx context.Context, id int64) (*basket.Basket, error) {
	sql, args, err := r.sb.
		Select("id", "buyer_id").
		From("baskets").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build basket query: %w", err)
	}

	b := &basket.Basket{}
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.BuyerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query basket: %w", err)
	}

	sql, args, err = r.sb.
		Select("id", "basket_id", "catalog_item_id", "unit_price", "quantity").
		From("basket_items").
		Where(sq.Eq{"basket_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build basket items query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query basket items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dal BasketItemDal
		if err := rows.Scan(&dal.Id, &dal.BasketId, &dal.CatalogItemId, &dal.UnitPrice, &dal.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan basket item: %w", err)
		}
		b.Items = append(b.Items, dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return b, nil
}
