package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/service/models/catalogitem"
)

// PostgresCatalogRepository represents a read-only Postgres catalog repository.
type PostgresCatalogRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCatalogRepository creates a new Postgres catalog repository.
func NewPostgresCatalogRepository(conn postgres.GenericConn) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListByIDs returns the catalog items with the given ids.
func (r *PostgresCatalogRepository) ListByIDs(ctx context.Context, ids []int64) ([]catalogitem.CatalogItem, error) {
	if len(ids) == 0 {
		return []catalogitem.CatalogItem{}, nil
	}

	sql, args, err := r.sb.
		Select("id", "name", "picture_uri", "price").
		From("catalog_items").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items: %w", err)
	}
	defer rows.Close()

	var result []catalogitem.CatalogItem
	for rows.Next() {
		var item catalogitem.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.PictureURI, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
