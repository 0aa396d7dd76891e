package icatalogrepo

import (
	"context"

	"github.com/corray333/backend-labs/checkout/internal/service/models/catalogitem"
)

// ICatalogRepository is an interface for read-only catalog lookups.
type ICatalogRepository interface {
	// ListByIDs returns the catalog items whose ids are in ids. Missing ids are
	// silently absent from the result.
	ListByIDs(ctx context.Context, ids []int64) ([]catalogitem.CatalogItem, error)
}
