package ports

import (
	"context"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for items and their stock.
type ItemRepository interface {
	Add(ctx context.Context, it *item.Item) error

	// Get returns errs.ObjectNotFoundError if no item has the id.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// GetForUpdate loads and row-locks the items with the given ids until the
	// transaction ends. Locks are taken in ascending id order. Every id must
	// exist; duplicates are collapsed.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error)

	// UpdateStock writes it.StockChange() as a delta. The write is refused with
	// errs.InsufficientStockError if it would drive the stored stock negative.
	UpdateStock(ctx context.Context, it *item.Item) error
}
