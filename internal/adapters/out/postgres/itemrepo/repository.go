package itemrepo

import (
	"context"
	"errors"
	"slices"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository persists items through the transaction it was created
// with. Stock is written as a guarded delta so concurrent writers can never
// drive it negative.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository returns a repository bound to db, usually a transaction.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Add inserts a new item.
func (r *GormItemRepository) Add(ctx context.Context, it *item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}

	dto := FromDomain(it)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	it.MarkStockPersisted()
	return nil
}

// Get returns the item with id or an ObjectNotFoundError.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetForUpdate locks the rows of the distinct ids in ascending id order and returns
// them in that order. Every id must exist.
func (r *GormItemRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error) {
	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		keys = append(keys, id.Bytes())
	}
	slices.SortFunc(keys, func(a, b uuid.UUID) int {
		return kernel.UUIDFromGoogle(a).Compare(kernel.UUIDFromGoogle(b))
	})
	keys = slices.Compact(keys)

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", keys).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(dtos))
	items := make([]*item.Item, 0, len(dtos))
	for _, dto := range dtos {
		it, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		found[dto.ID] = true
		items = append(items, it)
	}
	for _, key := range keys {
		if !found[key] {
			return nil, errs.NewObjectNotFoundError("item", key.String())
		}
	}

	return items, nil
}

// UpdateStock writes the stock change accumulated on it as a guarded delta.
// It fails with InsufficientStockError when the row would go negative.
func (r *GormItemRepository) UpdateStock(ctx context.Context, it *item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	delta := it.StockChange()
	if delta == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ? AND stock_quantity + ? >= 0", it.ID().Bytes(), delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var current ItemDTO
		if err := r.db.WithContext(ctx).Take(&current, "id = ?", it.ID().Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("item", it.ID().String())
			}
			return err
		}
		return errs.NewInsufficientStockError(it.ID().String(), -delta, current.StockQuantity)
	}

	it.MarkStockPersisted()
	return nil
}
