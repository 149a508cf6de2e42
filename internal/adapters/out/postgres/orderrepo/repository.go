package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository is the write side of the order aggregate. It is bound to
// the transaction it was created with.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository returns a repository bound to db.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its delivery and lines. Item stock is written by
// the item repository.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	delivery, err := aggregate.Delivery()
	if err != nil {
		return err
	}
	lines, err := aggregate.OrderItems()
	if err != nil {
		return err
	}

	tx := r.db.WithContext(ctx)

	deliveryDTO := deliveryFromDomain(delivery)
	if err := tx.Create(&deliveryDTO).Error; err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}

	lineDTOs := make([]OrderItemDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, orderItemFromDomain(line))
	}
	return tx.Omit(clause.Associations).Create(&lineDTOs).Error
}

// Update writes the order status and, when loaded, the delivery status.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	tx := r.db.WithContext(ctx)

	result := tx.Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", aggregate.Status().String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	delivery, err := aggregate.Delivery()
	if err != nil {
		if errors.Is(err, errs.ErrLoaderUsage) {
			return nil
		}
		return err
	}
	result = tx.Model(&DeliveryDTO{}).
		Where("id = ?", delivery.ID().Bytes()).
		Update("status", delivery.Status().String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", delivery.ID().String())
	}
	return nil
}

// Get locks the order row and loads its whole graph.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)

	var dto OrderDTO
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var memberDTO memberrepo.MemberDTO
	if err := tx.Take(&memberDTO, "id = ?", dto.MemberID).Error; err != nil {
		return nil, err
	}
	m, err := memberrepo.ToDomain(memberDTO)
	if err != nil {
		return nil, err
	}

	var deliveryDTO DeliveryDTO
	if err := tx.Take(&deliveryDTO, "id = ?", dto.DeliveryID).Error; err != nil {
		return nil, err
	}
	d, err := deliveryToDomain(deliveryDTO)
	if err != nil {
		return nil, err
	}

	var lineDTOs []OrderItemDTO
	if err := tx.Joins("Item").
		Where("order_items.order_id = ?", dto.ID).
		Order("order_items.line_no").
		Find(&lineDTOs).Error; err != nil {
		return nil, err
	}
	lines, err := linesToDomain(lineDTOs, itemCache{})
	if err != nil {
		return nil, err
	}

	return toDomain(dto,
		order.Loaded(memberRelation, m),
		order.Loaded(deliveryRelation, d),
		order.Loaded(orderItemsRelation, lines),
	)
}

// FindAwaitingDelivery locks and returns orders whose delivery is still READY.
// Rows locked by another transaction are skipped.
func (r *GormOrderRepository) FindAwaitingDelivery(ctx context.Context, placedBefore time.Time, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Joins("Member").
		Joins("Delivery").
		Where("orders.status = ?", order.Ordered.String()).
		Where(clause.Eq{Column: clause.Column{Table: "Delivery", Name: "status"}, Value: order.Ready.String()}).
		Where("orders.order_date < ?", placedBefore).
		Order("orders.order_date").
		Order("orders.id").
		Limit(limit).
		Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "orders"},
			Options:  "SKIP LOCKED",
		}).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toOneToDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func linesToDomain(dtos []OrderItemDTO, cache itemCache) ([]*order.OrderItem, error) {
	lines := make([]*order.OrderItem, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Item == nil {
			return nil, errs.NewObjectNotFoundError("item", dto.ItemID.String())
		}
		it, err := cache.get(*dto.Item)
		if err != nil {
			return nil, err
		}
		line, err := orderItemToDomain(dto, it)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
