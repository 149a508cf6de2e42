package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the write-side persistence contract for orders.
type OrderRepository interface {
	// Add persists a new order together with its delivery and lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order status and its delivery status.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads the whole graph of one order (member, delivery, lines and
	// their items) and row-locks the order until the transaction ends.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindAwaitingDelivery returns up to limit ORDER orders with a READY
	// delivery placed before the cutoff, oldest first. Member and delivery are
	// loaded; lines are not.
	FindAwaitingDelivery(ctx context.Context, placedBefore time.Time, limit int) ([]*order.Order, error)
}
