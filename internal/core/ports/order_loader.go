package ports

import (
	"context"

	"ordering/internal/core/application/projection"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderSort fixes the order of listed roots.
type OrderSort int

const (
	// SortByID lists oldest first; identifiers are time ordered.
	SortByID OrderSort = iota
	// SortByOrderDateDesc lists newest first, ties broken by id.
	SortByOrderDateDesc
)

// OrderFilter narrows an order listing. Zero values do not filter.
type OrderFilter struct {
	// MemberName matches member names containing it, case-insensitively.
	MemberName string
	MemberID   *kernel.UUID
	Status     *order.Status
	Sort       OrderSort
}

// Page selects a window of roots.
type Page struct {
	Offset int
	Limit  int
}

// OrderLoader answers order listings with entity graphs.
//
// Every method counts the store queries it issues; QueryCount reports the
// running total for this loader.
type OrderLoader interface {
	// FindLazy issues one root query. Member, delivery and lines are bound
	// lazily to the unit of work and fetched one query each on first access.
	FindLazy(ctx context.Context, filter OrderFilter, page *Page) ([]*order.Order, error)

	// FindWithAllRelations issues one query joining every relation. Roots are
	// de-duplicated in first-seen order. It cannot be paginated.
	FindWithAllRelations(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// FindWithToOneRelations issues one query joining member and delivery.
	// Lines are left unfetched for LoadOrderItems.
	FindWithToOneRelations(ctx context.Context, filter OrderFilter, page *Page) ([]*order.Order, error)

	// LoadOrderItems loads the lines of orders and their items with chunked
	// IN queries and attaches them.
	LoadOrderItems(ctx context.Context, orders []*order.Order) error

	QueryCount() int
}

// OrderQueryRepository answers order listings with scalar projections.
type OrderQueryRepository interface {
	// FindFlatRows returns one row per order x line. It cannot be paginated.
	FindFlatRows(ctx context.Context, filter OrderFilter) ([]projection.OrderFlatRow, error)

	// FindOrderHeaders returns the to-one part of each order.
	FindOrderHeaders(ctx context.Context, filter OrderFilter, page *Page) ([]projection.OrderQueryDto, error)

	// FindOrderItems returns the lines of the given orders using chunked IN
	// queries.
	FindOrderItems(ctx context.Context, orderIDs []kernel.UUID) ([]projection.OrderItemQueryDto, error)

	QueryCount() int
}
