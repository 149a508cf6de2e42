package queries

import (
	"errors"

	"ordering/internal/core/application/projection"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const MaxPageLimit = 1000

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders matching a filter, read with one strategy.
//
// Example:
//
//	query, err := NewListOrdersQuery(ports.OrderFilter{MemberName: "kim"}, Batched, &ports.Page{Limit: 20})
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	filter   ports.OrderFilter
	strategy Strategy
	page     *ports.Page

	guard guard.ConstructorGuard
}

// NewListOrdersQuery fails with errs.LoaderUsageError when a page is given
// for a strategy that cannot paginate.
func NewListOrdersQuery(filter ports.OrderFilter, strategy Strategy, page *ports.Page) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setFilter(filter),
		q.setStrategy(strategy),
		q.setPage(page),
	); err != nil {
		return ListOrdersQuery{}, err
	}
	if page != nil && !strategy.SupportsPagination() {
		return ListOrdersQuery{}, errs.NewLoaderUsageError(strategy.String(), "pagination is not supported")
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}

func (q ListOrdersQuery) Strategy() Strategy {
	return q.strategy
}

// Page returns nil when the whole result is requested.
func (q ListOrdersQuery) Page() *ports.Page {
	if q.page == nil {
		return nil
	}
	page := *q.page
	return &page
}

func (q *ListOrdersQuery) setFilter(filter ports.OrderFilter) error {
	if filter.MemberID != nil {
		if err := filter.MemberID.Validate(); err != nil {
			return err
		}
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return err
		}
	}
	if filter.Sort != ports.SortByID && filter.Sort != ports.SortByOrderDateDesc {
		return errs.NewValueIsInvalidError("sort")
	}

	q.filter = filter
	return nil
}

func (q *ListOrdersQuery) setStrategy(strategy Strategy) error {
	if err := strategy.Validate(); err != nil {
		return err
	}

	q.strategy = strategy
	return nil
}

func (q *ListOrdersQuery) setPage(page *ports.Page) error {
	if page == nil {
		return nil
	}
	if page.Offset < 0 {
		return errs.NewValueIsOutOfRangeError("offset", page.Offset, 0, "unbounded")
	}
	if page.Limit < 1 || page.Limit > MaxPageLimit {
		return errs.NewValueIsOutOfRangeError("limit", page.Limit, 1, MaxPageLimit)
	}

	p := *page
	q.page = &p
	return nil
}

// ListOrdersResponse carries either aggregates with their DTOs (lazy,
// join-fetch, batched) or projection DTOs (flat, two-query, simple), plus the number
// of store queries the listing took.
type ListOrdersResponse struct {
	Strategy       Strategy
	Orders         []*order.Order
	OrderDtos      []projection.OrderDto
	OrderQueryDtos []projection.OrderQueryDto
	QueryCount     int
}
