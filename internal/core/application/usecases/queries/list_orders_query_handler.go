package queries

import (
	"context"

	"ordering/internal/core/application/projection"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"
)

// ListOrdersQueryHandler answers ListOrdersQuery with the strategy it names.
// Every strategy returns the same orders and lines for the same data and
// filter; they differ only in how many store queries they issue. Simple is the
// exception: it returns the same orders without lines.
type ListOrdersQueryHandler struct {
	uowFactory QueryUoWFactory
	metrics    *metrics.Metrics
}

func NewListOrdersQueryHandler(uowFactory QueryUoWFactory, m *metrics.Metrics) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ListOrdersResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	resp := ListOrdersResponse{Strategy: query.Strategy()}
	var err error
	if query.Strategy().ReturnsEntities() {
		loader := uow.OrderLoader()
		if resp.Orders, err = h.loadEntities(ctx, loader, query); err != nil {
			return ListOrdersResponse{}, err
		}
		if resp.OrderDtos, err = projection.ToOrderDtos(resp.Orders); err != nil {
			return ListOrdersResponse{}, err
		}
		resp.QueryCount = loader.QueryCount()
	} else {
		repo := uow.OrderQueryRepository()
		if resp.OrderQueryDtos, err = h.loadProjections(ctx, repo, query); err != nil {
			return ListOrdersResponse{}, err
		}
		resp.QueryCount = repo.QueryCount()
	}

	if err = uow.Commit(ctx); err != nil {
		return ListOrdersResponse{}, err
	}

	roots := len(resp.Orders)
	if !query.Strategy().ReturnsEntities() {
		roots = len(resp.OrderQueryDtos)
	}
	h.metrics.ObserveLoad(query.Strategy().String(), resp.QueryCount, roots)
	return resp, nil
}

func (h *ListOrdersQueryHandler) loadEntities(ctx context.Context, loader ports.OrderLoader, query ListOrdersQuery) ([]*order.Order, error) {
	switch query.Strategy() {
	case Lazy:
		orders, err := loader.FindLazy(ctx, query.Filter(), query.Page())
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			if _, err = o.FetchMember(ctx); err != nil {
				return nil, err
			}
			if _, err = o.FetchDelivery(ctx); err != nil {
				return nil, err
			}
			if _, err = o.FetchOrderItems(ctx); err != nil {
				return nil, err
			}
		}
		return orders, nil

	case JoinFetch:
		return loader.FindWithAllRelations(ctx, query.Filter())

	default:
		orders, err := loader.FindWithToOneRelations(ctx, query.Filter(), query.Page())
		if err != nil {
			return nil, err
		}
		if err = loader.LoadOrderItems(ctx, orders); err != nil {
			return nil, err
		}
		return orders, nil
	}
}

func (h *ListOrdersQueryHandler) loadProjections(
	ctx context.Context,
	repo ports.OrderQueryRepository,
	query ListOrdersQuery,
) ([]projection.OrderQueryDto, error) {
	if query.Strategy() == Flat {
		rows, err := repo.FindFlatRows(ctx, query.Filter())
		if err != nil {
			return nil, err
		}
		return projection.GroupFlatRows(rows), nil
	}

	headers, err := repo.FindOrderHeaders(ctx, query.Filter(), query.Page())
	if err != nil {
		return nil, err
	}
	if query.Strategy() == Simple || len(headers) == 0 {
		return headers, nil
	}
	items, err := repo.FindOrderItems(ctx, projection.OrderIDs(headers))
	if err != nil {
		return nil, err
	}
	return projection.MergeOrderItems(headers, items), nil
}
