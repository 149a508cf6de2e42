package commands

import (
	"context"

	"ordering/internal/pkg/metrics"
)

// CompleteDeliveriesCommandHandler moves waiting deliveries to COMP. Orders
// locked by a concurrent transaction are skipped and picked up next time.
type CompleteDeliveriesCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    *metrics.Metrics
}

func NewCompleteDeliveriesCommandHandler(uowFactory OrderUoWFactory, m *metrics.Metrics) CompleteDeliveriesCommandHandler {
	return CompleteDeliveriesCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

// Handle returns the number of orders delivered.
func (h *CompleteDeliveriesCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.FindAwaitingDelivery(ctx, cmd.PlacedBefore(), cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	for _, o := range orders {
		if err = o.CompleteDelivery(); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.metrics.DeliveriesCompleted(len(orders))
	return len(orders), nil
}
