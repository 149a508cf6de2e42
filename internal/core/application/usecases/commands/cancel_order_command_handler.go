package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

// CancelOrderCommandHandler cancels an order and puts every line's count
// back into its item.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     services.InventoryLedger
	metrics    *metrics.Metrics
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, m *metrics.Metrics) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
		metrics:    m,
	}
}

// Handle fails with errs.IllegalStateError when the order is delivered or
// already cancelled; nothing is written in that case.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Cancel(h.ledger); err != nil {
		if errors.Is(err, errs.ErrIllegalState) {
			h.metrics.OrderRejected("illegal_state")
		}
		return err
	}

	lines, err := o.OrderItems()
	if err != nil {
		return err
	}
	itemRepo := uow.ItemRepository()
	written := make(map[*item.Item]bool, len(lines))
	for _, line := range lines {
		it := line.Item()
		if written[it] {
			continue
		}
		written[it] = true
		if err = itemRepo.UpdateStock(ctx, it); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.OrderCancelled()
	return nil
}
