package commands

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

// PlaceOrderCommandHandler places an order shipped to the member's address.
// The ordered items are row-locked for the whole transaction, so concurrent
// orders of the same item are serialized and stock never goes negative.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     services.InventoryLedger
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory, m *metrics.Metrics) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
		metrics:    m,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns the id of the new order. It fails with
// errs.InsufficientStockError when any line exceeds the stock; nothing is
// written in that case.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.MemberRepository().Get(ctx, cmd.MemberID())
	if err != nil {
		return kernel.UUID{}, err
	}

	itemRepo := uow.ItemRepository()
	items, err := itemRepo.GetForUpdate(ctx, cmd.ItemIDs())
	if err != nil {
		return kernel.UUID{}, err
	}
	byID := make(map[kernel.UUID]*item.Item, len(items))
	for _, it := range items {
		byID[it.ID()] = it
	}

	reservations := make([]item.Reservation, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		it, ok := byID[line.ItemID]
		if !ok {
			return kernel.UUID{}, errs.NewObjectNotFoundError("item", line.ItemID.String())
		}
		reservations = append(reservations, item.Reservation{Item: it, Count: line.Count})
	}

	delivery, err := order.NewDelivery(kernel.NewUUID(), m.Address())
	if err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), m, delivery, reservations, h.ledger, h.now())
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientStock) {
			h.metrics.OrderRejected("insufficient_stock")
		}
		return kernel.UUID{}, err
	}

	for _, it := range items {
		if err = itemRepo.UpdateStock(ctx, it); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.metrics.OrderPlaced()
	return o.ID(), nil
}
