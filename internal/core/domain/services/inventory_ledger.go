package services

import (
	"fmt"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// InventoryLedger is the only writer of item stock. It satisfies order.Ledger.
type InventoryLedger struct{}

func NewInventoryLedger() InventoryLedger {
	return InventoryLedger{}
}

// Reserve takes count units of it. It fails with errs.InsufficientStockError,
// leaving the item unchanged, when count exceeds the stock.
func (l InventoryLedger) Reserve(it *item.Item, count int) error {
	if err := it.Validate(); err != nil {
		return err
	}
	return it.RemoveStock(count)
}

// Release puts count units back into it.
func (l InventoryLedger) Release(it *item.Item, count int) error {
	if err := it.Validate(); err != nil {
		return err
	}
	return it.AddStock(count)
}

// ReserveAll reserves every reservation or none. Counts for the same item
// are summed before checking, so two lines of one item cannot together take
// more than its stock.
func (l InventoryLedger) ReserveAll(reservations []item.Reservation) error {
	type demand struct {
		item  *item.Item
		count int
	}
	totals := make(map[kernel.UUID]*demand, len(reservations))
	ids := make([]kernel.UUID, 0, len(reservations))

	for _, r := range reservations {
		if err := r.Item.Validate(); err != nil {
			return err
		}
		if r.Count < 1 {
			return errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is not greater than 0", r.Count))
		}
		d, ok := totals[r.Item.ID()]
		if !ok {
			d = &demand{item: r.Item}
			totals[r.Item.ID()] = d
			ids = append(ids, r.Item.ID())
		} else if d.item != r.Item {
			return errs.NewValueIsInvalidErrorWithCause(
				"reservation",
				fmt.Errorf("item %s is referenced by two different instances", r.Item.ID()),
			)
		}
		d.count += r.Count
	}

	for _, id := range ids {
		d := totals[id]
		if d.count > d.item.StockQuantity() {
			return errs.NewInsufficientStockError(id.String(), d.count, d.item.StockQuantity())
		}
	}

	for _, id := range ids {
		d := totals[id]
		if err := d.item.RemoveStock(d.count); err != nil {
			return err
		}
	}
	return nil
}
