package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem or RestoreOrderItem constructor")

// OrderItem is one line of an order. Its order and item references and its
// price snapshot never change after creation.
type OrderItem struct {
	id         kernel.UUID
	orderID    kernel.UUID
	item       *item.Item
	orderPrice int64
	count      int
	lineNo     int

	isConstructed bool
}

// NewOrderItem snapshots the item's current price as the order price.
func NewOrderItem(id, orderID kernel.UUID, it *item.Item, count, lineNo int) (*OrderItem, error) {
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return RestoreOrderItem(id, orderID, it, it.Price(), count, lineNo)
}

// RestoreOrderItem rebuilds a line read from the store with its stored price
// snapshot.
func RestoreOrderItem(id, orderID kernel.UUID, it *item.Item, orderPrice int64, count, lineNo int) (*OrderItem, error) {
	oi := &OrderItem{isConstructed: true}

	if err := errors.Join(
		oi.setID(id),
		oi.setOrderID(orderID),
		oi.setItem(it),
		oi.setOrderPrice(orderPrice),
		oi.setCount(count),
		oi.setLineNo(lineNo),
	); err != nil {
		return nil, err
	}

	return oi, nil
}

// Validate reports whether the line was built by a constructor.
func (oi *OrderItem) Validate() error {
	if oi == nil || !oi.isConstructed {
		return ErrOrderItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (oi *OrderItem) ID() kernel.UUID {
	return oi.id
}

// OrderID returns the id of the order owning the line.
func (oi *OrderItem) OrderID() kernel.UUID {
	return oi.orderID
}

// Item returns the ordered item.
func (oi *OrderItem) Item() *item.Item {
	return oi.item
}

// OrderPrice returns the unit price captured when the order was placed.
func (oi *OrderItem) OrderPrice() int64 {
	return oi.orderPrice
}

// Count returns the ordered quantity, at least 1.
func (oi *OrderItem) Count() int {
	return oi.count
}

// LineNo is the 1-based position of the line within its order.
func (oi *OrderItem) LineNo() int {
	return oi.lineNo
}

// TotalPrice returns order price times count.
func (oi *OrderItem) TotalPrice() int64 {
	return oi.orderPrice * int64(oi.count)
}

func (oi *OrderItem) cancel(ledger Ledger) error {
	return ledger.Release(oi.item, oi.count)
}

func (oi *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	oi.id = id
	return nil
}

func (oi *OrderItem) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	oi.orderID = orderID
	return nil
}

func (oi *OrderItem) setItem(it *item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	oi.item = it
	return nil
}

func (oi *OrderItem) setOrderPrice(orderPrice int64) error {
	if orderPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("order price", fmt.Errorf("%d is negative", orderPrice))
	}
	oi.orderPrice = orderPrice
	return nil
}

func (oi *OrderItem) setCount(count int) error {
	if count < 1 {
		return errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is not greater than 0", count))
	}
	oi.count = count
	return nil
}

func (oi *OrderItem) setLineNo(lineNo int) error {
	if lineNo < 1 {
		return errs.NewValueIsInvalidErrorWithCause("line number", fmt.Errorf("%d is not greater than 0", lineNo))
	}
	oi.lineNo = lineNo
	return nil
}
