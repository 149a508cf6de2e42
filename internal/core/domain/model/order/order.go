package order

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/pkg/errs"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Ledger moves stock in and out of items on behalf of orders.
type Ledger interface {
	// ReserveAll reserves every reservation or none of them.
	ReserveAll(reservations []item.Reservation) error
	Release(it *item.Item, count int) error
}

// Order is the aggregate root of the ordering domain.
//
// Invariants:
//   - at least one OrderItem, each with count >= 1
//   - status CANCEL implies every line released its stock
//   - cannot be cancelled once its delivery is COMP
//   - total price is derived from the lines, never stored
type Order struct {
	id         kernel.UUID
	memberID   kernel.UUID
	deliveryID kernel.UUID
	orderDate  time.Time
	status     Status

	member     Relation[*member.Member]
	delivery   Relation[*Delivery]
	orderItems Relation[[]*OrderItem]

	isConstructed bool
}

// NewOrder creates an order for member shipped through delivery, with one line
// per reservation in the given order. Stock for all lines is reserved through
// ledger; if any line cannot be reserved nothing is reserved and the order is
// not created.
func NewOrder(
	id kernel.UUID,
	m *member.Member,
	delivery *Delivery,
	reservations []item.Reservation,
	ledger Ledger,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Ordered,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setMember(m),
		o.setDelivery(delivery),
		o.setOrderDate(now),
		validateReservations(reservations),
		validateLedger(ledger),
	); err != nil {
		return nil, err
	}
	if delivery.Status() != Ready {
		return nil, errs.NewIllegalStateError("delivery", "a new order needs a delivery that is ready")
	}

	lines := make([]*OrderItem, 0, len(reservations))
	for i, r := range reservations {
		line, err := NewOrderItem(kernel.NewUUID(), id, r.Item, r.Count, i+1)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := ledger.ReserveAll(reservations); err != nil {
		return nil, err
	}

	o.orderItems = Loaded("order.orderItems", lines)
	return o, nil
}

// RestoreOrder rebuilds an order read from the store. Each relation slot
// carries whatever the read path loaded.
func RestoreOrder(
	id kernel.UUID,
	memberID kernel.UUID,
	deliveryID kernel.UUID,
	orderDate time.Time,
	status Status,
	m Relation[*member.Member],
	delivery Relation[*Delivery],
	orderItems Relation[[]*OrderItem],
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		memberID.Validate(),
		deliveryID.Validate(),
		o.setOrderDate(orderDate),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.memberID = memberID
	o.deliveryID = deliveryID
	o.status = status
	o.member = m
	o.delivery = delivery
	o.orderItems = orderItems

	if m.IsLoaded() {
		loaded, _ := m.Peek()
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		if !loaded.ID().IsEqual(memberID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("member", fmt.Errorf("%s is not the order's member", loaded.ID()))
		}
	}
	if delivery.IsLoaded() {
		loaded, _ := delivery.Peek()
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		if !loaded.ID().IsEqual(deliveryID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("delivery", fmt.Errorf("%s is not the order's delivery", loaded.ID()))
		}
	}
	if orderItems.IsLoaded() {
		lines, _ := orderItems.Peek()
		if err := o.AttachOrderItems(lines); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate reports whether the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity. A nil other is never equal.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// MemberID returns the ordering member's id. It is available whether or not
// the member relation is loaded.
func (o *Order) MemberID() kernel.UUID {
	return o.memberID
}

// DeliveryID returns the id of the order's delivery.
func (o *Order) DeliveryID() kernel.UUID {
	return o.deliveryID
}

// OrderDate returns when the order was placed.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Status returns ORDER or CANCEL.
func (o *Order) Status() Status {
	return o.status
}

// Member returns the loaded member without fetching.
func (o *Order) Member() (*member.Member, error) {
	return o.member.Peek()
}

// Delivery returns the loaded delivery without fetching.
func (o *Order) Delivery() (*Delivery, error) {
	return o.delivery.Peek()
}

// OrderItems returns the loaded lines ordered by line number, without fetching.
func (o *Order) OrderItems() ([]*OrderItem, error) {
	return o.orderItems.Peek()
}

// FetchMember returns the member, fetching it if the slot is lazy.
func (o *Order) FetchMember(ctx context.Context) (*member.Member, error) {
	return o.member.Get(ctx)
}

// FetchDelivery returns the delivery, fetching it if the slot is lazy.
func (o *Order) FetchDelivery(ctx context.Context) (*Delivery, error) {
	return o.delivery.Get(ctx)
}

// FetchOrderItems returns the lines, fetching them if the slot is lazy.
func (o *Order) FetchOrderItems(ctx context.Context) ([]*OrderItem, error) {
	lines, err := o.orderItems.Get(ctx)
	if err != nil {
		return nil, err
	}
	sortLines(lines)
	return lines, nil
}

// AttachOrderItems fills the lines slot from a batch load. Every line must
// belong to this order.
func (o *Order) AttachOrderItems(lines []*OrderItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if !line.OrderID().IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause("order item", fmt.Errorf("%s belongs to order %s", line.ID(), line.OrderID()))
		}
	}
	lines = slices.Clone(lines)
	sortLines(lines)
	o.orderItems.set(lines)
	return nil
}

// TotalPrice sums order price times count over all lines.
func (o *Order) TotalPrice() (int64, error) {
	lines, err := o.orderItems.Peek()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, line := range lines {
		total += line.TotalPrice()
	}
	return total, nil
}

// Cancel releases every line back to its item and moves the order to CANCEL.
// It fails with IllegalStateError if the delivery is COMP or the order is
// already cancelled; the order is unchanged in that case. The delivery and the
// lines must be loaded.
func (o *Order) Cancel(ledger Ledger) error {
	if err := validateLedger(ledger); err != nil {
		return err
	}
	delivery, err := o.delivery.Peek()
	if err != nil {
		return err
	}
	if delivery.Status() == Comp {
		return errs.NewIllegalStateError("order", "already delivered, cannot cancel")
	}
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	lines, err := o.orderItems.Peek()
	if err != nil {
		return err
	}

	for _, line := range lines {
		if err = line.cancel(ledger); err != nil {
			return err
		}
	}

	o.status = newStatus
	return nil
}

// CompleteDelivery marks the shipment as delivered. A cancelled order cannot
// be delivered.
func (o *Order) CompleteDelivery() error {
	if o.status == Cancelled {
		return errs.NewIllegalStateError("order", "cancelled, cannot deliver")
	}
	delivery, err := o.delivery.Peek()
	if err != nil {
		return err
	}
	return delivery.Complete()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setMember(m *member.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	o.memberID = m.ID()
	o.member = Loaded("order.member", m)
	return nil
}

func (o *Order) setDelivery(delivery *Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.deliveryID = delivery.ID()
	o.delivery = Loaded("order.delivery", delivery)
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = orderDate
	return nil
}

func validateReservations(reservations []item.Reservation) error {
	if len(reservations) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	var err error
	for _, r := range reservations {
		if vErr := r.Item.Validate(); vErr != nil {
			err = errors.Join(err, vErr)
			continue
		}
		if r.Count < 1 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is not greater than 0", r.Count)))
		}
	}
	return err
}

func validateLedger(ledger Ledger) error {
	if ledger == nil {
		return errs.NewValueIsRequiredError("ledger")
	}
	return nil
}

func sortLines(lines []*OrderItem) {
	slices.SortStableFunc(lines, func(a, b *OrderItem) int {
		return a.lineNo - b.lineNo
	})
}
