package order

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

// Delivery is the shipment of one order. It is owned by that order.
type Delivery struct {
	id      kernel.UUID
	address kernel.Address
	status  DeliveryStatus

	isConstructed bool
}

// NewDelivery creates a delivery in READY state.
func NewDelivery(id kernel.UUID, address kernel.Address) (*Delivery, error) {
	return RestoreDelivery(id, address, Ready)
}

// RestoreDelivery rebuilds a delivery read from the store.
func RestoreDelivery(id kernel.UUID, address kernel.Address, status DeliveryStatus) (*Delivery, error) {
	d := &Delivery{isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setAddress(address),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate reports whether the delivery was built by a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Address returns the shipping address.
func (d *Delivery) Address() kernel.Address {
	return d.address
}

// Status returns READY until the delivery is completed, then COMP.
func (d *Delivery) Status() DeliveryStatus {
	return d.status
}

// Complete marks the shipment as delivered.
func (d *Delivery) Complete() error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	d.address = address
	return nil
}

func (d *Delivery) setStatus(status DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
