package orderrepo

import (
	"fmt"

	"ordering/internal/adapters/out/postgres/itemrepo"
	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	memberRelation     = "order.member"
	deliveryRelation   = "order.delivery"
	orderItemsRelation = "order.orderItems"
)

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:         o.ID().Bytes(),
		MemberID:   o.MemberID().Bytes(),
		DeliveryID: o.DeliveryID().Bytes(),
		OrderDate:  o.OrderDate(),
		Status:     o.Status().String(),
	}
}

func deliveryFromDomain(d *order.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:      d.ID().Bytes(),
		Address: memberrepo.AddressFromDomain(d.Address()),
		Status:  d.Status().String(),
	}
}

func orderItemFromDomain(oi *order.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:         oi.ID().Bytes(),
		OrderID:    oi.OrderID().Bytes(),
		LineNo:     oi.LineNo(),
		ItemID:     oi.Item().ID().Bytes(),
		OrderPrice: oi.OrderPrice(),
		Count:      oi.Count(),
	}
}

func deliveryToDomain(dto DeliveryDTO) (*order.Delivery, error) {
	address, err := dto.Address.ToDomain()
	if err != nil {
		return nil, err
	}
	status, err := order.ParseDeliveryStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return order.RestoreDelivery(kernel.UUIDFromGoogle(dto.ID), address, status)
}

func orderItemToDomain(dto OrderItemDTO, it *item.Item) (*order.OrderItem, error) {
	return order.RestoreOrderItem(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.OrderID),
		it,
		dto.OrderPrice,
		dto.Count,
		dto.LineNo,
	)
}

func toDomain(
	dto OrderDTO,
	m order.Relation[*member.Member],
	d order.Relation[*order.Delivery],
	lines order.Relation[[]*order.OrderItem],
) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return order.RestoreOrder(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.MemberID),
		kernel.UUIDFromGoogle(dto.DeliveryID),
		dto.OrderDate,
		status,
		m,
		d,
		lines,
	)
}

// toOneToDomain maps a row fetched with Joins("Member").Joins("Delivery").
// Lines stay unfetched.
func toOneToDomain(dto OrderDTO) (*order.Order, error) {
	if dto.Member == nil || dto.Delivery == nil {
		return nil, errs.NewLoaderUsageError("to-one join", fmt.Sprintf("order %s was read without member or delivery", dto.ID))
	}
	m, err := memberrepo.ToDomain(*dto.Member)
	if err != nil {
		return nil, err
	}
	d, err := deliveryToDomain(*dto.Delivery)
	if err != nil {
		return nil, err
	}
	return toDomain(dto,
		order.Loaded(memberRelation, m),
		order.Loaded(deliveryRelation, d),
		order.NotFetched[[]*order.OrderItem](orderItemsRelation),
	)
}

// itemCache keeps one *item.Item per id within a single read so lines of the
// same item share stock bookkeeping.
type itemCache map[uuid.UUID]*item.Item

func (c itemCache) get(dto itemrepo.ItemDTO) (*item.Item, error) {
	if it, ok := c[dto.ID]; ok {
		return it, nil
	}
	it, err := itemrepo.ToDomain(dto)
	if err != nil {
		return nil, err
	}
	c[dto.ID] = it
	return it, nil
}
