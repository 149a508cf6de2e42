package projection

import (
	"slices"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ToOrderDto reads the member, delivery and lines of o without fetching.
func ToOrderDto(o *order.Order) (OrderDto, error) {
	if err := o.Validate(); err != nil {
		return OrderDto{}, err
	}
	m, err := o.Member()
	if err != nil {
		return OrderDto{}, err
	}
	delivery, err := o.Delivery()
	if err != nil {
		return OrderDto{}, err
	}
	lines, err := o.OrderItems()
	if err != nil {
		return OrderDto{}, err
	}
	total, err := o.TotalPrice()
	if err != nil {
		return OrderDto{}, err
	}

	items := make([]OrderItemDto, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItemDto{
			ItemName:   line.Item().Name(),
			OrderPrice: line.OrderPrice(),
			Count:      line.Count(),
		})
	}

	return OrderDto{
		OrderID:     o.ID(),
		MemberName:  m.Name(),
		OrderDate:   o.OrderDate(),
		OrderStatus: o.Status().String(),
		Address:     AddressFromDomain(delivery.Address()),
		TotalPrice:  total,
		OrderItems:  items,
	}, nil
}

func ToOrderDtos(orders []*order.Order) ([]OrderDto, error) {
	dtos := make([]OrderDto, 0, len(orders))
	for _, o := range orders {
		dto, err := ToOrderDto(o)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// GroupFlatRows folds flat rows into one OrderQueryDto per order id, in the
// order the ids first appear.
func GroupFlatRows(rows []OrderFlatRow) []OrderQueryDto {
	index := make(map[kernel.UUID]int, len(rows))
	result := make([]OrderQueryDto, 0)

	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			i = len(result)
			index[row.OrderID] = i
			result = append(result, OrderQueryDto{
				OrderID:     row.OrderID,
				MemberName:  row.MemberName,
				OrderDate:   row.OrderDate,
				OrderStatus: row.OrderStatus,
				Address:     row.Address,
				OrderItems:  make([]OrderItemQueryDto, 0, 1),
			})
		}
		result[i].OrderItems = append(result[i].OrderItems, OrderItemQueryDto{
			OrderID:    row.OrderID,
			LineNo:     row.LineNo,
			ItemName:   row.ItemName,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		})
	}

	for i := range result {
		sortItems(result[i].OrderItems)
	}
	return result
}

// MergeOrderItems attaches items to the header with the same order id. Header
// order is preserved; items for unknown ids are dropped.
func MergeOrderItems(headers []OrderQueryDto, items []OrderItemQueryDto) []OrderQueryDto {
	byOrder := make(map[kernel.UUID][]OrderItemQueryDto, len(headers))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	result := make([]OrderQueryDto, len(headers))
	for i, h := range headers {
		h.OrderItems = byOrder[h.OrderID]
		if h.OrderItems == nil {
			h.OrderItems = []OrderItemQueryDto{}
		}
		sortItems(h.OrderItems)
		result[i] = h
	}
	return result
}

// OrderIDs lists the ids of headers in order, for the item query of the
// two-query read path.
func OrderIDs(headers []OrderQueryDto) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(headers))
	for _, h := range headers {
		ids = append(ids, h.OrderID)
	}
	return ids
}

func sortItems(items []OrderItemQueryDto) {
	slices.SortStableFunc(items, func(a, b OrderItemQueryDto) int {
		return a.LineNo - b.LineNo
	})
}
