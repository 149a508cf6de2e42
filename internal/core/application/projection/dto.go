package projection

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

type AddressDto struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

func AddressFromDomain(a kernel.Address) AddressDto {
	return AddressDto{City: a.City(), Street: a.Street(), Zipcode: a.Zipcode()}
}

// OrderDto is an order graph flattened for output.
type OrderDto struct {
	OrderID     kernel.UUID    `json:"orderId"`
	MemberName  string         `json:"memberName"`
	OrderDate   time.Time      `json:"orderDate"`
	OrderStatus string         `json:"orderStatus"`
	Address     AddressDto     `json:"address"`
	TotalPrice  int64          `json:"totalPrice"`
	OrderItems  []OrderItemDto `json:"orderItems"`
}

type OrderItemDto struct {
	ItemName   string `json:"itemName"`
	OrderPrice int64  `json:"orderPrice"`
	Count      int    `json:"count"`
}

// OrderQueryDto is an order assembled directly from projection rows.
type OrderQueryDto struct {
	OrderID     kernel.UUID         `json:"orderId"`
	MemberName  string              `json:"memberName"`
	OrderDate   time.Time           `json:"orderDate"`
	OrderStatus string              `json:"orderStatus"`
	Address     AddressDto          `json:"address"`
	OrderItems  []OrderItemQueryDto `json:"orderItems"`
}

type OrderItemQueryDto struct {
	OrderID    kernel.UUID `json:"-"`
	LineNo     int         `json:"-"`
	ItemName   string      `json:"itemName"`
	OrderPrice int64       `json:"orderPrice"`
	Count      int         `json:"count"`
}

// OrderFlatRow is one order x order item row of the flat projection.
type OrderFlatRow struct {
	OrderID     kernel.UUID
	MemberName  string
	OrderDate   time.Time
	OrderStatus string
	Address     AddressDto
	ItemName    string
	OrderPrice  int64
	Count       int
	LineNo      int
}
