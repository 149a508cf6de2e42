package orderrepo

import (
	"time"

	"ordering/internal/adapters/out/postgres/itemrepo"
	"ordering/internal/adapters/out/postgres/memberrepo"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey"`
	MemberID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Member     *memberrepo.MemberDTO `gorm:"foreignKey:MemberID"`
	DeliveryID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	Delivery   *DeliveryDTO          `gorm:"foreignKey:DeliveryID"`
	OrderItems []OrderItemDTO        `gorm:"foreignKey:OrderID"`
	OrderDate  time.Time             `gorm:"not null;index"`
	Status     string                `gorm:"type:varchar(16);not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type DeliveryDTO struct {
	ID      uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Address memberrepo.AddressDTO `gorm:"embedded"`
	Status  string                `gorm:"type:varchar(16);not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type OrderItemDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_line,priority:1"`
	LineNo     int               `gorm:"not null;uniqueIndex:idx_order_items_order_line,priority:2"`
	ItemID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Item       *itemrepo.ItemDTO `gorm:"foreignKey:ItemID"`
	OrderPrice int64             `gorm:"not null"`
	Count      int               `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}
