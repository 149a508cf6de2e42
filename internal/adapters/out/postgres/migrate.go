package postgres

import (
	"ordering/internal/adapters/out/postgres/itemrepo"
	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table of the ordering store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&memberrepo.MemberDTO{},
		&itemrepo.ItemDTO{},
		&orderrepo.DeliveryDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
}
