package orderrepo

import (
	"strings"

	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// Filter narrows a query rooted at the orders table.
func Filter(filter ports.OrderFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			db = db.Where("orders.status = ?", filter.Status.String())
		}
		if filter.MemberID != nil {
			db = db.Where("orders.member_id = ?", filter.MemberID.Bytes())
		}
		if name := strings.TrimSpace(filter.MemberName); name != "" {
			members := db.Session(&gorm.Session{NewDB: true}).
				Model(&memberrepo.MemberDTO{}).
				Select("id").
				Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
			db = db.Where("orders.member_id IN (?)", members)
		}
		return db
	}
}

// Sort orders roots; ties always fall back to id.
func Sort(sort ports.OrderSort) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if sort == ports.SortByOrderDateDesc {
			db = db.Order("orders.order_date DESC")
		}
		return db.Order("orders.id")
	}
}

// Paginate applies offset and limit. A nil page selects everything.
func Paginate(page *ports.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page == nil {
			return db
		}
		return db.Offset(page.Offset).Limit(page.Limit)
	}
}
