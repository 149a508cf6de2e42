package orderqueryrepo

import (
	"context"
	"slices"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/projection"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderQueryRepository reads scalar projections of orders without
// building entities. It is not safe for concurrent use.
type GormOrderQueryRepository struct {
	db        *gorm.DB
	batchSize int
	queries   int
}

// NewGormOrderQueryRepository returns a repository bound to db. A batchSize
// of zero or less means orderrepo.DefaultBatchSize.
func NewGormOrderQueryRepository(db *gorm.DB, batchSize int) *GormOrderQueryRepository {
	if batchSize <= 0 {
		batchSize = orderrepo.DefaultBatchSize
	}
	return &GormOrderQueryRepository{db: db, batchSize: batchSize}
}

// QueryCount returns the number of queries issued so far.
func (r *GormOrderQueryRepository) QueryCount() int {
	return r.queries
}

type headerRow struct {
	OrderID     uuid.UUID `gorm:"column:order_id"`
	MemberName  string    `gorm:"column:member_name"`
	OrderDate   time.Time `gorm:"column:order_date"`
	OrderStatus string    `gorm:"column:order_status"`
	City        string    `gorm:"column:city"`
	Street      string    `gorm:"column:street"`
	Zipcode     string    `gorm:"column:zipcode"`
}

type flatRow struct {
	OrderID     uuid.UUID `gorm:"column:order_id"`
	MemberName  string    `gorm:"column:member_name"`
	OrderDate   time.Time `gorm:"column:order_date"`
	OrderStatus string    `gorm:"column:order_status"`
	City        string    `gorm:"column:city"`
	Street      string    `gorm:"column:street"`
	Zipcode     string    `gorm:"column:zipcode"`
	ItemName    string    `gorm:"column:item_name"`
	OrderPrice  int64     `gorm:"column:order_price"`
	Count       int       `gorm:"column:count"`
	LineNo      int       `gorm:"column:line_no"`
}

type itemRow struct {
	OrderID    uuid.UUID `gorm:"column:order_id"`
	LineNo     int       `gorm:"column:line_no"`
	ItemName   string    `gorm:"column:item_name"`
	OrderPrice int64     `gorm:"column:order_price"`
	Count      int       `gorm:"column:count"`
}

const headerColumns = `orders.id AS order_id, members.name AS member_name, orders.order_date, orders.status AS order_status,
deliveries.city, deliveries.street, deliveries.zipcode`

func (r *GormOrderQueryRepository) headers(ctx context.Context, filter ports.OrderFilter) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&orderrepo.OrderDTO{}).
		Joins("JOIN members ON members.id = orders.member_id").
		Joins("JOIN deliveries ON deliveries.id = orders.delivery_id").
		Scopes(orderrepo.Filter(filter), orderrepo.Sort(filter.Sort))
}

// FindFlatRows projects one row per order line in a single query, ordered by
// the filter's sort and then by line number. It does not paginate.
func (r *GormOrderQueryRepository) FindFlatRows(ctx context.Context, filter ports.OrderFilter) ([]projection.OrderFlatRow, error) {
	var rows []flatRow
	err := r.headers(ctx, filter).
		Select(headerColumns+`, items.name AS item_name, order_items.order_price, order_items.count, order_items.line_no`).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN items ON items.id = order_items.item_id").
		Order("order_items.line_no").
		Scan(&rows).Error
	r.queries++
	if err != nil {
		return nil, err
	}

	result := make([]projection.OrderFlatRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, projection.OrderFlatRow{
			OrderID:     kernel.UUIDFromGoogle(row.OrderID),
			MemberName:  row.MemberName,
			OrderDate:   row.OrderDate,
			OrderStatus: row.OrderStatus,
			Address:     projection.AddressDto{City: row.City, Street: row.Street, Zipcode: row.Zipcode},
			ItemName:    row.ItemName,
			OrderPrice:  row.OrderPrice,
			Count:       row.Count,
			LineNo:      row.LineNo,
		})
	}
	return result, nil
}

// FindOrderHeaders projects the to-one fields of matching orders in one
// paginated query. The returned DTOs carry no items.
func (r *GormOrderQueryRepository) FindOrderHeaders(ctx context.Context, filter ports.OrderFilter, page *ports.Page) ([]projection.OrderQueryDto, error) {
	var rows []headerRow
	err := r.headers(ctx, filter).
		Select(headerColumns).
		Scopes(orderrepo.Paginate(page)).
		Scan(&rows).Error
	r.queries++
	if err != nil {
		return nil, err
	}

	result := make([]projection.OrderQueryDto, 0, len(rows))
	for _, row := range rows {
		result = append(result, projection.OrderQueryDto{
			OrderID:     kernel.UUIDFromGoogle(row.OrderID),
			MemberName:  row.MemberName,
			OrderDate:   row.OrderDate,
			OrderStatus: row.OrderStatus,
			Address:     projection.AddressDto{City: row.City, Street: row.Street, Zipcode: row.Zipcode},
		})
	}
	return result, nil
}

// FindOrderItems issues one query per chunk of order ids. No query is issued
// for an empty slice.
func (r *GormOrderQueryRepository) FindOrderItems(ctx context.Context, orderIDs []kernel.UUID) ([]projection.OrderItemQueryDto, error) {
	keys := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		keys = append(keys, id.Bytes())
	}
	slices.SortFunc(keys, func(a, b uuid.UUID) int {
		return kernel.UUIDFromGoogle(a).Compare(kernel.UUIDFromGoogle(b))
	})
	keys = slices.Compact(keys)

	result := make([]projection.OrderItemQueryDto, 0, len(keys))
	for chunk := range slices.Chunk(keys, r.batchSize) {
		var rows []itemRow
		err := r.db.WithContext(ctx).
			Table("order_items").
			Select("order_items.order_id, order_items.line_no, items.name AS item_name, order_items.order_price, order_items.count").
			Joins("JOIN items ON items.id = order_items.item_id").
			Where("order_items.order_id IN ?", chunk).
			Order("order_items.order_id").
			Order("order_items.line_no").
			Scan(&rows).Error
		r.queries++
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			result = append(result, projection.OrderItemQueryDto{
				OrderID:    kernel.UUIDFromGoogle(row.OrderID),
				LineNo:     row.LineNo,
				ItemName:   row.ItemName,
				OrderPrice: row.OrderPrice,
				Count:      row.Count,
			})
		}
	}
	return result, nil
}
