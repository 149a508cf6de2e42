package orderrepo

import (
	"context"
	"errors"
	"slices"
	"time"

	"ordering/internal/adapters/out/postgres/itemrepo"
	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultBatchSize = 100

// GormOrderLoader reads order graphs through the transaction it was created
// with. Lazy relations it hands out are bound to scope. It is not safe for
// concurrent use.
type GormOrderLoader struct {
	db        *gorm.DB
	scope     order.Scope
	batchSize int
	queries   int
}

// NewGormOrderLoader returns a loader reading through db. Lazy relations it
// produces are fetched only while scope is active.
func NewGormOrderLoader(db *gorm.DB, scope order.Scope, batchSize int) *GormOrderLoader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &GormOrderLoader{db: db, scope: scope, batchSize: batchSize}
}

// QueryCount returns the number of queries issued so far, including lazy
// fetches.
func (l *GormOrderLoader) QueryCount() int {
	return l.queries
}

// FindLazy reads matching roots in one query and leaves member, delivery
// and lines as lazy relations fetched on first access.
func (l *GormOrderLoader) FindLazy(ctx context.Context, filter ports.OrderFilter, page *ports.Page) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := l.db.WithContext(ctx).
		Scopes(Filter(filter), Sort(filter.Sort), Paginate(page)).
		Find(&dtos).Error
	l.queries++
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto,
			order.Lazy(memberRelation, l.scope, l.fetchMember(dto.MemberID)),
			order.Lazy(deliveryRelation, l.scope, l.fetchDelivery(dto.DeliveryID)),
			order.Lazy(orderItemsRelation, l.scope, l.fetchOrderItems(dto.ID)),
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (l *GormOrderLoader) fetchMember(id uuid.UUID) order.FetchFunc[*member.Member] {
	return func(ctx context.Context) (*member.Member, error) {
		var dto memberrepo.MemberDTO
		err := l.db.WithContext(ctx).Take(&dto, "id = ?", id).Error
		l.queries++
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NewObjectNotFoundError("member", id.String())
			}
			return nil, err
		}
		return memberrepo.ToDomain(dto)
	}
}

func (l *GormOrderLoader) fetchDelivery(id uuid.UUID) order.FetchFunc[*order.Delivery] {
	return func(ctx context.Context) (*order.Delivery, error) {
		var dto DeliveryDTO
		err := l.db.WithContext(ctx).Take(&dto, "id = ?", id).Error
		l.queries++
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NewObjectNotFoundError("delivery", id.String())
			}
			return nil, err
		}
		return deliveryToDomain(dto)
	}
}

func (l *GormOrderLoader) fetchOrderItems(orderID uuid.UUID) order.FetchFunc[[]*order.OrderItem] {
	return func(ctx context.Context) ([]*order.OrderItem, error) {
		var dtos []OrderItemDTO
		err := l.db.WithContext(ctx).
			Joins("Item").
			Where("order_items.order_id = ?", orderID).
			Order("order_items.line_no").
			Find(&dtos).Error
		l.queries++
		if err != nil {
			return nil, err
		}
		return linesToDomain(dtos, itemCache{})
	}
}

// graphRow is one order x line row of the full join.
type graphRow struct {
	OrderID         uuid.UUID `gorm:"column:order_id"`
	MemberID        uuid.UUID `gorm:"column:member_id"`
	DeliveryID      uuid.UUID `gorm:"column:delivery_id"`
	OrderDate       time.Time `gorm:"column:order_date"`
	Status          string    `gorm:"column:status"`
	MemberName      string    `gorm:"column:member_name"`
	MemberCity      string    `gorm:"column:member_city"`
	MemberStreet    string    `gorm:"column:member_street"`
	MemberZipcode   string    `gorm:"column:member_zipcode"`
	DeliveryCity    string    `gorm:"column:delivery_city"`
	DeliveryStreet  string    `gorm:"column:delivery_street"`
	DeliveryZipcode string    `gorm:"column:delivery_zipcode"`
	DeliveryStatus  string    `gorm:"column:delivery_status"`
	LineID          uuid.UUID `gorm:"column:line_id"`
	LineNo          int       `gorm:"column:line_no"`
	OrderPrice      int64     `gorm:"column:order_price"`
	Count           int       `gorm:"column:count"`
	ItemID          uuid.UUID `gorm:"column:item_id"`
	ItemDType       string    `gorm:"column:item_dtype"`
	ItemName        string    `gorm:"column:item_name"`
	ItemPrice       int64     `gorm:"column:item_price"`
	ItemStock       int       `gorm:"column:item_stock_quantity"`
	Author          string    `gorm:"column:author"`
	ISBN            string    `gorm:"column:isbn"`
	Artist          string    `gorm:"column:artist"`
	Etc             string    `gorm:"column:etc"`
	Director        string    `gorm:"column:director"`
	Actor           string    `gorm:"column:actor"`
}

const graphColumns = `orders.id AS order_id, orders.member_id, orders.delivery_id, orders.order_date, orders.status,
members.name AS member_name, members.city AS member_city, members.street AS member_street, members.zipcode AS member_zipcode,
deliveries.city AS delivery_city, deliveries.street AS delivery_street, deliveries.zipcode AS delivery_zipcode, deliveries.status AS delivery_status,
order_items.id AS line_id, order_items.line_no, order_items.order_price, order_items.count,
items.id AS item_id, items.dtype AS item_dtype, items.name AS item_name, items.price AS item_price, items.stock_quantity AS item_stock_quantity,
items.author, items.isbn, items.artist, items.etc, items.director, items.actor`

// FindWithAllRelations reads every relation in one joined query. Roots come
// back in first-seen order.
func (l *GormOrderLoader) FindWithAllRelations(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	var rows []graphRow
	err := l.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select(graphColumns).
		Joins("JOIN members ON members.id = orders.member_id").
		Joins("JOIN deliveries ON deliveries.id = orders.delivery_id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN items ON items.id = order_items.item_id").
		Scopes(Filter(filter), Sort(filter.Sort)).
		Order("order_items.line_no").
		Scan(&rows).Error
	l.queries++
	if err != nil {
		return nil, err
	}

	var (
		roots   []OrderDTO
		members = make(map[uuid.UUID]*member.Member)
		lines   = make(map[uuid.UUID][]*order.OrderItem)
		items   = itemCache{}
	)
	for _, row := range rows {
		if _, seen := lines[row.OrderID]; !seen {
			roots = append(roots, OrderDTO{
				ID:         row.OrderID,
				MemberID:   row.MemberID,
				DeliveryID: row.DeliveryID,
				OrderDate:  row.OrderDate,
				Status:     row.Status,
				Member: &memberrepo.MemberDTO{
					ID:   row.MemberID,
					Name: row.MemberName,
					Address: memberrepo.AddressDTO{
						City:    row.MemberCity,
						Street:  row.MemberStreet,
						Zipcode: row.MemberZipcode,
					},
				},
				Delivery: &DeliveryDTO{
					ID: row.DeliveryID,
					Address: memberrepo.AddressDTO{
						City:    row.DeliveryCity,
						Street:  row.DeliveryStreet,
						Zipcode: row.DeliveryZipcode,
					},
					Status: row.DeliveryStatus,
				},
			})
		}

		it, err := items.get(itemrepo.ItemDTO{
			ID:            row.ItemID,
			DType:         row.ItemDType,
			Name:          row.ItemName,
			Price:         row.ItemPrice,
			StockQuantity: row.ItemStock,
			Author:        row.Author,
			ISBN:          row.ISBN,
			Artist:        row.Artist,
			Etc:           row.Etc,
			Director:      row.Director,
			Actor:         row.Actor,
		})
		if err != nil {
			return nil, err
		}
		line, err := orderItemToDomain(OrderItemDTO{
			ID:         row.LineID,
			OrderID:    row.OrderID,
			LineNo:     row.LineNo,
			ItemID:     row.ItemID,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		}, it)
		if err != nil {
			return nil, err
		}
		lines[row.OrderID] = append(lines[row.OrderID], line)
	}

	orders := make([]*order.Order, 0, len(roots))
	for _, dto := range roots {
		m, ok := members[dto.MemberID]
		if !ok {
			if m, err = memberrepo.ToDomain(*dto.Member); err != nil {
				return nil, err
			}
			members[dto.MemberID] = m
		}
		d, err := deliveryToDomain(*dto.Delivery)
		if err != nil {
			return nil, err
		}
		o, err := toDomain(dto,
			order.Loaded(memberRelation, m),
			order.Loaded(deliveryRelation, d),
			order.Loaded(orderItemsRelation, lines[dto.ID]),
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// FindWithToOneRelations joins member and delivery into the root query, so the
// query can be paginated. Lines are left for LoadOrderItems.
func (l *GormOrderLoader) FindWithToOneRelations(ctx context.Context, filter ports.OrderFilter, page *ports.Page) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := l.db.WithContext(ctx).
		Joins("Member").
		Joins("Delivery").
		Scopes(Filter(filter), Sort(filter.Sort), Paginate(page)).
		Find(&dtos).Error
	l.queries++
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toOneToDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// LoadOrderItems loads lines for the orders in chunks of order ids, then their
// items in chunks of item ids, and attaches them. No query is issued for an
// empty slice.
func (l *GormOrderLoader) LoadOrderItems(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		orderIDs = append(orderIDs, o.ID().Bytes())
	}
	orderIDs = distinct(orderIDs)

	tx := l.db.WithContext(ctx)

	var lineDTOs []OrderItemDTO
	for chunk := range slices.Chunk(orderIDs, l.batchSize) {
		var part []OrderItemDTO
		err := tx.Where("order_id IN ?", chunk).
			Order("order_id").
			Order("line_no").
			Find(&part).Error
		l.queries++
		if err != nil {
			return err
		}
		lineDTOs = append(lineDTOs, part...)
	}

	itemIDs := make([]uuid.UUID, 0, len(lineDTOs))
	for _, dto := range lineDTOs {
		itemIDs = append(itemIDs, dto.ItemID)
	}
	itemIDs = distinct(itemIDs)

	items := itemCache{}
	for chunk := range slices.Chunk(itemIDs, l.batchSize) {
		var part []itemrepo.ItemDTO
		err := tx.Where("id IN ?", chunk).Find(&part).Error
		l.queries++
		if err != nil {
			return err
		}
		for _, dto := range part {
			if _, err := items.get(dto); err != nil {
				return err
			}
		}
	}

	lines := make(map[uuid.UUID][]*order.OrderItem, len(orderIDs))
	for _, dto := range lineDTOs {
		it, ok := items[dto.ItemID]
		if !ok {
			return errs.NewObjectNotFoundError("item", dto.ItemID.String())
		}
		line, err := orderItemToDomain(dto, it)
		if err != nil {
			return err
		}
		lines[dto.OrderID] = append(lines[dto.OrderID], line)
	}

	for _, o := range orders {
		if err := o.AttachOrderItems(lines[o.ID().Bytes()]); err != nil {
			return err
		}
	}
	return nil
}

// distinct sorts ids and drops duplicates.
func distinct(ids []uuid.UUID) []uuid.UUID {
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return kernel.UUIDFromGoogle(a).Compare(kernel.UUIDFromGoogle(b))
	})
	return slices.Compact(ids)
}
