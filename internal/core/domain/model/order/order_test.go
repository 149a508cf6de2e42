package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type fixture struct {
	member   *member.Member
	delivery *order.Delivery
	bookA    *item.Item
	bookB    *item.Item
	ledger   services.InventoryLedger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	address, err := kernel.NewAddress("Seoul", "Main St", "12345")
	require.NoError(t, err)
	m, err := member.NewMember(kernel.NewUUID(), "userA", address)
	require.NoError(t, err)
	d, err := order.NewDelivery(kernel.NewUUID(), address)
	require.NoError(t, err)
	bookA, err := item.NewItem(kernel.NewUUID(), "Book A", 10000, 10, item.Book{Author: "a", ISBN: "1"})
	require.NoError(t, err)
	bookB, err := item.NewItem(kernel.NewUUID(), "Book B", 20000, 5, item.Book{Author: "b", ISBN: "2"})
	require.NoError(t, err)
	return fixture{member: m, delivery: d, bookA: bookA, bookB: bookB, ledger: services.NewInventoryLedger()}
}

func (f fixture) place(t *testing.T, reservations ...item.Reservation) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), f.member, f.delivery, reservations, f.ledger, now)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should reserve stock and snapshot prices", func(t *testing.T) {
		f := newFixture(t)

		o := f.place(t, item.Reservation{Item: f.bookA, Count: 2})

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Ordered, o.Status())
		assert.Equal(t, now, o.OrderDate())
		assert.True(t, o.MemberID().IsEqual(f.member.ID()))
		assert.True(t, o.DeliveryID().IsEqual(f.delivery.ID()))
		assert.Equal(t, 8, f.bookA.StockQuantity())

		total, err := o.TotalPrice()
		require.NoError(t, err)
		assert.Equal(t, int64(20000), total)

		lines, err := o.OrderItems()
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(10000), lines[0].OrderPrice())
		assert.Equal(t, 1, lines[0].LineNo())
		assert.True(t, lines[0].OrderID().IsEqual(o.ID()))
	})

	t.Run("should keep line order of reservations", func(t *testing.T) {
		f := newFixture(t)

		o := f.place(t,
			item.Reservation{Item: f.bookB, Count: 1},
			item.Reservation{Item: f.bookA, Count: 3},
		)

		lines, err := o.OrderItems()
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "Book B", lines[0].Item().Name())
		assert.Equal(t, "Book A", lines[1].Item().Name())
		total, _ := o.TotalPrice()
		assert.Equal(t, int64(50000), total)
	})

	t.Run("should fail with insufficient stock and reserve nothing", func(t *testing.T) {
		f := newFixture(t)

		o, err := order.NewOrder(kernel.NewUUID(), f.member, f.delivery, []item.Reservation{
			{Item: f.bookA, Count: 2},
			{Item: f.bookB, Count: 6},
		}, f.ledger, now)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Nil(t, o)
		assert.Equal(t, 10, f.bookA.StockQuantity())
		assert.Equal(t, 5, f.bookB.StockQuantity())
	})

	t.Run("should require at least one line", func(t *testing.T) {
		f := newFixture(t)

		_, err := order.NewOrder(kernel.NewUUID(), f.member, f.delivery, nil, f.ledger, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should collect validation errors", func(t *testing.T) {
		f := newFixture(t)

		_, err := order.NewOrder(kernel.UUID{}, nil, nil, []item.Reservation{{Item: f.bookA, Count: 0}}, nil, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, member.ErrMemberIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrDeliveryIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 10, f.bookA.StockQuantity())
	})

	t.Run("should reject a completed delivery", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.delivery.Complete())

		_, err := order.NewOrder(kernel.NewUUID(), f.member, f.delivery,
			[]item.Reservation{{Item: f.bookA, Count: 1}}, f.ledger, now)

		require.ErrorIs(t, err, errs.ErrIllegalState)
		assert.Equal(t, 10, f.bookA.StockQuantity())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should restore stock and set CANCEL", func(t *testing.T) {
		f := newFixture(t)
		o := f.place(t, item.Reservation{Item: f.bookA, Count: 2}, item.Reservation{Item: f.bookB, Count: 5})

		require.NoError(t, o.Cancel(f.ledger))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, 10, f.bookA.StockQuantity())
		assert.Equal(t, 5, f.bookB.StockQuantity())
	})

	t.Run("should refuse when delivery is complete", func(t *testing.T) {
		f := newFixture(t)
		o := f.place(t, item.Reservation{Item: f.bookA, Count: 2})
		require.NoError(t, o.CompleteDelivery())

		err := o.Cancel(f.ledger)

		require.ErrorIs(t, err, errs.ErrIllegalState)
		assert.Contains(t, err.Error(), "already delivered, cannot cancel")
		assert.Equal(t, order.Ordered, o.Status())
		assert.Equal(t, 8, f.bookA.StockQuantity())
	})

	t.Run("should refuse a second cancel", func(t *testing.T) {
		f := newFixture(t)
		o := f.place(t, item.Reservation{Item: f.bookA, Count: 2})
		require.NoError(t, o.Cancel(f.ledger))

		err := o.Cancel(f.ledger)

		require.ErrorIs(t, err, errs.ErrIllegalState)
		assert.Equal(t, 10, f.bookA.StockQuantity())
	})

	t.Run("should need loaded relations", func(t *testing.T) {
		f := newFixture(t)
		o, err := order.RestoreOrder(kernel.NewUUID(), f.member.ID(), f.delivery.ID(), now, order.Ordered,
			order.Loaded("order.member", f.member),
			order.NotFetched[*order.Delivery]("order.delivery"),
			order.NotFetched[[]*order.OrderItem]("order.orderItems"),
		)
		require.NoError(t, err)

		require.ErrorIs(t, o.Cancel(f.ledger), errs.ErrLoaderUsage)
		assert.Equal(t, order.Ordered, o.Status())
	})
}

func TestOrder_CompleteDelivery(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, item.Reservation{Item: f.bookA, Count: 1})

	require.NoError(t, o.CompleteDelivery())
	d, err := o.Delivery()
	require.NoError(t, err)
	assert.Equal(t, order.Comp, d.Status())

	require.ErrorIs(t, o.CompleteDelivery(), errs.ErrIllegalState)

	cancelled := newFixture(t)
	c := cancelled.place(t, item.Reservation{Item: cancelled.bookA, Count: 1})
	require.NoError(t, c.Cancel(cancelled.ledger))
	require.ErrorIs(t, c.CompleteDelivery(), errs.ErrIllegalState)
}

type scope struct{ active bool }

func (s *scope) Active() bool { return s.active }

func TestRestoreOrder_LazyRelations(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()
	line, err := order.NewOrderItem(kernel.NewUUID(), orderID, f.bookA, 2, 1)
	require.NoError(t, err)

	uow := &scope{active: true}
	fetches := 0
	o, err := order.RestoreOrder(orderID, f.member.ID(), f.delivery.ID(), now, order.Ordered,
		order.Lazy("order.member", uow, func(context.Context) (*member.Member, error) {
			fetches++
			return f.member, nil
		}),
		order.Lazy("order.delivery", uow, func(context.Context) (*order.Delivery, error) {
			fetches++
			return f.delivery, nil
		}),
		order.Lazy("order.orderItems", uow, func(context.Context) ([]*order.OrderItem, error) {
			fetches++
			return []*order.OrderItem{line}, nil
		}),
	)
	require.NoError(t, err)

	_, err = o.Member()
	require.ErrorIs(t, err, errs.ErrLoaderUsage, "plain accessor never fetches")
	assert.Equal(t, 0, fetches)

	m, err := o.FetchMember(t.Context())
	require.NoError(t, err)
	assert.Equal(t, f.member, m)
	_, err = o.FetchMember(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "fetched once")

	uow.active = false

	_, err = o.FetchDelivery(t.Context())
	require.ErrorIs(t, err, errs.ErrLoaderUsage)
	assert.Contains(t, err.Error(), "outside its unit of work")
	m, err = o.Member()
	require.NoError(t, err, "already loaded values stay readable")
	assert.Equal(t, f.member, m)
}

func TestRestoreOrder_FetchError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")
	o, err := order.RestoreOrder(kernel.NewUUID(), f.member.ID(), f.delivery.ID(), now, order.Ordered,
		order.Lazy("order.member", &scope{active: true}, func(context.Context) (*member.Member, error) {
			return nil, boom
		}),
		order.Loaded("order.delivery", f.delivery),
		order.NotFetched[[]*order.OrderItem]("order.orderItems"),
	)
	require.NoError(t, err)

	_, err = o.FetchMember(t.Context())
	require.ErrorIs(t, err, boom)

	_, err = o.FetchOrderItems(t.Context())
	require.ErrorIs(t, err, errs.ErrLoaderUsage)
	_, err = o.TotalPrice()
	require.ErrorIs(t, err, errs.ErrLoaderUsage)
}

func TestRestoreOrder_Validation(t *testing.T) {
	f := newFixture(t)
	other, _ := member.NewMember(kernel.NewUUID(), "userB", f.member.Address())

	_, err := order.RestoreOrder(kernel.NewUUID(), f.member.ID(), f.delivery.ID(), now, order.Ordered,
		order.Loaded("order.member", other),
		order.Loaded("order.delivery", f.delivery),
		order.NotFetched[[]*order.OrderItem]("order.orderItems"),
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.RestoreOrder(kernel.NewUUID(), f.member.ID(), f.delivery.ID(), now, order.Unknown,
		order.NotFetched[*member.Member]("order.member"),
		order.NotFetched[*order.Delivery]("order.delivery"),
		order.NotFetched[[]*order.OrderItem]("order.orderItems"),
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_AttachOrderItems(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()
	o, err := order.RestoreOrder(orderID, f.member.ID(), f.delivery.ID(), now, order.Ordered,
		order.Loaded("order.member", f.member),
		order.Loaded("order.delivery", f.delivery),
		order.NotFetched[[]*order.OrderItem]("order.orderItems"),
	)
	require.NoError(t, err)

	second, _ := order.RestoreOrderItem(kernel.NewUUID(), orderID, f.bookB, 20000, 1, 2)
	first, _ := order.RestoreOrderItem(kernel.NewUUID(), orderID, f.bookA, 9000, 3, 1)
	foreign, _ := order.RestoreOrderItem(kernel.NewUUID(), kernel.NewUUID(), f.bookA, 9000, 3, 1)

	require.ErrorIs(t, o.AttachOrderItems([]*order.OrderItem{foreign}), errs.ErrValueIsInvalid)
	require.NoError(t, o.AttachOrderItems([]*order.OrderItem{second, first}))

	lines, err := o.OrderItems()
	require.NoError(t, err)
	assert.Equal(t, []*order.OrderItem{first, second}, lines)
	total, err := o.TotalPrice()
	require.NoError(t, err)
	assert.Equal(t, int64(47000), total, "uses the order price snapshot, not the item price")
}
