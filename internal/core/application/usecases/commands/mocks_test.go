package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMemberRepository struct{ mock.Mock }

func (m *MockMemberRepository) Add(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemberRepository) Get(ctx context.Context, id kernel.UUID) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateStock(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAwaitingDelivery(ctx context.Context, placedBefore time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, placedBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// MockUoW satisfies every unit of work subset used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) MemberRepository() ports.MemberRepository {
	args := m.Called()
	return args.Get(0).(ports.MemberRepository)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMemberUoWFactory struct{ mock.Mock }

func (m *MockMemberUoWFactory) Create() commands.MemberUoW {
	args := m.Called()
	return args.Get(0).(commands.MemberUoW)
}

type MockItemUoWFactory struct{ mock.Mock }

func (m *MockItemUoWFactory) Create() commands.ItemUoW {
	args := m.Called()
	return args.Get(0).(commands.ItemUoW)
}

func newMember(t *testing.T) *member.Member {
	t.Helper()
	address, err := kernel.NewAddress("Seoul", "Main St", "12345")
	require.NoError(t, err)
	m, err := member.NewMember(kernel.NewUUID(), "userA", address)
	require.NoError(t, err)
	return m
}

func newBook(t *testing.T, name string, price int64, stock int) *item.Item {
	t.Helper()
	it, err := item.NewItem(kernel.NewUUID(), name, price, stock, item.Book{Author: "author", ISBN: name})
	require.NoError(t, err)
	return it
}

// placedOrder returns an order as the repository would load it after it
// was placed.
func placedOrder(t *testing.T, m *member.Member, reservations ...item.Reservation) *order.Order {
	t.Helper()
	delivery, err := order.NewDelivery(kernel.NewUUID(), m.Address())
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), m, delivery, reservations, services.NewInventoryLedger(), time.Now().UTC())
	require.NoError(t, err)
	for _, r := range reservations {
		r.Item.MarkStockPersisted()
	}
	return o
}
