package postgres_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var baseTime = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// openSQLite returns a migrated store in a temp file that lives as long as t.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ordering.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres_adapter.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type line struct {
	item  *item.Item
	count int
}

// seeder writes members, items and orders in their own committed transactions.
type seeder struct {
	t       *testing.T
	factory ports.UnitOfWorkFactory
}

func (s seeder) inTx(fn func(ctx context.Context, uow ports.UnitOfWork)) {
	s.t.Helper()
	ctx := s.t.Context()
	uow := s.factory.Create()
	require.NoError(s.t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	fn(ctx, uow)
	require.NoError(s.t, uow.Commit(ctx))
}

func (s seeder) member(name, city string) *member.Member {
	s.t.Helper()
	address, err := kernel.NewAddress(city, "Main St", "12345")
	require.NoError(s.t, err)
	m, err := member.NewMember(kernel.NewUUID(), name, address)
	require.NoError(s.t, err)
	s.inTx(func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(s.t, uow.MemberRepository().Add(ctx, m))
	})
	return m
}

func (s seeder) book(name string, price int64, stock int) *item.Item {
	s.t.Helper()
	it, err := item.NewItem(kernel.NewUUID(), name, price, stock, item.Book{Author: "author", ISBN: name})
	require.NoError(s.t, err)
	s.inTx(func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(s.t, uow.ItemRepository().Add(ctx, it))
	})
	return it
}

// order places an order the way the place-order use case does: lock items,
// reserve, write stock, add the order.
func (s seeder) order(m *member.Member, at time.Time, lines ...line) *order.Order {
	s.t.Helper()
	var placed *order.Order
	s.inTx(func(ctx context.Context, uow ports.UnitOfWork) {
		ids := make([]kernel.UUID, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.item.ID())
		}
		locked, err := uow.ItemRepository().GetForUpdate(ctx, ids)
		require.NoError(s.t, err)
		byID := make(map[kernel.UUID]*item.Item, len(locked))
		for _, it := range locked {
			byID[it.ID()] = it
		}

		reservations := make([]item.Reservation, 0, len(lines))
		for _, l := range lines {
			reservations = append(reservations, item.Reservation{Item: byID[l.item.ID()], Count: l.count})
		}
		delivery, err := order.NewDelivery(kernel.NewUUID(), m.Address())
		require.NoError(s.t, err)
		placed, err = order.NewOrder(kernel.NewUUID(), m, delivery, reservations, services.NewInventoryLedger(), at)
		require.NoError(s.t, err)

		for _, it := range locked {
			require.NoError(s.t, uow.ItemRepository().UpdateStock(ctx, it))
		}
		require.NoError(s.t, uow.OrderRepository().Add(ctx, placed))
	})
	return placed
}
