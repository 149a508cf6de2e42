package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL so row locks and the stock check constraint are exercised.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (s *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(postgres_adapter.Migrate(db))
	s.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, postgres_adapter.LoaderOptions{})
}

func (s *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE order_items, orders, deliveries, items, members").Error
	s.Require().NoError(err)
}

func (s *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *UnitOfWorkIntegrationTestSuite) seeder() seeder {
	return seeder{t: s.T(), factory: s.factory}
}

func (s *UnitOfWorkIntegrationTestSuite) stockOf(id kernel.UUID) int {
	ctx := s.T().Context()
	uow := s.factory.Create()
	it, err := uow.ItemRepository().Get(ctx, id)
	s.Require().NoError(err)
	return it.StockQuantity()
}

func (s *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := s.factory.Create()
	uow2 := s.factory.Create()

	s.NotSame(uow1, uow2)
	s.False(uow1.Active())
}

func (s *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := s.T().Context()
	uow := s.factory.Create()

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	s.True(uow.Active())

	s.Require().NoError(uow.Commit(ctx))
	s.False(uow.Active())

	s.Require().Error(uow.Commit(ctx))
	s.Require().Error(uow.Rollback(ctx))
}

func (s *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWrites() {
	ctx := s.T().Context()
	book := s.seeder().book("Book A", 10000, 10)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	locked, err := uow.ItemRepository().GetForUpdate(ctx, []kernel.UUID{book.ID()})
	s.Require().NoError(err)
	s.Require().NoError(locked[0].RemoveStock(3))
	s.Require().NoError(uow.ItemRepository().UpdateStock(ctx, locked[0]))
	s.Require().NoError(uow.Rollback(ctx))

	s.Equal(10, s.stockOf(book.ID()))
}

func (s *UnitOfWorkIntegrationTestSuite) TestUpdateStock_RefusesNegativeStock() {
	ctx := s.T().Context()
	book := s.seeder().book("Book A", 10000, 2)

	// A stale copy believes there are 10 in stock.
	stale, err := item.RestoreItem(book.ID(), book.Name(), book.Price(), 10, book.Variant())
	s.Require().NoError(err)
	s.Require().NoError(stale.RemoveStock(5))

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err = uow.ItemRepository().UpdateStock(ctx, stale)

	var stockErr *errs.InsufficientStockError
	s.Require().ErrorAs(err, &stockErr)
	s.Equal(5, stockErr.Requested)
	s.Equal(2, stockErr.Available)
}

func (s *UnitOfWorkIntegrationTestSuite) TestConcurrentOrders_NeverOversell() {
	seed := s.seeder()
	userA := seed.member("userA", "Seoul")
	book := seed.book("Book A", 10000, 5)

	const buyers = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.placeOne(userA.ID(), book.ID(), 2)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrInsufficientStock):
				rejected++
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(2, succeeded)
	s.Equal(buyers-2, rejected)
	s.Equal(1, s.stockOf(book.ID()))
}

func (s *UnitOfWorkIntegrationTestSuite) placeOne(memberID, itemID kernel.UUID, count int) error {
	ctx := context.Background()
	uow := s.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	m, err := uow.MemberRepository().Get(ctx, memberID)
	if err != nil {
		return err
	}
	locked, err := uow.ItemRepository().GetForUpdate(ctx, []kernel.UUID{itemID})
	if err != nil {
		return err
	}
	delivery, err := order.NewDelivery(kernel.NewUUID(), m.Address())
	if err != nil {
		return err
	}
	o, err := order.NewOrder(kernel.NewUUID(), m, delivery,
		[]item.Reservation{{Item: locked[0], Count: count}},
		services.NewInventoryLedger(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err = uow.ItemRepository().UpdateStock(ctx, locked[0]); err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (s *UnitOfWorkIntegrationTestSuite) TestFindAwaitingDelivery_SkipsLockedOrders() {
	ctx := s.T().Context()
	seed := s.seeder()
	userA := seed.member("userA", "Seoul")
	book := seed.book("Book A", 10000, 10)
	first := seed.order(userA, baseTime, line{book, 1})
	second := seed.order(userA, baseTime.Add(time.Minute), line{book, 1})

	holder := s.factory.Create()
	s.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.OrderRepository().Get(ctx, first.ID())
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	orders, err := uow.OrderRepository().FindAwaitingDelivery(ctx, baseTime.Add(time.Hour), 10)
	s.Require().NoError(err)

	s.Require().Len(orders, 1)
	s.True(orders[0].IsEqual(second))
}

func (s *UnitOfWorkIntegrationTestSuite) TestCancel_RestoresStockAndPersistsStatus() {
	ctx := s.T().Context()
	seed := s.seeder()
	userA := seed.member("userA", "Seoul")
	book := seed.book("Book A", 10000, 10)
	placed := seed.order(userA, baseTime, line{book, 2})
	s.Equal(8, s.stockOf(book.ID()))

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	o, err := uow.OrderRepository().Get(ctx, placed.ID())
	s.Require().NoError(err)
	s.Require().NoError(o.Cancel(services.NewInventoryLedger()))
	lines, err := o.OrderItems()
	s.Require().NoError(err)
	s.Require().NoError(uow.ItemRepository().UpdateStock(ctx, lines[0].Item()))
	s.Require().NoError(uow.OrderRepository().Update(ctx, o))
	s.Require().NoError(uow.Commit(ctx))

	s.Equal(10, s.stockOf(book.ID()))

	reader := s.factory.Create()
	s.Require().NoError(reader.Begin(ctx))
	defer func() { _ = reader.Rollback(ctx) }()
	reloaded, err := reader.OrderRepository().Get(ctx, placed.ID())
	s.Require().NoError(err)
	s.Equal(order.Cancelled, reloaded.Status())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
