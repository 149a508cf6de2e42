// Package postgres provides the GORM implementation of the unit of work and
// the schema migration for the ordering store.
//
// A unit of work wraps exactly one transaction. Every repository, loader and
// query repository it hands out runs on that transaction, and lazy relations
// read through its loader can only be fetched while it is active.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, LoaderOptions{BatchSize: 100})
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	orders, err := uow.OrderLoader().FindWithToOneRelations(ctx, filter, page)
//	if err != nil {
//	    return err
//	}
//	if err := uow.OrderLoader().LoadOrderItems(ctx, orders); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"ordering/internal/adapters/out/postgres/itemrepo"
	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/adapters/out/postgres/orderqueryrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// LoaderOptions tunes the read side of every unit of work a factory creates.
type LoaderOptions struct {
	// BatchSize is the number of ids per IN query. Zero means the default.
	BatchSize int
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one GORM connection
// pool. Each instance gets its own transaction.
type GormUnitOfWorkFactory struct {
	db      *gorm.DB
	options LoaderOptions
}

// NewGormUnitOfWorkFactory returns a factory over db.
func NewGormUnitOfWorkFactory(db *gorm.DB, options LoaderOptions) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, options: options}
}

// Create returns a unit of work with no transaction started.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		options: f.options,
	}
}

// GormUnitOfWork coordinates one database transaction. Lazy relations its
// loader produces are scoped to that transaction, not to the unit of work, so
// a later Begin on the same instance does not revive them.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	options LoaderOptions

	loader    *orderrepo.GormOrderLoader
	queryRepo *orderqueryrepo.GormOrderQueryRepository
}

// Begin starts a transaction. Calling it again while active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.reset()
	return nil
}

// Commit commits the transaction. It returns gorm.ErrInvalidTransaction when
// nothing is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction when
// nothing is active, so it is safe to defer after a Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// Active reports whether a transaction is open.
func (uow *GormUnitOfWork) Active() bool {
	return uow.tx != nil
}

// txScope is active only while the transaction it was taken from is the
// current one of its unit of work.
type txScope struct {
	uow *GormUnitOfWork
	tx  *gorm.DB
}

func (s txScope) Active() bool {
	return s.tx != nil && s.uow.tx == s.tx
}

// MemberRepository returns a member repository on the current transaction.
func (uow *GormUnitOfWork) MemberRepository() ports.MemberRepository {
	return memberrepo.NewGormMemberRepository(uow.conn())
}

// ItemRepository returns an item repository on the current transaction.
func (uow *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(uow.conn())
}

// OrderRepository returns an order repository on the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// OrderLoader returns the same loader for the whole transaction so its query
// count accumulates.
func (uow *GormUnitOfWork) OrderLoader() ports.OrderLoader {
	if uow.loader == nil {
		uow.loader = orderrepo.NewGormOrderLoader(uow.conn(), txScope{uow: uow, tx: uow.tx}, uow.options.BatchSize)
	}
	return uow.loader
}

// OrderQueryRepository returns the same query repository for the whole
// transaction so its query count accumulates.
func (uow *GormUnitOfWork) OrderQueryRepository() ports.OrderQueryRepository {
	if uow.queryRepo == nil {
		uow.queryRepo = orderqueryrepo.NewGormOrderQueryRepository(uow.conn(), uow.options.BatchSize)
	}
	return uow.queryRepo
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) reset() {
	uow.loader = nil
	uow.queryRepo = nil
}
