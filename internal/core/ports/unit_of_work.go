package ports

import (
	"context"
)

// UnitOfWorkFactory creates unit of work instances.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork wraps one store transaction. Every repository, loader and query
// repository it hands out is bound to that transaction; lazy relations loaded
// through it can only be fetched while it is Active.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it again while active is a no-op.
	Begin(ctx context.Context) error

	// Commit commits and ends the transaction.
	Commit(ctx context.Context) error

	// Rollback discards and ends the transaction.
	Rollback(ctx context.Context) error

	// Active reports whether a transaction is open.
	Active() bool

	MemberRepository() MemberRepository

	ItemRepository() ItemRepository

	OrderRepository() OrderRepository

	OrderLoader() OrderLoader

	OrderQueryRepository() OrderQueryRepository
}
