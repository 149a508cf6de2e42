// Package commands contains the operations that change the ordering store.
// Every handler validates its command, opens one unit of work, defers a
// rollback and commits once at the end.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of work subsets each handler depends on.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	MemberRepoFactory interface {
		MemberRepository() ports.MemberRepository
	}

	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MemberUoW is used by commands that only write members.
	MemberUoW interface {
		TxManager
		MemberRepoFactory
	}

	MemberUoWFactory interface {
		Create() MemberUoW
	}

	// ItemUoW is used by commands that only write items.
	ItemUoW interface {
		TxManager
		ItemRepoFactory
	}

	ItemUoWFactory interface {
		Create() ItemUoW
	}

	// OrderUoW is used by commands that change orders without touching stock.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans members, items and orders. Placing and cancelling orders
	// move stock, so they need all three.
	UoW interface {
		TxManager
		MemberRepoFactory
		ItemRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
