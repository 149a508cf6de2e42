// Package queries contains the read operations of the ordering service.
// Handlers open a unit of work, read through the loader or the query
// repository, and commit once everything they return is materialized.
package queries

import (
	"context"

	"ordering/internal/core/ports"
)

type (
	// QueryUoW is the read-only slice of a unit of work.
	QueryUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderLoader() ports.OrderLoader
		OrderQueryRepository() ports.OrderQueryRepository
	}

	QueryUoWFactory interface {
		Create() QueryUoW
	}
)
