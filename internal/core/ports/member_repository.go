package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
)

// MemberRepository defines the persistence contract for members.
type MemberRepository interface {
	Add(ctx context.Context, m *member.Member) error

	// Get returns errs.ObjectNotFoundError if no member has the id.
	Get(ctx context.Context, id kernel.UUID) (*member.Member, error)
}
