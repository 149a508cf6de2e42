package memberrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMemberRepository persists members through the transaction it was
// created with.
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository returns a repository bound to db.
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Add inserts a new member.
func (r *GormMemberRepository) Add(ctx context.Context, m *member.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := FromDomain(m)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get returns the member with id or an ObjectNotFoundError.
func (r *GormMemberRepository) Get(ctx context.Context, id kernel.UUID) (*member.Member, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MemberDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("member", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}
