package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
)

type RegisterMemberCommandHandler struct {
	uowFactory MemberUoWFactory
}

func NewRegisterMemberCommandHandler(uowFactory MemberUoWFactory) RegisterMemberCommandHandler {
	return RegisterMemberCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the new member.
func (h *RegisterMemberCommandHandler) Handle(ctx context.Context, cmd RegisterMemberCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	m, err := member.NewMember(cmd.MemberID(), cmd.Name(), cmd.Address())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MemberRepository().Add(ctx, m); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return m.ID(), nil
}
