package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterMemberCommand(t *testing.T) {
	cmd, err := commands.NewRegisterMemberCommand("  userA ", "Seoul", "Main St", "12345")
	require.NoError(t, err)
	assert.Equal(t, "userA", cmd.Name())
	assert.Equal(t, "Seoul", cmd.Address().City())

	_, err = commands.NewRegisterMemberCommand("", "", "Main St", "")
	require.ErrorIs(t, err, commands.ErrNameIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRegisterMemberCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterMemberCommand("userA", "Seoul", "Main St", "12345")
	require.NoError(t, err)

	repo := new(MockMemberRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MemberRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(m *member.Member) bool {
			return m.ID() == cmd.MemberID() && m.Name() == "userA"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMemberUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterMemberCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.MemberID(), id)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterMemberCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterMemberCommand("userA", "Seoul", "Main St", "12345")
	require.NoError(t, err)

	repo := new(MockMemberRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MemberRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*member.Member")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMemberUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterMemberCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}
