package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/item"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAddItemCommand(t *testing.T) {
	cmd, err := commands.NewAddItemCommand("Movie A", 15000, 3, item.Movie{Director: "d", Actor: "a"})
	require.NoError(t, err)
	assert.Equal(t, "Movie A", cmd.Name())
	assert.Equal(t, int64(15000), cmd.Price())
	assert.Equal(t, 3, cmd.StockQuantity())
	assert.Equal(t, item.MovieKind, cmd.Variant().Kind())

	_, err = commands.NewAddItemCommand(" ", -1, -1, nil)
	require.ErrorIs(t, err, commands.ErrNameIsRequired)
	require.ErrorIs(t, err, commands.ErrPriceIsInvalid)
	require.ErrorIs(t, err, commands.ErrStockIsInvalid)
	require.ErrorIs(t, err, commands.ErrVariantIsInvalid)
}

func TestAddItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddItemCommand("Album A", 12000, 7, item.Album{Artist: "artist", Etc: "etc"})
	require.NoError(t, err)

	repo := new(MockItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(it *item.Item) bool {
			return it.ID() == cmd.ItemID() && it.Kind() == item.AlbumKind && it.StockQuantity() == 7
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockItemUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.ItemID(), id)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddItemCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddItemCommand("Book A", 10000, 1, item.Book{Author: "a", ISBN: "1"})
	require.NoError(t, err)

	repo := new(MockItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*item.Item")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockItemUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}
