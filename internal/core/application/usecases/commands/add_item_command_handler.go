package commands

import (
	"context"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
)

type AddItemCommandHandler struct {
	uowFactory ItemUoWFactory
}

func NewAddItemCommandHandler(uowFactory ItemUoWFactory) AddItemCommandHandler {
	return AddItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the new item.
func (h *AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	it, err := item.NewItem(cmd.ItemID(), cmd.Name(), cmd.Price(), cmd.StockQuantity(), cmd.Variant())
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

	if err = uow.ItemRepository().Add(ctx, it); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return it.ID(), nil
}
