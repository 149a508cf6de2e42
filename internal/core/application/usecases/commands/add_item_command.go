package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrAddItemCommandIsNotConstructed = errors.New(
		"AddItemCommand must be created via NewAddItemCommand constructor",
	)
	ErrPriceIsInvalid   = errors.New("price must not be negative")
	ErrStockIsInvalid   = errors.New("stock quantity must not be negative")
	ErrVariantIsInvalid = errors.New("item variant is required")
)

// AddItemCommand registers a new catalogue item with its initial stock.
type AddItemCommand struct { //nolint:recvcheck //using for validation
	itemID        kernel.UUID
	name          string
	price         int64
	stockQuantity int
	variant       item.Variant

	guard guard.ConstructorGuard
}

func NewAddItemCommand(name string, price int64, stockQuantity int, variant item.Variant) (AddItemCommand, error) {
	cmd := AddItemCommand{
		itemID: kernel.NewUUID(),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setPrice(price),
		cmd.setStockQuantity(stockQuantity),
		cmd.setVariant(variant),
	); err != nil {
		return AddItemCommand{}, err
	}

	return cmd, nil
}

func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

func (c AddItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c AddItemCommand) Name() string {
	return c.name
}

func (c AddItemCommand) Price() int64 {
	return c.price
}

func (c AddItemCommand) StockQuantity() int {
	return c.stockQuantity
}

func (c AddItemCommand) Variant() item.Variant {
	return c.variant
}

func (c *AddItemCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *AddItemCommand) setPrice(price int64) error {
	if price < 0 {
		return ErrPriceIsInvalid
	}

	c.price = price
	return nil
}

func (c *AddItemCommand) setStockQuantity(stockQuantity int) error {
	if stockQuantity < 0 {
		return ErrStockIsInvalid
	}

	c.stockQuantity = stockQuantity
	return nil
}

func (c *AddItemCommand) setVariant(variant item.Variant) error {
	if variant == nil {
		return ErrVariantIsInvalid
	}
	if err := variant.Kind().Validate(); err != nil {
		return err
	}

	c.variant = variant
	return nil
}
