package item

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

type Item struct {
	id            kernel.UUID
	name          string
	price         int64
	stockQuantity int
	loadedStock   int
	variant       Variant

	isConstructed bool
}

// NewItem creates an item with its initial stock. price is in minor currency units.
func NewItem(id kernel.UUID, name string, price int64, stockQuantity int, variant Variant) (*Item, error) {
	it := &Item{isConstructed: true}

	if err := errors.Join(
		it.setID(id),
		it.setName(name),
		it.setPrice(price),
		it.setStockQuantity(stockQuantity),
		it.setVariant(variant),
	); err != nil {
		return nil, err
	}
	it.loadedStock = it.stockQuantity

	return it, nil
}

// RestoreItem rebuilds an item read from the store. The given stock becomes
// the baseline StockChange is measured against.
func RestoreItem(id kernel.UUID, name string, price int64, stockQuantity int, variant Variant) (*Item, error) {
	return NewItem(id, name, price, stockQuantity, variant)
}

// Validate reports whether the item was built by a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Name returns the catalogue name.
func (i *Item) Name() string {
	return i.name
}

// Price returns the current unit price in minor currency units.
func (i *Item) Price() int64 {
	return i.price
}

// StockQuantity returns the units currently in stock.
func (i *Item) StockQuantity() int {
	return i.stockQuantity
}

// Kind returns the tag of the item's variant.
func (i *Item) Kind() Kind {
	return i.variant.Kind()
}

// Variant returns the kind-specific payload.
func (i *Item) Variant() Variant {
	return i.variant
}

// StockChange is the signed difference between the current stock and the
// stock the item was created or restored with.
func (i *Item) StockChange() int {
	return i.stockQuantity - i.loadedStock
}

// MarkStockPersisted makes the current stock the new baseline once the
// change has been written.
func (i *Item) MarkStockPersisted() {
	i.loadedStock = i.stockQuantity
}

// RemoveStock takes count units out of stock. It fails with
// InsufficientStockError, leaving the stock unchanged, when count exceeds it.
func (i *Item) RemoveStock(count int) error {
	if count <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is not greater than 0", count))
	}
	if count > i.stockQuantity {
		return errs.NewInsufficientStockError(i.id.String(), count, i.stockQuantity)
	}
	i.stockQuantity -= count
	return nil
}

// AddStock puts count units back. There is no upper bound.
func (i *Item) AddStock(count int) error {
	if count <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is not greater than 0", count))
	}
	i.stockQuantity += count
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", price))
	}
	i.price = price
	return nil
}

func (i *Item) setStockQuantity(stockQuantity int) error {
	if stockQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock quantity", fmt.Errorf("%d is negative", stockQuantity))
	}
	i.stockQuantity = stockQuantity
	return nil
}

func (i *Item) setVariant(variant Variant) error {
	if variant == nil {
		return errs.NewValueIsRequiredError("variant")
	}
	if err := variant.Kind().Validate(); err != nil {
		return err
	}
	i.variant = variant
	return nil
}

// Reservation is a request for count units of one item.
type Reservation struct {
	Item  *Item
	Count int
}
