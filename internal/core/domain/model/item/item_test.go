package item_test

import (
	"testing"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(t *testing.T, price int64, stock int) *item.Item {
	t.Helper()
	it, err := item.NewItem(kernel.NewUUID(), "JPA Book", price, stock, item.Book{Author: "Kim", ISBN: "978-0"})
	require.NoError(t, err)
	return it
}

func TestNewItem(t *testing.T) {
	t.Run("should create item with variant", func(t *testing.T) {
		it, err := item.NewItem(kernel.NewUUID(), "Album A", 15000, 3, item.Album{Artist: "X"})

		require.NoError(t, err)
		require.NoError(t, it.Validate())
		assert.Equal(t, item.AlbumKind, it.Kind())
		assert.Equal(t, int64(15000), it.Price())
		assert.Equal(t, 3, it.StockQuantity())
		assert.Equal(t, 0, it.StockChange())
	})

	t.Run("should reject invalid values", func(t *testing.T) {
		it, err := item.NewItem(kernel.UUID{}, " ", -1, -1, nil)

		require.Error(t, err)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "price")
		assert.Contains(t, err.Error(), "stock quantity")
	})
}

func TestItem_RemoveStock(t *testing.T) {
	t.Run("should decrement stock", func(t *testing.T) {
		it := newBook(t, 10000, 10)

		require.NoError(t, it.RemoveStock(2))

		assert.Equal(t, 8, it.StockQuantity())
		assert.Equal(t, -2, it.StockChange())
	})

	t.Run("should allow taking the whole stock", func(t *testing.T) {
		it := newBook(t, 10000, 10)

		require.NoError(t, it.RemoveStock(10))

		assert.Equal(t, 0, it.StockQuantity())
	})

	t.Run("should fail and keep stock when not enough", func(t *testing.T) {
		it := newBook(t, 10000, 10)

		err := it.RemoveStock(11)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 11, stockErr.Requested)
		assert.Equal(t, 10, stockErr.Available)
		assert.Equal(t, 10, it.StockQuantity())
	})

	t.Run("should reject non-positive count", func(t *testing.T) {
		it := newBook(t, 10000, 10)

		require.ErrorIs(t, it.RemoveStock(0), errs.ErrValueIsInvalid)
		assert.Equal(t, 10, it.StockQuantity())
	})
}

func TestItem_AddStock(t *testing.T) {
	it := newBook(t, 10000, 0)

	require.NoError(t, it.AddStock(5))
	require.NoError(t, it.AddStock(1_000_000))

	assert.Equal(t, 1_000_005, it.StockQuantity())
	assert.Equal(t, 1_000_005, it.StockChange())
	require.ErrorIs(t, it.AddStock(-1), errs.ErrValueIsInvalid)
}

func TestKind(t *testing.T) {
	for _, k := range []item.Kind{item.BookKind, item.AlbumKind, item.MovieKind} {
		t.Run(k.String(), func(t *testing.T) {
			require.NoError(t, k.Validate())

			parsed, err := item.ParseKind(k.String())

			require.NoError(t, err)
			assert.Equal(t, k, parsed)
		})
	}

	_, err := item.ParseKind("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, item.UnknownKind.Validate())
	require.Error(t, item.Kind(42).Validate())
}

func TestItem_MarkStockPersisted(t *testing.T) {
	it := newBook(t, 10000, 10)
	require.NoError(t, it.RemoveStock(4))

	it.MarkStockPersisted()

	assert.Equal(t, 0, it.StockChange())
	assert.Equal(t, 6, it.StockQuantity())
}
