package itemrepo

import (
	"fmt"

	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ItemDTO stores every item kind in one table; DType selects which of the
// variant columns are meaningful.
type ItemDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DType         string    `gorm:"column:dtype;type:varchar(16);not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Price         int64     `gorm:"not null"`
	StockQuantity int       `gorm:"not null;check:chk_items_stock_quantity,stock_quantity >= 0"`
	Author        string    `gorm:"type:varchar(255);not null;default:''"`
	ISBN          string    `gorm:"column:isbn;type:varchar(32);not null;default:''"`
	Artist        string    `gorm:"type:varchar(255);not null;default:''"`
	Etc           string    `gorm:"type:varchar(255);not null;default:''"`
	Director      string    `gorm:"type:varchar(255);not null;default:''"`
	Actor         string    `gorm:"type:varchar(255);not null;default:''"`
}

func (ItemDTO) TableName() string {
	return "items"
}

// FromDomain maps an item to its single-table row, setting dtype from the variant.
func FromDomain(it *item.Item) ItemDTO {
	dto := ItemDTO{
		ID:            it.ID().Bytes(),
		DType:         it.Kind().String(),
		Name:          it.Name(),
		Price:         it.Price(),
		StockQuantity: it.StockQuantity(),
	}

	switch v := it.Variant().(type) {
	case item.Book:
		dto.Author = v.Author
		dto.ISBN = v.ISBN
	case item.Album:
		dto.Artist = v.Artist
		dto.Etc = v.Etc
	case item.Movie:
		dto.Director = v.Director
		dto.Actor = v.Actor
	}

	return dto
}

// ToDomain rebuilds an item from its row, choosing the variant by dtype.
func ToDomain(dto ItemDTO) (*item.Item, error) {
	kind, err := item.ParseKind(dto.DType)
	if err != nil {
		return nil, err
	}

	var variant item.Variant
	switch kind {
	case item.BookKind:
		variant = item.Book{Author: dto.Author, ISBN: dto.ISBN}
	case item.AlbumKind:
		variant = item.Album{Artist: dto.Artist, Etc: dto.Etc}
	case item.MovieKind:
		variant = item.Movie{Director: dto.Director, Actor: dto.Actor}
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("dtype", fmt.Errorf("%q has no variant", dto.DType))
	}

	return item.RestoreItem(kernel.UUIDFromGoogle(dto.ID), dto.Name, dto.Price, dto.StockQuantity, variant)
}
