package item

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Kind tags the variant carried by an Item. It is persisted as the dtype
// discriminator of the items table.
type Kind int

const (
	UnknownKind Kind = iota
	BookKind
	AlbumKind
	MovieKind
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "UNKNOWN",
		BookKind:    "BOOK",
		AlbumKind:   "ALBUM",
		MovieKind:   "MOVIE",
	}
}

// String returns the stored discriminator, e.g. "BOOK".
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects UnknownKind and values outside the enum.
func (k Kind) Validate() error {
	if k == UnknownKind {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	if _, ok := getKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// ParseKind maps a stored discriminator back to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, str := range getKindStrings() {
		if k != UnknownKind && str == s {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid kind", s))
}
