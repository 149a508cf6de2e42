package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier of every entity in the domain.
//
// NewUUID produces version 7 identifiers, so identifiers created later sort
// after identifiers created earlier. Listings that order by id therefore
// follow creation order.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new time-ordered UUID (version 7).
func NewUUID() UUID {
	return UUID{id: uuid.Must(uuid.NewV7())}
}

// UUIDFromString parses the standard, braced, urn and unhyphenated forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from exactly 16 bytes. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// UUIDFromGoogle wraps a value read from the store.
func UUIDFromGoogle(id uuid.UUID) UUID {
	return UUID{id: id}
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value, used as a query parameter and
// in persistence DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers are the same.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders identifiers bytewise, which for version 7 is creation order.
func (u UUID) Compare(other UUID) int {
	for i := range u.id {
		switch {
		case u.id[i] < other.id[i]:
			return -1
		case u.id[i] > other.id[i]:
			return 1
		}
	}
	return 0
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText encodes the canonical form, so identifiers serialize as JSON strings.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}
