package kernel

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const maxAddressPartLength = 255

// ErrAddressIsNotConstructed is returned when an Address was not built by NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress constructor")

// Address is the postal address of a member and the destination of a delivery.
// Parts are trimmed; city and street are required, zipcode may be empty.
type Address struct { //nolint:recvcheck //using for validation
	city    string
	street  string
	zipcode string
	guard   guard.ConstructorGuard
}

// NewAddress creates a validated address from trimmed parts. City and street
// are required; the zipcode may be empty.
func NewAddress(city, street, zipcode string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setCity(city),
		addr.setStreet(street),
		addr.setZipcode(zipcode),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate reports whether the address was built by NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// City returns the city part.
func (a Address) City() string {
	return a.city
}

// Street returns the street part.
func (a Address) Street() string {
	return a.street
}

// Zipcode returns the zipcode part.
func (a Address) Zipcode() string {
	return a.zipcode
}

// IsEqual compares two constructed addresses part by part.
func (a Address) IsEqual(other Address) (bool, error) {
	if err := errors.Join(a.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return a == other, nil
}

// String formats the address for logs.
func (a Address) String() string {
	if a.zipcode == "" {
		return fmt.Sprintf("%s, %s", a.street, a.city)
	}
	return fmt.Sprintf("%s, %s %s", a.street, a.city, a.zipcode)
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	if len(city) > maxAddressPartLength {
		return errs.NewValueIsOutOfRangeError("city length", len(city), 1, maxAddressPartLength)
	}
	a.city = city
	return nil
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	if len(street) > maxAddressPartLength {
		return errs.NewValueIsOutOfRangeError("street length", len(street), 1, maxAddressPartLength)
	}
	a.street = street
	return nil
}

func (a *Address) setZipcode(zipcode string) error {
	zipcode = strings.TrimSpace(zipcode)
	if len(zipcode) > 32 {
		return errs.NewValueIsOutOfRangeError("zipcode length", len(zipcode), 0, 32)
	}
	a.zipcode = zipcode
	return nil
}
