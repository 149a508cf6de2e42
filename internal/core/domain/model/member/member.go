package member

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrMemberIsNotConstructed = errors.New("Member must be created via NewMember or RestoreMember constructor")

const maxNameLength = 255

type Member struct {
	id      kernel.UUID
	name    string
	address kernel.Address

	isConstructed bool
}

// NewMember creates a member. The name is required.
func NewMember(id kernel.UUID, name string, address kernel.Address) (*Member, error) {
	m := &Member{isConstructed: true}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setAddress(address),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMember rebuilds a member read from the store.
func RestoreMember(id kernel.UUID, name string, address kernel.Address) (*Member, error) {
	return NewMember(id, name, address)
}

// Validate reports whether the member was built by NewMember.
func (m *Member) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMemberIsNotConstructed
	}
	return nil
}

// ID returns the member's unique identifier.
func (m *Member) ID() kernel.UUID {
	return m.id
}

// Name returns the member's name.
func (m *Member) Name() string {
	return m.name
}

// Address returns the member's home address, used as the default delivery address.
func (m *Member) Address() kernel.Address {
	return m.address
}

func (m *Member) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Member) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength)
	}
	m.name = name
	return nil
}

func (m *Member) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	m.address = address
	return nil
}
