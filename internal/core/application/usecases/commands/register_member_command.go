package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrRegisterMemberCommandIsNotConstructed = errors.New(
		"RegisterMemberCommand must be created via NewRegisterMemberCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

type RegisterMemberCommand struct { //nolint:recvcheck //using for validation
	memberID kernel.UUID
	name     string
	address  kernel.Address

	guard guard.ConstructorGuard
}

func NewRegisterMemberCommand(name, city, street, zipcode string) (RegisterMemberCommand, error) {
	cmd := RegisterMemberCommand{
		memberID: kernel.NewUUID(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setAddress(city, street, zipcode),
	); err != nil {
		return RegisterMemberCommand{}, err
	}

	return cmd, nil
}

func (c RegisterMemberCommand) Validate() error {
	return c.guard.Validate(ErrRegisterMemberCommandIsNotConstructed)
}

func (c RegisterMemberCommand) MemberID() kernel.UUID {
	return c.memberID
}

func (c RegisterMemberCommand) Name() string {
	return c.name
}

func (c RegisterMemberCommand) Address() kernel.Address {
	return c.address
}

func (c *RegisterMemberCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterMemberCommand) setAddress(city, street, zipcode string) error {
	address, err := kernel.NewAddress(city, street, zipcode)
	if err != nil {
		return err
	}

	c.address = address
	return nil
}
