package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/guard"
)

var (
	ErrCompleteDeliveriesCommandIsNotConstructed = errors.New(
		"CompleteDeliveriesCommand must be created via NewCompleteDeliveriesCommand constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff time is required")
	ErrLimitIsInvalid   = errors.New("limit must be greater than 0")
)

// CompleteDeliveriesCommand marks as delivered up to limit orders placed
// before the cutoff that are still waiting for delivery.
type CompleteDeliveriesCommand struct { //nolint:recvcheck //using for validation
	placedBefore time.Time
	limit        int

	guard guard.ConstructorGuard
}

func NewCompleteDeliveriesCommand(placedBefore time.Time, limit int) (CompleteDeliveriesCommand, error) {
	cmd := CompleteDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPlacedBefore(placedBefore),
		cmd.setLimit(limit),
	); err != nil {
		return CompleteDeliveriesCommand{}, err
	}

	return cmd, nil
}

func (c CompleteDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveriesCommandIsNotConstructed)
}

func (c CompleteDeliveriesCommand) PlacedBefore() time.Time {
	return c.placedBefore
}

func (c CompleteDeliveriesCommand) Limit() int {
	return c.limit
}

func (c *CompleteDeliveriesCommand) setPlacedBefore(placedBefore time.Time) error {
	if placedBefore.IsZero() {
		return ErrCutoffIsRequired
	}

	c.placedBefore = placedBefore
	return nil
}

func (c *CompleteDeliveriesCommand) setLimit(limit int) error {
	if limit <= 0 {
		return ErrLimitIsInvalid
	}

	c.limit = limit
	return nil
}
