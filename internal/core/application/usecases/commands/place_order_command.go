package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand or NewPlaceOrderCommandWithLines constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
	ErrCountIsInvalid        = errors.New("count must be greater than 0")
)

// OrderLine asks for count units of one item.
type OrderLine struct {
	ItemID kernel.UUID
	Count  int
}

// PlaceOrderCommand asks to order items for a member. The order id is
// assigned when the command is created so the caller knows it up front.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(memberID, itemID, 2)
//	if err != nil {
//	    return err
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	memberID kernel.UUID
	lines    []OrderLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand orders count units of a single item.
func NewPlaceOrderCommand(memberID, itemID kernel.UUID, count int) (PlaceOrderCommand, error) {
	return NewPlaceOrderCommandWithLines(memberID, []OrderLine{{ItemID: itemID, Count: count}})
}

// NewPlaceOrderCommandWithLines orders several lines at once. Lines keep
// their order and become line numbers 1..n.
func NewPlaceOrderCommandWithLines(memberID kernel.UUID, lines []OrderLine) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		orderID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMemberID(memberID),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) MemberID() kernel.UUID {
	return c.memberID
}

func (c PlaceOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// ItemIDs returns the distinct item ids in first-seen order.
func (c PlaceOrderCommand) ItemIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]bool, len(c.lines))
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, line := range c.lines {
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			ids = append(ids, line.ItemID)
		}
	}
	return ids
}

func (c *PlaceOrderCommand) setMemberID(memberID kernel.UUID) error {
	if err := memberID.Validate(); err != nil {
		return err
	}

	c.memberID = memberID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if err := line.ItemID.Validate(); err != nil {
			return err
		}
		if line.Count <= 0 {
			return ErrCountIsInvalid
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
