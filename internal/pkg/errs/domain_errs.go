package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrIllegalState      = errors.New("illegal state")
	ErrLoaderUsage       = errors.New("loader usage")
)

// InsufficientStockError is returned when a reservation would drive an item's
// stock below zero. The item is left unchanged.
type InsufficientStockError struct {
	ItemID    any
	Requested int
	Available int
	Cause     error
}

func NewInsufficientStockError(itemID any, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ItemID:    itemID,
		Requested: requested,
		Available: available,
	}
}

func NewInsufficientStockErrorWithCause(itemID any, requested, available int, cause error) *InsufficientStockError {
	return &InsufficientStockError{
		ItemID:    itemID,
		Requested: requested,
		Available: available,
		Cause:     cause,
	}
}

func (e *InsufficientStockError) Error() string {
	msg := fmt.Sprintf("%s: item %v requested %d, available %d",
		ErrInsufficientStock, e.ItemID, e.Requested, e.Available)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// IllegalStateError is returned when a lifecycle transition is not allowed
// from the current state.
type IllegalStateError struct {
	Entity string
	Reason string
	Cause  error
}

func NewIllegalStateError(entity, reason string) *IllegalStateError {
	return &IllegalStateError{
		Entity: entity,
		Reason: reason,
	}
}

func NewIllegalStateErrorWithCause(entity, reason string, cause error) *IllegalStateError {
	return &IllegalStateError{
		Entity: entity,
		Reason: reason,
		Cause:  cause,
	}
}

func (e *IllegalStateError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrIllegalState, e.Entity, e.Reason)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *IllegalStateError) Unwrap() error {
	return ErrIllegalState
}

// LoaderUsageError is returned when a read path is used in a way it cannot
// serve correctly: paginating a strategy that multiplies rows, or traversing a
// relation that was not fetched while its unit of work is gone.
type LoaderUsageError struct {
	Operation string
	Reason    string
	Cause     error
}

func NewLoaderUsageError(operation, reason string) *LoaderUsageError {
	return &LoaderUsageError{
		Operation: operation,
		Reason:    reason,
	}
}

func NewLoaderUsageErrorWithCause(operation, reason string, cause error) *LoaderUsageError {
	return &LoaderUsageError{
		Operation: operation,
		Reason:    reason,
		Cause:     cause,
	}
}

func (e *LoaderUsageError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrLoaderUsage, e.Operation, e.Reason)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *LoaderUsageError) Unwrap() error {
	return ErrLoaderUsage
}
