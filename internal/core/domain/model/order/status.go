package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It is persisted by name.
type Status int

const (
	Unknown Status = iota
	// Ordered is the initial state.
	Ordered
	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Ordered:   "ORDER",
		Cancelled: "CANCEL",
	}
}

// Validate accepts ORDER and CANCEL only.
func (s Status) Validate() error {
	if s != Ordered && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stored name.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus maps a stored or requested name ("ORDER", "CANCEL") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Cancel transitions ORDER to CANCEL.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Ordered:
		return Cancelled, nil
	case Cancelled:
		return 0, errs.NewIllegalStateError("order", "already cancelled")
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
}
