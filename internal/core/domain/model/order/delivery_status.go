package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// DeliveryStatus is the shipment state of an order's delivery.
type DeliveryStatus int

const (
	UnknownDeliveryStatus DeliveryStatus = iota
	Ready
	Comp
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		UnknownDeliveryStatus: "UNKNOWN",
		Ready:                 "READY",
		Comp:                  "COMP",
	}
}

// Validate accepts READY and COMP only.
func (s DeliveryStatus) Validate() error {
	if s != Ready && s != Comp {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the stored name.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseDeliveryStatus maps a stored name back to a DeliveryStatus.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for status, str := range getDeliveryStatusStrings() {
		if status != UnknownDeliveryStatus && str == s {
			return status, nil
		}
	}
	return UnknownDeliveryStatus, errs.NewValueIsInvalidErrorWithCause(
		"delivery status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

// Complete transitions READY to COMP.
func (s DeliveryStatus) Complete() (DeliveryStatus, error) {
	switch s {
	case Ready:
		return Comp, nil
	case Comp:
		return 0, errs.NewIllegalStateError("delivery", "already completed")
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%s is not a valid delivery status to complete", s.String()),
		)
	}
}
