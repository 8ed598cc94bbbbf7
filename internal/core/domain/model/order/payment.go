package order

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for the order: cash on delivery or
// an online payment through the provider.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	PaymentMethodCOD
	PaymentMethodOnline
)

func paymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodCOD:    "cod",
		PaymentMethodOnline: "online",
	}
}

// PaymentMethodFromString parses the wire representation of a payment method.
// Synonyms used by older clients ("cash", "card", "razorpay") are mapped onto
// the two canonical methods.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	switch s {
	case "cod", "cash":
		return PaymentMethodCOD, nil
	case "online", "card", "razorpay":
		return PaymentMethodOnline, nil
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", s))
}

func (m PaymentMethod) String() string {
	if s, ok := paymentMethodStrings()[m]; ok {
		return s
	}
	return "unknown"
}

func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", int(m)))
	}
	return nil
}

// PaymentStatus tracks the payment side of the order independently of the
// delivery status. It starts pending and is resolved by the payment
// reconciler to completed or failed.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusCompleted
	PaymentStatusFailed
)

func paymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusPending:   "pending",
		PaymentStatusCompleted: "completed",
		PaymentStatusFailed:    "failed",
	}
}

// PaymentStatusFromString parses the wire representation of a payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", s))
}

func (p PaymentStatus) String() string {
	if s, ok := paymentStatusStrings()[p]; ok {
		return s
	}
	return "unknown"
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", int(p)))
	}
	return nil
}
