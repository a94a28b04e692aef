// internal/domain/checkout/errors.go
package checkout

import "fmt"

// ErrorCode classifies checkout failures for the API layer
type ErrorCode string

const (
	ErrCodeValidation     ErrorCode = "validation_failed"
	ErrCodeNetwork        ErrorCode = "network_error"
	ErrCodePaymentSession ErrorCode = "payment_session_failed"
)

// Error is a checkout failure with a stable code the frontend can
// branch on. Message is safe to show to the customer.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError builds a validation_failed error
func NewValidationError(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message}
}

// NewNetworkError wraps a storage or transport failure
func NewNetworkError(err error) *Error {
	return &Error{
		Code:    ErrCodeNetwork,
		Message: "Could not process your request, please try again",
		Err:     err,
	}
}

// NewPaymentSessionError wraps a payment-provider failure. The order
// already exists when this is returned.
func NewPaymentSessionError(err error) *Error {
	return &Error{
		Code:    ErrCodePaymentSession,
		Message: "Your order was placed but the payment page could not be opened",
		Err:     err,
	}
}
