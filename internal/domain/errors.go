package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")
)

// ValidationError rejects a request before any side effect is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PaymentDeclinedError is a card-specific decline from the payment gateway.
// It can only occur after validation succeeded and before anything was
// persisted. Reason is the gateway's explanation and is safe to surface.
type PaymentDeclinedError struct {
	Reason string
}

func (e *PaymentDeclinedError) Error() string { return "payment declined: " + e.Reason }
