package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrProductNotFound narrows ErrNotFound so callers can tell a missing
	// product from a missing order while generic handlers still match.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

	ErrValidation          = errors.New("invalid input")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOrderNotCancellable = errors.New("order is not cancellable")
	ErrChannelIntegrity    = errors.New("payment callback integrity check failed")
	ErrReceiptClosed       = errors.New("receipt already resolved")
	ErrUploadLimit         = errors.New("receipt upload limit reached")
	ErrNotOwner            = errors.New("resource belongs to another seller")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
