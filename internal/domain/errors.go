package domain

import (
	"errors"
	"fmt"
)

const (
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeTransactionMismatch  = "TRANSACTION_MISMATCH"
	ErrCodeInvalidPayload       = "INVALID_PAYLOAD"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrTransactionMismatch = errors.New("external transaction id mismatch")
)

// DomainError is a rule violation raised by an order, its money or its
// stored payload. Err carries either a sentinel above or a decoding cause.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DomainError) Unwrap() error { return e.Err }

// IsInput reports whether the error describes bad caller input rather than
// a conflict with stored order state.
func (e *DomainError) IsInput() bool {
	switch e.Code {
	case ErrCodeInvalidAmount, ErrCodeMissingRequiredField, ErrCodeInvalidPayload:
		return true
	}
	return false
}

func newDomainError(code string, cause error, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return newDomainError(ErrCodeMissingRequiredField, nil, "%s is required", field)
}

func NewInvalidAmountError(amount string) *DomainError {
	return newDomainError(ErrCodeInvalidAmount, nil, "invalid amount %s", amount)
}

func NewInvalidPayloadError(cause error) *DomainError {
	return newDomainError(ErrCodeInvalidPayload, cause, "gateway payload is not a JSON object")
}

func NewInvalidTransitionError(from, to OrderStatus) *DomainError {
	return newDomainError(ErrCodeInvalidTransition, ErrInvalidTransition, "order cannot move from %s to %s", from, to)
}

func NewOrderNotFoundError(id int64) *DomainError {
	return newDomainError(ErrCodeOrderNotFound, ErrOrderNotFound, "order %d not found", id)
}

func NewTransactionMismatchError(stored, supplied string) *DomainError {
	return newDomainError(ErrCodeTransactionMismatch, ErrTransactionMismatch,
		"order is bound to transaction %s, got %s", stored, supplied)
}

// IsErrorCode reports whether err wraps a DomainError with the given code.
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// IsInputError reports whether err wraps a DomainError caused by bad input.
func IsInputError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.IsInput()
}
