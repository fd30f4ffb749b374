package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindNotFound            ErrorKind = "not_found"
	KindUnavailable         ErrorKind = "unavailable"
	KindNotAllowed          ErrorKind = "not_allowed"
	KindTransactionMismatch ErrorKind = "transaction_mismatch"
	KindAuthFailed          ErrorKind = "auth_failed"
	KindRemoteFailure       ErrorKind = "remote_failure"
	KindConflict            ErrorKind = "conflict"
	KindInternal            ErrorKind = "internal"
)

type ServiceError struct {
	Kind       ErrorKind
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeCourseNotFound      = "COURSE_NOT_FOUND"
	ErrCodeCourseUnavailable   = "COURSE_UNAVAILABLE"
	ErrCodeGatewayNotFound     = "GATEWAY_NOT_FOUND"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeGatewayUnavailable  = "GATEWAY_UNAVAILABLE"
	ErrCodeGatewayNotAllowed   = "GATEWAY_NOT_ALLOWED"
	ErrCodeTransactionMismatch = "TRANSACTION_MISMATCH"
	ErrCodeAuthFailed          = "AUTH_FAILED"
	ErrCodeRemoteFailure       = "REMOTE_FAILURE"
	ErrCodeOrderFailed         = "ORDER_FAILED"
	ErrCodeOrderNotReady       = "ORDER_NOT_READY"
	ErrCodeRequestProcessing   = "REQUEST_PROCESSING"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

func NewValidationError(message string) *ServiceError {
	return &ServiceError{
		Kind:       KindValidation,
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewNotFoundError(code, message string) *ServiceError {
	return &ServiceError{
		Kind:       KindNotFound,
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

func NewCourseUnavailableError() *ServiceError {
	return NewNotFoundError(ErrCodeCourseUnavailable, "Course is not available for purchase")
}

func NewOrderNotFoundError() *ServiceError {
	return NewNotFoundError(ErrCodeOrderNotFound, "Order not found")
}

func NewGatewayUnavailableError(gateway string, err error) *ServiceError {
	return &ServiceError{
		Kind:       KindUnavailable,
		Code:       ErrCodeGatewayUnavailable,
		Message:    fmt.Sprintf("Payment gateway %s is not available", gateway),
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewGatewayNotAllowedError lists the gateways the course can be bought
// through instead, if any.
func NewGatewayNotAllowedError(gateway string, available []string) *ServiceError {
	message := fmt.Sprintf("Payment gateway %s is not enabled for this course", gateway)
	if len(available) > 0 {
		message += fmt.Sprintf(" (available: %s)", strings.Join(available, ", "))
	}
	return &ServiceError{
		Kind:       KindNotAllowed,
		Code:       ErrCodeGatewayNotAllowed,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewTransactionMismatchError(err error) *ServiceError {
	return &ServiceError{
		Kind:       KindTransactionMismatch,
		Code:       ErrCodeTransactionMismatch,
		Message:    "Transaction mismatch",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewAuthFailedError(err error) *ServiceError {
	return &ServiceError{
		Kind:       KindAuthFailed,
		Code:       ErrCodeAuthFailed,
		Message:    "Could not authenticate with payment provider",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewRemoteFailureError carries the provider's message through to the caller.
func NewRemoteFailureError(message string, err error) *ServiceError {
	return &ServiceError{
		Kind:       KindRemoteFailure,
		Code:       ErrCodeRemoteFailure,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewOrderFailedError() *ServiceError {
	return &ServiceError{
		Kind:       KindValidation,
		Code:       ErrCodeOrderFailed,
		Message:    "Order has failed and cannot be paid",
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewOrderNotReadyError() *ServiceError {
	return &ServiceError{
		Kind:       KindValidation,
		Code:       ErrCodeOrderNotReady,
		Message:    "Order has no payment to capture yet",
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewRequestProcessingError() *ServiceError {
	return &ServiceError{
		Kind:       KindConflict,
		Code:       ErrCodeRequestProcessing,
		Message:    "Order is being created. Please retry in a moment.",
		HTTPStatus: http.StatusConflict,
	}
}

func NewInvalidTransitionError(err error) *ServiceError {
	return &ServiceError{
		Kind:       KindConflict,
		Code:       ErrCodeInvalidTransition,
		Message:    "Invalid transition",
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Kind:       KindInternal,
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	svcErr, ok := IsServiceError(err)
	return ok && svcErr.Kind == kind
}
