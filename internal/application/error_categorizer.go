package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransactionMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case domain.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return ErrCodeOrderNotFound
	case errors.Is(err, domain.ErrCourseNotFound):
		return ErrCodeCourseNotFound
	case errors.Is(err, domain.ErrTransactionMismatch):
		return ErrCodeTransactionMismatch
	case errors.Is(err, domain.ErrInvalidTransition):
		return ErrCodeInvalidTransition
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	}

	return ErrCodeInternal
}
