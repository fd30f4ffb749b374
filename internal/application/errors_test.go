package application_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", application.NewValidationError("bad"), http.StatusBadRequest},
		{"course not found", application.NewNotFoundError(application.ErrCodeCourseNotFound, "missing"), http.StatusNotFound},
		{"gateway unavailable", application.NewGatewayUnavailableError("paypal", nil), http.StatusBadRequest},
		{"gateway not allowed", application.NewGatewayNotAllowedError("paypal", nil), http.StatusBadRequest},
		{"remote failure", application.NewRemoteFailureError("declined", nil), http.StatusBadGateway},
		{"auth failed", application.NewAuthFailedError(errors.New("401")), http.StatusInternalServerError},
		{"request processing", application.NewRequestProcessingError(), http.StatusConflict},
		{"wrapped service error", fmt.Errorf("capture: %w", application.NewOrderNotFoundError()), http.StatusNotFound},
		{"domain not found", domain.NewOrderNotFoundError(3), http.StatusNotFound},
		{"domain mismatch", domain.NewTransactionMismatchError("a", "b"), http.StatusBadRequest},
		{"domain transition", domain.NewInvalidTransitionError(domain.StatusFailed, domain.StatusCompleted), http.StatusConflict},
		{"deadline", context.DeadlineExceeded, http.StatusRequestTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, application.ToHTTPStatus(tt.err))
		})
	}
}

func TestToErrorCode(t *testing.T) {
	assert.Equal(t, application.ErrCodeRemoteFailure, application.ToErrorCode(application.NewRemoteFailureError("x", nil)))
	assert.Equal(t, application.ErrCodeOrderNotFound, application.ToErrorCode(fmt.Errorf("lookup: %w", domain.ErrOrderNotFound)))
	assert.Equal(t, application.ErrCodeCourseNotFound, application.ToErrorCode(fmt.Errorf("lookup: %w", domain.ErrCourseNotFound)))
	assert.Equal(t, "TIMEOUT", application.ToErrorCode(context.DeadlineExceeded))
	assert.Equal(t, application.ErrCodeInternal, application.ToErrorCode(errors.New("boom")))
}

func TestServiceError_UnwrapsCause(t *testing.T) {
	cause := domain.NewTransactionMismatchError("PP-1", "PP-2")
	err := application.NewTransactionMismatchError(cause)

	assert.ErrorIs(t, err, domain.ErrTransactionMismatch)
	assert.Contains(t, err.Error(), "Transaction mismatch")
	assert.True(t, application.IsKind(err, application.KindTransactionMismatch))
	assert.False(t, application.IsKind(errors.New("plain"), application.KindTransactionMismatch))
}

func TestNewGatewayNotAllowedError_ListsAlternatives(t *testing.T) {
	err := application.NewGatewayNotAllowedError("paypal", []string{"stripe", "bank-transfer"})
	assert.Equal(t, "Payment gateway paypal is not enabled for this course (available: stripe, bank-transfer)", err.Message)

	err = application.NewGatewayNotAllowedError("paypal", nil)
	assert.Equal(t, "Payment gateway paypal is not enabled for this course", err.Message)
}
