package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// WriteError maps application errors to HTTP responses. Service errors expose
// their own message; anything else is reported generically and logged.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	errorCode := application.ToErrorCode(err)

	message := http.StatusText(statusCode)
	var domainErr *domain.DomainError
	if svcErr, ok := application.IsServiceError(err); ok {
		message = svcErr.Message
	} else if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", "code", errorCode, "status", statusCode, "error", err)
	}

	WriteJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    errorCode,
			Message: message,
		},
	})
}

// WriteErrorCode writes an error body for failures detected outside the
// application layer, such as authentication or malformed input.
func WriteErrorCode(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, SuccessResponse{Success: true, Data: data})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
