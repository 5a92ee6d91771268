package common

import (
	"net/http"
)

// ErrorResponse is the JSON error envelope returned by the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// CustomError carries a stable error code plus the HTTP status it maps to.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError creates a CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError marks a request-validation failure.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// Error codes.
const (
	// Client errors (4xx)
	ErrCodeInvalidRequest    = "INVALID_REQUEST"    // 400
	ErrCodeInvalidTransition = "INVALID_TRANSITION" // 400
	ErrCodeUnauthorized      = "UNAUTHORIZED"       // 401
	ErrCodeForbidden         = "FORBIDDEN"          // 403
	ErrCodeNotFound          = "NOT_FOUND"          // 404
	ErrCodeSessionNotFound   = "SESSION_NOT_FOUND"  // 404
	ErrCodeRecipeNotFound    = "RECIPE_NOT_FOUND"   // 404
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED" // 405
	ErrCodeRequestTimeout    = "REQUEST_TIMEOUT"    // 408
	ErrCodeConflict          = "CONFLICT"           // 409
	ErrCodeSessionBusy       = "SESSION_BUSY"       // 409
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"  // 429

	// Server errors (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeAIServiceError     = "AI_SERVICE_ERROR"    // 502
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// Predefined errors.
var (
	// Client errors
	ErrInvalidRequest    = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrInvalidTransition = NewError(ErrCodeInvalidTransition, "the requested view change is not allowed from the current view", http.StatusBadRequest, nil)
	ErrUnauthorized      = NewError(ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized, nil)
	ErrForbidden         = NewError(ErrCodeForbidden, "forbidden", http.StatusForbidden, nil)
	ErrNotFound          = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrSessionNotFound   = NewError(ErrCodeSessionNotFound, "session not found or expired", http.StatusNotFound, nil)
	ErrRecipeNotFound    = NewError(ErrCodeRecipeNotFound, "recipe not found", http.StatusNotFound, nil)
	ErrMethodNotAllowed  = NewError(ErrCodeMethodNotAllowed, "method not allowed", http.StatusMethodNotAllowed, nil)
	ErrRequestTimeout    = NewError(ErrCodeRequestTimeout, "request timed out", http.StatusRequestTimeout, nil)
	ErrConflict          = NewError(ErrCodeConflict, "resource conflict", http.StatusConflict, nil)
	ErrSessionBusy       = NewError(ErrCodeSessionBusy, "Finokio sta già cucinando, attendi un attimo!", http.StatusConflict, nil)
	ErrTooManyRequests   = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	// Server errors
	ErrInternalError      = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrAIService          = NewError(ErrCodeAIServiceError, "Finokio ha bruciato la ricetta! Riprova.", http.StatusBadGateway, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "gateway timeout", http.StatusGatewayTimeout, nil)
)
