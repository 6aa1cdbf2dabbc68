package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localrivet/textsummary/internal/errortypes"
)

// ErrorResponse represents the structure of error responses sent by the API
type ErrorResponse struct {
	Status    string                 `json:"status"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Error response codes
const (
	StatusCodeValidationError = "VALIDATION_ERROR"
	StatusCodePermissionError = "PERMISSION_ERROR"
	StatusCodeNotFound        = "RESOURCE_NOT_FOUND"
	StatusCodeInternalError   = "INTERNAL_ERROR"
	StatusCodeConfigError     = "CONFIG_ERROR"
	StatusCodeExternalError   = "EXTERNAL_ERROR"
	StatusCodeUnknownError    = "UNKNOWN_ERROR"
)

// ErrorWithStatus creates an error with an HTTP status code
type ErrorWithStatus struct {
	err        error
	statusCode int
	errorCode  string
	message    string
	requestID  string
}

// NewErrorWithStatus creates a new error with HTTP status code
func NewErrorWithStatus(err error, status int, code, message string) *ErrorWithStatus {
	return &ErrorWithStatus{
		err:        err,
		statusCode: status,
		errorCode:  code,
		message:    message,
	}
}

// WithRequestID attaches the request ID echoed back in the error body.
func (e *ErrorWithStatus) WithRequestID(id string) *ErrorWithStatus {
	e.requestID = id
	return e
}

// Error returns the error message
func (e *ErrorWithStatus) Error() string {
	if e.err == nil {
		return e.message
	}
	if e.message != "" {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.err.Error()
}

// Unwrap returns the underlying error
func (e *ErrorWithStatus) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status code
func (e *ErrorWithStatus) StatusCode() int {
	return e.statusCode
}

// ErrorCode returns the application error code
func (e *ErrorWithStatus) ErrorCode() string {
	return e.errorCode
}

// Message returns the client-friendly message
func (e *ErrorWithStatus) Message() string {
	return e.message
}

// statusForType maps an error category to an HTTP status and error code.
func statusForType(t errortypes.ErrorType) (int, string) {
	switch t {
	case errortypes.ErrorTypeValidation:
		return http.StatusBadRequest, StatusCodeValidationError
	case errortypes.ErrorTypePermission:
		return http.StatusForbidden, StatusCodePermissionError
	case errortypes.ErrorTypeConfig:
		return http.StatusInternalServerError, StatusCodeConfigError
	case errortypes.ErrorTypeNetwork, errortypes.ErrorTypeAPI, errortypes.ErrorTypeExternal:
		return http.StatusBadGateway, StatusCodeExternalError
	case errortypes.ErrorTypeInternal:
		return http.StatusInternalServerError, StatusCodeInternalError
	default:
		return http.StatusInternalServerError, StatusCodeUnknownError
	}
}

// errorToResponse converts an error to a status code and a standardized
// ErrorResponse. Internal failures never leak their cause to the client.
func errorToResponse(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Status: "error"}

	var statusErr *ErrorWithStatus
	if errors.As(err, &statusErr) {
		resp.Code = statusErr.ErrorCode()
		resp.Message = statusErr.Message()
		resp.RequestID = statusErr.requestID

		var appErr *errortypes.AppError
		if errors.As(statusErr.err, &appErr) && appErr.Type == errortypes.ErrorTypeValidation {
			resp.Details = map[string]interface{}{"error": appErr.Err.Error()}
			for k, v := range appErr.Fields {
				resp.Details[k] = v
			}
		}
		return statusErr.StatusCode(), resp
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		resp.Message = http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			resp.Message = msg
		}
		switch {
		case httpErr.Code == http.StatusNotFound:
			resp.Code = StatusCodeNotFound
		case httpErr.Code < http.StatusInternalServerError:
			resp.Code = StatusCodeValidationError
		default:
			resp.Code = StatusCodeInternalError
		}
		return httpErr.Code, resp
	}

	var appErr *errortypes.AppError
	if errors.As(err, &appErr) {
		status, code := statusForType(appErr.Type)
		resp.Code = code
		if appErr.Type == errortypes.ErrorTypeValidation {
			resp.Message = appErr.Error()
			resp.Details = appErr.Fields
		} else {
			resp.Message = "An unexpected error occurred"
		}
		return status, resp
	}

	resp.Code = StatusCodeUnknownError
	resp.Message = "An unexpected error occurred"
	return http.StatusInternalServerError, resp
}

// newHTTPErrorHandler returns an echo error handler that writes
// ErrorResponse bodies and logs server side failures.
func newHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := errorToResponse(err)
		if status >= http.StatusInternalServerError {
			errortypes.LogError(logger, err)
		} else {
			logger.Debug("Request failed", "status", status, "code", resp.Code, "error", err.Error())
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			logger.Error("Failed to write error response", "error", writeErr)
		}
	}
}
