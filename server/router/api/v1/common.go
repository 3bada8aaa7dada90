package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "github.com/repgenie/repgenie/internal/errors"
)

// errorBody is the JSON envelope for every failed request.
type errorBody struct {
	Code    apperr.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// codeStatus maps error codes to HTTP statuses.
var codeStatus = map[apperr.ErrorCode]int{
	apperr.ErrCodeInvalidArgument:    http.StatusBadRequest,
	apperr.ErrCodeWeakPassword:       http.StatusBadRequest,
	apperr.ErrCodeCaptchaRequired:    http.StatusBadRequest,
	apperr.ErrCodeCaptchaFailed:      http.StatusBadRequest,
	apperr.ErrCodeAgentNotFound:      http.StatusBadRequest,
	apperr.ErrCodeInvalidCredentials: http.StatusUnauthorized,
	apperr.ErrCodeNotFound:           http.StatusNotFound,
	apperr.ErrCodeDuplicateEmail:     http.StatusConflict,
	apperr.ErrCodeRateLimitExceeded:  http.StatusTooManyRequests,
	apperr.ErrCodeAgentUnavailable:   http.StatusBadGateway,
	apperr.ErrCodeStorageUnavailable: http.StatusServiceUnavailable,
}

// replyError converts a service error into the JSON error envelope.
// Internal detail (the wrapped cause) stays out of the response body.
func replyError(c echo.Context, err error) error {
	if apiErr, ok := err.(*apperr.APIError); ok {
		status, found := codeStatus[apiErr.Code]
		if !found {
			status = http.StatusInternalServerError
		}
		return c.JSON(status, &errorBody{Code: apiErr.Code, Message: apiErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, &errorBody{
		Code:    "INTERNAL",
		Message: "internal server error",
	})
}
