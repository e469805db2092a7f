package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "gearguard/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		t := total[0]
		response.Total = &t
	}
	return ctx.JSON(code, response)
}

var sentinelStatus = []struct {
	err  error
	code int
}{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrUserNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrAccountLocked, http.StatusTooManyRequests},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrConflict, http.StatusConflict},
}

// ErrorResponse writes the failure envelope. Only HttpError messages and
// sentinel texts reach the caller; anything else becomes a generic 500.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code, message := resolveError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.Int("status", code),
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		}
		if code >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Debug("request rejected", fields...)
		}
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
		Error:   message,
	})
}

func resolveError(err error) (int, string) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, FormatValidationErrors(validationErrs)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code, fmt.Sprint(echoErr.Message)
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.code, s.err.Error()
		}
	}

	return http.StatusInternalServerError, "Internal server error"
}

func FormatValidationErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
