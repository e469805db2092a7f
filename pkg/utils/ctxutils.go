package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
)

func ContextWithTimeout(ctx echo.Context, timeout int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), time.Duration(timeout)*time.Second)
}

func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserNotFoundInContext
	}
	return userID, nil
}

func GetSessionIDFromCtx(ctx context.Context) string {
	sessionID, _ := ctx.Value(contextkeys.SessionIDKey).(string)
	return sessionID
}
