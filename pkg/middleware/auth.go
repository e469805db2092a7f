package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
)

// SessionResolver turns a session cookie value into the current user.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*entities.User, *service.SessionClaims, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions SessionResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// Auth rejects the request with 401 unless it carries a valid session
// cookie, and stores the caller and its permissions in the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(constants.SessionCookieName)
		if err != nil || cookie.Value == "" {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		user, claims, err := m.sessions.ResolveSession(c.Request().Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUnauthorized) {
				m.logger.Debug("session rejected", zap.Error(err))
			}
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		ctx := authz.WithActor(c.Request().Context(), user, authz.PermissionsForRole(user.Role))
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, claims.ID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
