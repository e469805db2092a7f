package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/utils"
)

type authService interface {
	SignUp(ctx context.Context, payload dto.SignUpDTO) (*entities.User, string, error)
	SignIn(ctx context.Context, payload dto.SignInDTO) (*entities.User, string, error)
	SignOut(ctx context.Context, token string) error
	CheckFirstUser(ctx context.Context) (bool, error)
	Me(ctx context.Context) (*dto.ProfileDTO, error)
}

// SessionCookie holds the attributes of the session cookie.
type SessionCookie struct {
	MaxAge time.Duration
	Secure bool
}

type AuthController struct {
	authService authService
	cookie      SessionCookie
	logger      *zap.Logger
}

func NewAuthController(authService authService, cookie SessionCookie, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

func (c *AuthController) setSessionCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) SignUp(ctx echo.Context) error {
	var payload dto.SignUpDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "SignUp"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, token, err := c.authService.SignUp(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.setSessionCookie(ctx, token)
	return utils.SuccessResponse(ctx, dto.AuthResponseDTO{User: user}, "Signed up successfully", http.StatusCreated)
}

func (c *AuthController) SignIn(ctx echo.Context) error {
	var payload dto.SignInDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "SignIn"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, token, err := c.authService.SignIn(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.setSessionCookie(ctx, token)
	return utils.SuccessResponse(ctx, dto.AuthResponseDTO{User: user}, "Signed in successfully", http.StatusOK)
}

// SignOut always clears the cookie, even when the session is already invalid.
func (c *AuthController) SignOut(ctx echo.Context) error {
	if cookie, err := ctx.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if err := c.authService.SignOut(ctx.Request().Context(), cookie.Value); err != nil {
			c.logger.Warn("SignOut: failed to revoke session", zap.Error(err))
		}
	}

	c.clearSessionCookie(ctx)
	return utils.SuccessResponse(ctx, nil, "Signed out successfully", http.StatusOK)
}

func (c *AuthController) CheckFirstUser(ctx echo.Context) error {
	isFirst, err := c.authService.CheckFirstUser(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CheckFirstUserDTO{IsFirstUser: isFirst}, "OK", http.StatusOK)
}

func (c *AuthController) Me(ctx echo.Context) error {
	profile, err := c.authService.Me(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, profile, "Profile loaded", http.StatusOK)
}
