package controllers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	apperrors "gearguard/pkg/errors"
)

// bindAndValidate decodes the JSON body into payload and runs the validator.
func bindAndValidate(ctx echo.Context, payload interface{}, logger *zap.Logger, handler string) error {
	if err := ctx.Bind(payload); err != nil {
		logger.Debug(handler+": invalid request body", zap.Error(err))
		return apperrors.NewBadRequestError("Invalid request body")
	}
	if err := ctx.Validate(payload); err != nil {
		logger.Debug(handler+": validation failed", zap.Error(err))
		return err
	}
	return nil
}

// checkCompanyQuery rejects a ?companyId= that names another company.
func checkCompanyQuery(ctx echo.Context) error {
	authCtx, err := authz.FromContext(ctx.Request().Context())
	if err != nil {
		return err
	}
	return authCtx.CheckCompanyParam(ctx.QueryParam("companyId"))
}
