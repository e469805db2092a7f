package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/utils"
)

type companyService interface {
	ListCompanies(ctx context.Context) ([]entities.Company, error)
	FindCompany(ctx context.Context, id string) (*entities.Company, error)
	UpdateCompany(ctx context.Context, id string, payload dto.UpdateCompanyDTO) (*entities.Company, error)
	DeleteCompany(ctx context.Context, id string) error
}

type CompanyController struct {
	companyService companyService
	logger         *zap.Logger
}

func NewCompanyController(service companyService, logger *zap.Logger) *CompanyController {
	return &CompanyController{companyService: service, logger: logger}
}

func (c *CompanyController) GetCompanies(ctx echo.Context) error {
	res, err := c.companyService.ListCompanies(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Companies loaded", http.StatusOK, uint64(len(res)))
}

func (c *CompanyController) FindCompany(ctx echo.Context) error {
	res, err := c.companyService.FindCompany(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Company found", http.StatusOK)
}

func (c *CompanyController) UpdateCompany(ctx echo.Context) error {
	var payload dto.UpdateCompanyDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "UpdateCompany"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.companyService.UpdateCompany(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Company updated", http.StatusOK)
}

func (c *CompanyController) DeleteCompany(ctx echo.Context) error {
	if err := c.companyService.DeleteCompany(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Company deleted", http.StatusOK)
}
