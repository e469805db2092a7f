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

type workCenterService interface {
	GetWorkCenters(ctx context.Context) ([]entities.WorkCenter, error)
	FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error)
	CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, id string, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error)
	DeleteWorkCenter(ctx context.Context, id string) error
	AssignEquipment(ctx context.Context, id string, payload dto.AssignEquipmentDTO) (*entities.WorkCenterAssignment, error)
}

type WorkCenterController struct {
	workCenterService workCenterService
	logger            *zap.Logger
}

func NewWorkCenterController(service workCenterService, logger *zap.Logger) *WorkCenterController {
	return &WorkCenterController{workCenterService: service, logger: logger}
}

func (c *WorkCenterController) GetWorkCenters(ctx echo.Context) error {
	if err := checkCompanyQuery(ctx); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.workCenterService.GetWorkCenters(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Work centers loaded", http.StatusOK, uint64(len(res)))
}

func (c *WorkCenterController) FindWorkCenter(ctx echo.Context) error {
	res, err := c.workCenterService.FindWorkCenter(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Work center found", http.StatusOK)
}

func (c *WorkCenterController) CreateWorkCenter(ctx echo.Context) error {
	var payload dto.CreateWorkCenterDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "CreateWorkCenter"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.workCenterService.CreateWorkCenter(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Work center created", http.StatusCreated)
}

func (c *WorkCenterController) UpdateWorkCenter(ctx echo.Context) error {
	var payload dto.UpdateWorkCenterDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "UpdateWorkCenter"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.workCenterService.UpdateWorkCenter(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Work center updated", http.StatusOK)
}

func (c *WorkCenterController) DeleteWorkCenter(ctx echo.Context) error {
	if err := c.workCenterService.DeleteWorkCenter(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Work center deleted", http.StatusOK)
}

func (c *WorkCenterController) AssignEquipment(ctx echo.Context) error {
	var payload dto.AssignEquipmentDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "AssignEquipment"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.workCenterService.AssignEquipment(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment assigned", http.StatusCreated)
}
