package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type equipmentService interface {
	GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error)
	GetCriticalEquipment(ctx context.Context) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

type EquipmentController struct {
	equipmentService equipmentService
	logger           *zap.Logger
}

func NewEquipmentController(service equipmentService, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	if err := checkCompanyQuery(ctx); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	query := ctx.Request().URL.Query()
	filter := types.EquipmentFilter{
		Category: utils.QueryString(query, "category"),
		Status:   utils.QueryString(query, "status"),
		Search:   utils.QueryString(query, "search"),
	}

	res, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment list loaded", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentController) GetCriticalEquipment(ctx echo.Context) error {
	res, err := c.equipmentService.GetCriticalEquipment(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Critical equipment loaded", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment found", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "CreateEquipment"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment created", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	var payload dto.UpdateEquipmentDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "UpdateEquipment"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment updated", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Equipment deleted", http.StatusOK)
}
