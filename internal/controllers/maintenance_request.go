package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type requestService interface {
	GetRequests(ctx context.Context, filter types.RequestFilter) ([]entities.MaintenanceRequest, error)
	FindRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id string, payload dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error)
	MoveRequest(ctx context.Context, id string, payload dto.MoveRequestDTO) (*entities.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, id string) error
}

type MaintenanceRequestController struct {
	requestService requestService
	logger         *zap.Logger
}

func NewMaintenanceRequestController(service requestService, logger *zap.Logger) *MaintenanceRequestController {
	return &MaintenanceRequestController{
		requestService: service,
		logger:         logger,
	}
}

// parseRequestFilter reads the list filters. Unknown enum values and
// malformed dates are a 400.
func parseRequestFilter(query url.Values) (types.RequestFilter, error) {
	filter := types.RequestFilter{
		Status:          utils.QueryString(query, "status"),
		MaintenanceType: utils.QueryString(query, "maintenanceType"),
		EquipmentID:     utils.QueryString(query, "equipmentId"),
		TeamID:          utils.QueryString(query, "teamId"),
	}
	if filter.Status != "" && !constants.IsValidRequestStatus(filter.Status) {
		return filter, apperrors.NewBadRequestError("Invalid status filter")
	}
	if filter.MaintenanceType != "" && !constants.IsValidMaintenanceType(filter.MaintenanceType) {
		return filter, apperrors.NewBadRequestError("Invalid maintenanceType filter")
	}
	var ok bool
	if filter.ScheduledFrom, ok = utils.ParseTimeParam(query, "scheduledFrom"); !ok {
		return filter, apperrors.NewBadRequestError("Invalid scheduledFrom date")
	}
	if filter.ScheduledTo, ok = utils.ParseTimeParam(query, "scheduledTo"); !ok {
		return filter, apperrors.NewBadRequestError("Invalid scheduledTo date")
	}
	return filter, nil
}

func (c *MaintenanceRequestController) GetRequests(ctx echo.Context) error {
	if err := checkCompanyQuery(ctx); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter, err := parseRequestFilter(ctx.Request().URL.Query())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Requests loaded", http.StatusOK, uint64(len(res)))
}

func (c *MaintenanceRequestController) FindRequest(ctx echo.Context) error {
	res, err := c.requestService.FindRequest(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request found", http.StatusOK)
}

func (c *MaintenanceRequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateRequestDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "CreateRequest"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request created", http.StatusCreated)
}

func (c *MaintenanceRequestController) UpdateRequest(ctx echo.Context) error {
	var payload dto.UpdateRequestDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "UpdateRequest"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.UpdateRequest(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request updated", http.StatusOK)
}

func (c *MaintenanceRequestController) MoveRequest(ctx echo.Context) error {
	var payload dto.MoveRequestDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "MoveRequest"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.MoveRequest(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request moved", http.StatusOK)
}

func (c *MaintenanceRequestController) DeleteRequest(ctx echo.Context) error {
	if err := c.requestService.DeleteRequest(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Request deleted", http.StatusOK)
}
