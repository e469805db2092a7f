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

type userService interface {
	ListUsers(ctx context.Context, filter types.UserFilter) ([]entities.User, error)
	FindUser(ctx context.Context, id string) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserController struct {
	userService userService
	logger      *zap.Logger
}

func NewUserController(service userService, logger *zap.Logger) *UserController {
	return &UserController{userService: service, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	if err := checkCompanyQuery(ctx); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := types.UserFilter{Role: utils.QueryString(ctx.Request().URL.Query(), "role")}

	res, err := c.userService.ListUsers(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Users loaded", http.StatusOK, uint64(len(res)))
}

func (c *UserController) FindUser(ctx echo.Context) error {
	res, err := c.userService.FindUser(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "User found", http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "CreateUser"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.userService.CreateUser(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "User created", http.StatusCreated)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	var payload dto.UpdateUserDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "UpdateUser"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.userService.UpdateUser(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "User updated", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	if err := c.userService.DeleteUser(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "User deleted", http.StatusOK)
}
