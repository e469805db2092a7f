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

type teamService interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id string) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID string, payload dto.AddTeamMemberDTO) (*entities.Team, error)
	RemoveMember(ctx context.Context, teamID string, payload dto.RemoveTeamMemberDTO) error
}

type TeamController struct {
	teamService teamService
	logger      *zap.Logger
}

func NewTeamController(service teamService, logger *zap.Logger) *TeamController {
	return &TeamController{teamService: service, logger: logger}
}

func (c *TeamController) GetTeams(ctx echo.Context) error {
	if err := checkCompanyQuery(ctx); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.teamService.GetTeams(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Teams loaded", http.StatusOK, uint64(len(res)))
}

func (c *TeamController) FindTeam(ctx echo.Context) error {
	res, err := c.teamService.FindTeam(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Team found", http.StatusOK)
}

func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var payload dto.CreateTeamDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "CreateTeam"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.teamService.CreateTeam(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Team created", http.StatusCreated)
}

func (c *TeamController) UpdateTeam(ctx echo.Context) error {
	var payload dto.UpdateTeamDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "UpdateTeam"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.teamService.UpdateTeam(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Team updated", http.StatusOK)
}

func (c *TeamController) DeleteTeam(ctx echo.Context) error {
	if err := c.teamService.DeleteTeam(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Team deleted", http.StatusOK)
}

func (c *TeamController) AddMember(ctx echo.Context) error {
	var payload dto.AddTeamMemberDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "AddMember"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.teamService.AddMember(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Member added", http.StatusCreated)
}

func (c *TeamController) RemoveMember(ctx echo.Context) error {
	var payload dto.RemoveTeamMemberDTO
	if err := bindAndValidate(ctx, &payload, c.logger, "RemoveMember"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.teamService.RemoveMember(ctx.Request().Context(), ctx.Param("id"), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Member removed", http.StatusOK)
}
