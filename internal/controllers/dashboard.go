package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/pkg/utils"
)

const dashboardTimeoutSeconds = 10

type dashboardService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

type DashboardController struct {
	dashboardService dashboardService
	logger           *zap.Logger
}

func NewDashboardController(service dashboardService, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: service, logger: logger}
}

func (c *DashboardController) GetDashboardStats(ctx echo.Context) error {
	if err := checkCompanyQuery(ctx); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	reqCtx, cancel := utils.ContextWithTimeout(ctx, dashboardTimeoutSeconds)
	defer cancel()

	stats, err := c.dashboardService.GetDashboardStats(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Dashboard loaded", http.StatusOK)
}
