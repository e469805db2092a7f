package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runReportRouter(secureGroup *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger) {
	reportCtrl := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports/requests", reportCtrl.GetRequestReport)
	secureGroup.GET("/reports/equipment", reportCtrl.GetEquipmentReport)
}
