package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardService *services.DashboardService, equipmentService *services.EquipmentService, logger *zap.Logger) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)
	secureGroup.GET("/dashboard/critical-equipment", equipmentCtrl.GetCriticalEquipment)
}
