package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runWorkCenterRouter(secureGroup *echo.Group, workCenterService *services.WorkCenterService, logger *zap.Logger) {
	workCenterCtrl := controllers.NewWorkCenterController(workCenterService, logger)

	secureGroup.GET("/work-centers", workCenterCtrl.GetWorkCenters)
	secureGroup.GET("/work-centers/:id", workCenterCtrl.FindWorkCenter)
	secureGroup.POST("/work-centers", workCenterCtrl.CreateWorkCenter)
	secureGroup.PATCH("/work-centers/:id", workCenterCtrl.UpdateWorkCenter)
	secureGroup.DELETE("/work-centers/:id", workCenterCtrl.DeleteWorkCenter)
	secureGroup.POST("/work-centers/:id/assign", workCenterCtrl.AssignEquipment)
}
