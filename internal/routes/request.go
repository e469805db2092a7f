package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runRequestRouter(secureGroup *echo.Group, requestService *services.MaintenanceRequestService, logger *zap.Logger) {
	requestCtrl := controllers.NewMaintenanceRequestController(requestService, logger)

	secureGroup.GET("/requests", requestCtrl.GetRequests)
	secureGroup.GET("/requests/:id", requestCtrl.FindRequest)
	secureGroup.POST("/requests", requestCtrl.CreateRequest)
	secureGroup.PATCH("/requests/:id", requestCtrl.UpdateRequest)
	secureGroup.PATCH("/requests/:id/move", requestCtrl.MoveRequest)
	secureGroup.DELETE("/requests/:id", requestCtrl.DeleteRequest)
}
