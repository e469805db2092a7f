package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentService *services.EquipmentService, logger *zap.Logger) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/equipment", equipmentCtrl.GetEquipments)
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment)
	secureGroup.PATCH("/equipment/:id", equipmentCtrl.UpdateEquipment)
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)
}
