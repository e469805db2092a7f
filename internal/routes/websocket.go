package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/pkg/websocket"
)

func runWebSocketRouter(secureGroup *echo.Group, hub *websocket.Hub, allowedOrigins []string, logger *zap.Logger) {
	wsCtrl := controllers.NewWebSocketController(hub, allowedOrigins, logger)

	secureGroup.GET("/ws/board", wsCtrl.ServeBoard)
}
