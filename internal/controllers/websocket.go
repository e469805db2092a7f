package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/pkg/utils"
	appwebsocket "gearguard/pkg/websocket"
)

type WebSocketController struct {
	hub      *appwebsocket.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketController accepts upgrades from the given origins only. An
// empty list accepts any origin.
func NewWebSocketController(hub *appwebsocket.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
		logger: logger,
	}
}

// ServeBoard upgrades an authenticated request to a live board connection.
func (c *WebSocketController) ServeBoard(ctx echo.Context) error {
	authCtx, err := authz.FromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Warn("ServeBoard: upgrade failed", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, authCtx.Actor.ID, authCtx.CompanyID(), authCtx.Actor.Role)
	if !c.hub.Register(client) {
		c.logger.Warn("ServeBoard: hub stopped, closing connection", zap.String("userID", authCtx.Actor.ID))
		_ = conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("ServeBoard: client connected", zap.String("userID", authCtx.Actor.ID))
	return nil
}
