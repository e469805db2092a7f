package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, cfg *config.Config, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	authCtrl := controllers.NewAuthController(authService, controllers.SessionCookie{
		MaxAge: cfg.JWT.SessionTTL,
		Secure: cfg.Server.IsProduction(),
	}, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/sign-up", authCtrl.SignUp)
		authGroup.POST("/sign-in", authCtrl.SignIn)
		authGroup.POST("/sign-out", authCtrl.SignOut)
		authGroup.GET("/check-first-user", authCtrl.CheckFirstUser)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
