package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/lifecycle"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	"gearguard/pkg/websocket"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Request *zap.Logger
}

// InitRouter builds repositories, services and controllers on top of the
// pool and cache and mounts every route under /api.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	cacheRepo repositories.CacheRepositoryInterface,
	hub *websocket.Hub,
	bus *eventbus.Bus,
	loggers *Loggers,
	cfg *config.Config,
) error {
	loggers.Main.Info("InitRouter: building routes")

	policy, err := lifecycle.ParseTechnicianPolicy(cfg.Lifecycle.TechnicianPolicy)
	if err != nil {
		return err
	}

	// --- repositories ---
	txManager := repositories.NewTxManager(dbConn)
	userRepo := repositories.NewUserRepository(dbConn, loggers.Main)
	companyRepo := repositories.NewCompanyRepository(dbConn, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Main)
	teamRepo := repositories.NewTeamRepository(dbConn, loggers.Main)
	requestRepo := repositories.NewMaintenanceRequestRepository(dbConn, loggers.Request)
	workCenterRepo := repositories.NewWorkCenterRepository(dbConn, loggers.Main)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, loggers.Main)

	// --- services ---
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.SessionTTL, loggers.Auth)
	cache := services.NewScopedCache(cacheRepo, cfg.Cache, loggers.Main)

	authService := services.NewAuthService(txManager, userRepo, companyRepo, cacheRepo, jwtSvc, cfg.Auth, loggers.Auth)
	companyService := services.NewCompanyService(companyRepo, cache, loggers.Main)
	userService := services.NewUserService(txManager, userRepo, cache, cfg.Auth, loggers.Main)
	equipmentService := services.NewEquipmentService(equipmentRepo, requestRepo, userRepo, teamRepo, cache, loggers.Main)
	teamService := services.NewTeamService(txManager, teamRepo, userRepo, requestRepo, cache, loggers.Main)
	requestService := services.NewMaintenanceRequestService(
		txManager, requestRepo, equipmentRepo, userRepo, teamRepo, cache, bus, policy, loggers.Request,
	)
	workCenterService := services.NewWorkCenterService(workCenterRepo, equipmentRepo, loggers.Main)
	dashboardService := services.NewDashboardService(dashboardRepo, cache, loggers.Main)
	reportService := services.NewReportService(requestRepo, equipmentRepo, loggers.Main)

	listeners.NewBoardListener(hub, loggers.Main).Register(bus)

	// --- routers ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(authService, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, cfg, loggers.Auth, authMW)
	runCompanyRouter(secureGroup, companyService, loggers.Main)
	runUserRouter(secureGroup, userService, loggers.Main)
	runEquipmentRouter(secureGroup, equipmentService, loggers.Main)
	runRequestRouter(secureGroup, requestService, loggers.Request)
	runTeamRouter(secureGroup, teamService, loggers.Main)
	runWorkCenterRouter(secureGroup, workCenterService, loggers.Main)
	runDashboardRouter(secureGroup, dashboardService, equipmentService, loggers.Main)
	runReportRouter(secureGroup, reportService, loggers.Main)
	runWebSocketRouter(secureGroup, hub, cfg.Server.AllowedOrigins, loggers.Main)

	loggers.Main.Info("InitRouter: routes ready")
	return nil
}
