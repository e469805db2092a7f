package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"gearguard/internal/repositories"
	"gearguard/internal/routes"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	applogger "gearguard/pkg/logger"
	"gearguard/pkg/middleware"
	"gearguard/pkg/utils"
	"gearguard/pkg/validation"
	"gearguard/pkg/websocket"
)

func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			for _, o := range cfg.Server.AllowedOrigins {
				if origin == o {
					return true, nil
				}
			}
			return false, nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	e.Validator = validation.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		logger.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	defer dbConn.Close()

	cacheRepo := repositories.NewNoopCacheRepository()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		defer redisClient.Close()
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	} else {
		logger.Warn("Redis disabled, running without cache")
	}

	hub := websocket.NewHub(logger.Named("ws"))
	go hub.Run(ctx)
	bus := eventbus.New(logger.Named("events"))

	loggers := &routes.Loggers{
		Main:    logger,
		Auth:    logger.Named("auth"),
		Request: logger.Named("requests"),
	}
	if err := routes.InitRouter(e, dbConn, cacheRepo, hub, bus, loggers, cfg); err != nil {
		logger.Fatal("failed to init router", zap.Error(err))
	}

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
