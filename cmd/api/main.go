package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/juanjsts/game-catalog-service/internal/api/http"
	"github.com/juanjsts/game-catalog-service/internal/api/http/handlers"
	"github.com/juanjsts/game-catalog-service/internal/api/ws"
	"github.com/juanjsts/game-catalog-service/internal/auth"
	"github.com/juanjsts/game-catalog-service/internal/config"
	"github.com/juanjsts/game-catalog-service/internal/events"
	"github.com/juanjsts/game-catalog-service/internal/observability"
	"github.com/juanjsts/game-catalog-service/internal/persistence"
	"github.com/juanjsts/game-catalog-service/internal/repository"
	"github.com/juanjsts/game-catalog-service/internal/service"
	"github.com/juanjsts/game-catalog-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	platformRepo := repository.NewPlatformRepository(pool)
	playerRepo := repository.NewPlayerRepository(pool)
	gameRepo := repository.NewGameRepository(pool)

	registry := events.NewRegistry(cfg.Notify.MaxFailures)
	notifier := events.NewNotifier(registry, logger, metrics, cfg.Notify)
	stopDispatch := worker.StartDispatchWorkers(notifier)
	defer stopDispatch()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(cfg.Auth, userRepo)
	platformService := service.NewPlatformService(platformRepo, notifier)
	playerService := service.NewPlayerService(playerRepo, notifier)
	gameService := service.NewGameService(gameRepo, redis, notifier, logger)

	principals := auth.NewPrincipalStore(userRepo)
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), principals, metrics)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:               handlers.NewAuthHandler(authService),
		Users:              handlers.NewUsersHandler(userService),
		Platforms:          handlers.NewPlatformsHandler(platformService),
		Players:            handlers.NewPlayersHandler(playerService),
		Games:              handlers.NewGamesHandler(gameService),
		Updates:            ws.NewHandler(registry, logger),
		AuthMiddleware:     authMiddleware,
		LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
