package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/careops/hospitalops/internal/api/http"
	"github.com/careops/hospitalops/internal/api/http/handlers"
	"github.com/careops/hospitalops/internal/auth"
	"github.com/careops/hospitalops/internal/config"
	"github.com/careops/hospitalops/internal/events"
	"github.com/careops/hospitalops/internal/observability"
	"github.com/careops/hospitalops/internal/persistence"
	"github.com/careops/hospitalops/internal/repository"
	"github.com/careops/hospitalops/internal/service"
	"github.com/careops/hospitalops/internal/worker"
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

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	unitRepo := repository.NewUnitRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		UnitRepo: unitRepo,
	})
	unitService := service.NewUnitService(unitRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		UnitRepo:    unitRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:    ticketRepo,
		UserRepo:      userRepo,
		EquipmentRepo: equipmentRepo,
		CommentRepo:   commentRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	equipmentService := service.NewEquipmentService(equipmentRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, equipmentRepo, cfg.Billing)
	statsService := service.NewStatsService(ticketRepo, equipmentRepo, redis.Client, logger, cfg.Stats.CacheTTL())
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService, statsService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Units:          handlers.NewUnitsHandler(unitService),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, assignmentService),
		Equipment:      handlers.NewEquipmentHandler(equipmentService),
		Purchases:      handlers.NewPurchasesHandler(purchaseService),
		Dashboard:      handlers.NewDashboardHandler(statsService),
		AuthMiddleware: authMiddleware,
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
