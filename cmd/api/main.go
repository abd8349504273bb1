package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/civic-complaints/internal/api/http"
	"github.com/spec-kit/civic-complaints/internal/api/http/handlers"
	"github.com/spec-kit/civic-complaints/internal/auth"
	"github.com/spec-kit/civic-complaints/internal/config"
	"github.com/spec-kit/civic-complaints/internal/engine"
	"github.com/spec-kit/civic-complaints/internal/events"
	"github.com/spec-kit/civic-complaints/internal/observability"
	"github.com/spec-kit/civic-complaints/internal/persistence"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/internal/service"
	"github.com/spec-kit/civic-complaints/internal/worker"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	municipalityRepo := repository.NewMunicipalityRepository(pool)
	citizenRepo := repository.NewCitizenRepository(pool)
	officialRepo := repository.NewOfficialRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)
	voteRepo := repository.NewVoteRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	resolver := engine.NewMunicipalityResolver(municipalityRepo, citizenRepo)
	gate := engine.NewProximityGate(cfg.Engine.UpvoteRadiusKm)
	detector := engine.NewDuplicateDetector(complaintRepo)
	ranking := engine.NewRankingEngine(nil)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CitizenRepo:  citizenRepo,
		OfficialRepo: officialRepo,
		OTPStore:     persistence.NewRedisOTPStore(redis),
	}, logger)
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo:    complaintRepo,
		VoteRepo:         voteRepo,
		CommentRepo:      commentRepo,
		CitizenRepo:      citizenRepo,
		MunicipalityRepo: municipalityRepo,
		Gate:             gate,
		Detector:         detector,
		Dispatcher:       dispatcher,
	})
	locationService := service.NewLocationService(resolver, municipalityRepo, dispatcher)
	feedService := service.NewFeedService(complaintRepo, ranking)
	reviewService := service.NewReviewService(reviewRepo, complaintRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), citizenRepo, officialRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.Handlers{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(locationService, cfg.Engine),
		Municipalities: handlers.NewMunicipalitiesHandler(locationService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Feed:           handlers.NewFeedHandler(feedService, cfg.Engine),
		Reviews:        handlers.NewReviewsHandler(reviewService),
	}, authMiddleware)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
