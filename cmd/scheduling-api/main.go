package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/finki-scheduling/exam-scheduling-api/api/swagger"
	"github.com/finki-scheduling/exam-scheduling-api/internal/engine"
	"github.com/finki-scheduling/exam-scheduling-api/internal/handler"
	"github.com/finki-scheduling/exam-scheduling-api/internal/middleware"
	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
	"github.com/finki-scheduling/exam-scheduling-api/internal/repository"
	"github.com/finki-scheduling/exam-scheduling-api/internal/service"
	"github.com/finki-scheduling/exam-scheduling-api/pkg/cache"
	"github.com/finki-scheduling/exam-scheduling-api/pkg/config"
	"github.com/finki-scheduling/exam-scheduling-api/pkg/database"
	"github.com/finki-scheduling/exam-scheduling-api/pkg/logger"
	corsmiddleware "github.com/finki-scheduling/exam-scheduling-api/pkg/middleware/cors"
	reqidmiddleware "github.com/finki-scheduling/exam-scheduling-api/pkg/middleware/requestid"
)

// @title Exam Scheduling API
// @version 1.0.0
// @description Exam session scheduling service for university exam periods
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)

	scheduleRepo := repository.NewScheduleRepository(db)
	examRepo := repository.NewScheduledExamRepository(db)

	schedulingSvc := service.NewSchedulingService(
		engine.NewScheduler(logr),
		scheduleRepo,
		examRepo,
		db,
		cacheSvc,
		metrics,
		validate,
		logr,
		service.SchedulingConfig{ProposalTTL: cfg.Scheduler.ProposalTTL},
	)
	exportSvc := service.NewExportService(schedulingSvc, nil, nil, logr)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.Auth.Secret,
		AccessTokenExpiry: cfg.Auth.Expiration,
		Issuer:            cfg.Auth.Issuer,
		Accounts:          buildAccounts(cfg.Auth),
	})

	authHandler := handler.NewAuthHandler(authSvc)
	schedulingHandler := handler.NewSchedulingHandler(schedulingSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

		scheduling := api.Group("/scheduling", middleware.JWT(authSvc))
		scheduling.POST("/generate", schedulingHandler.Generate)
		scheduling.GET("/schedules", schedulingHandler.List)
		scheduling.GET("/schedules/:id", schedulingHandler.Get)
		scheduling.GET("/schedules/:id/export", schedulingHandler.Export)

		adminOnly := middleware.RequireRole(models.RoleAdmin)
		scheduling.POST("/schedules", adminOnly, schedulingHandler.Save)
		scheduling.PUT("/schedules/:id/publish", adminOnly, schedulingHandler.Publish)
		scheduling.DELETE("/schedules/:id", adminOnly, schedulingHandler.Delete)

		api.GET("/system/metrics", middleware.JWT(authSvc), middleware.RequireRole(models.RoleAdmin), metricsHandler.Snapshot)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	logr.Info("server stopped", zap.String("env", cfg.Env))
}

func buildAccounts(cfg config.AuthConfig) []service.AuthAccount {
	accounts := make([]service.AuthAccount, 0, 2)
	if cfg.AdminUsername != "" && cfg.AdminPasswordHash != "" {
		accounts = append(accounts, service.AuthAccount{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
			Role:         models.RoleAdmin,
		})
	}
	if cfg.ProfessorUsername != "" && cfg.ProfessorPasswordHash != "" {
		accounts = append(accounts, service.AuthAccount{
			Username:     cfg.ProfessorUsername,
			PasswordHash: cfg.ProfessorPasswordHash,
			Role:         models.RoleProfessor,
		})
	}
	return accounts
}
