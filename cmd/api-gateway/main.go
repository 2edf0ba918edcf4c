package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lms-papers-api/api/swagger"
	"github.com/noah-isme/lms-papers-api/internal/handler"
	"github.com/noah-isme/lms-papers-api/internal/middleware"
	"github.com/noah-isme/lms-papers-api/internal/models"
	"github.com/noah-isme/lms-papers-api/internal/repository"
	"github.com/noah-isme/lms-papers-api/internal/service"
	"github.com/noah-isme/lms-papers-api/pkg/cache"
	"github.com/noah-isme/lms-papers-api/pkg/config"
	"github.com/noah-isme/lms-papers-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lms-papers-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lms-papers-api/pkg/middleware/requestid"
	"github.com/noah-isme/lms-papers-api/pkg/storage"
)

// @title LMS Papers API
// @version 0.1.0
// @description Session and exam paper catalog backend
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	if cfg.Catalog.CacheEnabled || cfg.Dashboard.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, cfg.Catalog.CacheEnabled)

	registry, err := repository.NewUserRegistry()
	if err != nil {
		logr.Fatal("failed to seed user registry", zap.Error(err))
	}
	sessions := repository.NewSessionStore(cfg.Session.StoragePath)
	papers := repository.NewPaperStore()
	students := repository.NewStudentStore()

	authSvc := service.NewAuthService(registry, sessions, validate, logr, service.AuthConfig{
		TokenSecret:      cfg.JWT.Secret,
		TokenExpiry:      cfg.JWT.Expiration,
		Issuer:           "lms-papers-api",
		SimulatedLatency: cfg.Auth.SimulatedLatency,
	})
	authSvc.Restore(ctx)

	paperSvc := service.NewPaperService(papers, cacheSvc, metricsSvc, validate, logr)
	studentSvc := service.NewStudentService(students, cacheSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(papers, students, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Fatal("failed to init export storage", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(repository.NewExportStore(), papers, files, signer, service.ExportConfig{
			WorkerConcurrency: cfg.Exports.WorkerConcurrency,
			WorkerRetries:     cfg.Exports.WorkerRetries,
		}, logr)
		exportSvc.Start(ctx)
		defer exportSvc.Stop()
	}

	authHandler := handler.NewAuthHandler(authSvc)
	paperHandler := handler.NewPaperHandler(paperSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", authHandler.SessionState)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	papersGroup := authed.Group("/papers")
	{
		papersGroup.GET("", paperHandler.List)
		papersGroup.POST("/filter", paperHandler.Filter)
		papersGroup.GET("/:id", paperHandler.Get)
		papersGroup.GET("/:id/download", paperHandler.Download)
		papersGroup.POST("", middleware.RequireRoles(models.RoleAdmin), paperHandler.Create)
		papersGroup.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), paperHandler.Delete)
	}

	studentsGroup := authed.Group("/students", middleware.RequireRoles(models.RoleAdmin))
	{
		studentsGroup.GET("", studentHandler.List)
		studentsGroup.POST("", studentHandler.Create)
		studentsGroup.PUT("/:id", studentHandler.Update)
		studentsGroup.DELETE("/:id", studentHandler.Delete)
	}

	if cfg.Dashboard.Enabled {
		authed.GET("/dashboard/stats", dashboardHandler.Stats)
	}

	if exportSvc != nil {
		exportHandler := handler.NewExportHandler(exportSvc)
		exportsGroup := authed.Group("/exports", middleware.RequireRoles(models.RoleAdmin))
		{
			exportsGroup.POST("", exportHandler.Request)
			exportsGroup.GET("/:id", exportHandler.Status)
		}
		// Download is token-authenticated, not JWT-authenticated.
		api.GET("/exports/download", exportHandler.Download)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
