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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/scholarship-portal-api/api/swagger"
	"github.com/noah-isme/scholarship-portal-api/internal/handler"
	"github.com/noah-isme/scholarship-portal-api/internal/middleware"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/repository"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	"github.com/noah-isme/scholarship-portal-api/pkg/cache"
	"github.com/noah-isme/scholarship-portal-api/pkg/config"
	"github.com/noah-isme/scholarship-portal-api/pkg/database"
	"github.com/noah-isme/scholarship-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/scholarship-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scholarship-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/scholarship-portal-api/pkg/storage"
)

// @title Scholarship Portal API
// @version 0.1.0
// @description Multi-step scholarship application wizard and admin review surface
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
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	files, err := storage.NewLocalStorage(cfg.Documents.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init document storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Documents.SignedURLSecret, cfg.Documents.SignedURLTTL)

	// Repositories.
	draftRepo := repository.NewDraftRepository(redisClient, logr)
	applicationRepo := repository.NewApplicationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services.
	metricsSvc := service.NewMetricsService()
	draftSvc := service.NewDraftService(draftRepo, logr)
	wizardSvc := service.NewWizardService(draftSvc, draftRepo, logr)
	submissionSvc := service.NewSubmissionService(applicationRepo, draftSvc, cfg.Submission.ProcessingDelay, logr)
	documentSvc := service.NewDocumentService(draftSvc, files, cfg.Documents, logr)
	paymentSvc := service.NewPaymentService(draftSvc, cfg.Payment, logr)
	applicationSvc := service.NewApplicationService(applicationRepo, files, signer, cfg.Exports.MaxRows, logr)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	paymentSvc.Start(rootCtx)
	defer paymentSvc.Stop()

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	wizardHandler := handler.NewWizardHandler(wizardSvc, submissionSvc, metricsSvc)
	draftHandler := handler.NewDraftHandler(draftSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc, metricsSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, metricsSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/files/:token", applicationHandler.Download)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	apply := api.Group("/apply", middleware.ApplicantSession())
	{
		apply.GET("/state", wizardHandler.State)
		apply.POST("/advance", wizardHandler.Advance)
		apply.POST("/retreat", wizardHandler.Retreat)
		apply.POST("/submit", wizardHandler.Submit)

		apply.GET("/draft", draftHandler.Get)
		apply.PATCH("/draft", draftHandler.Update)
		apply.DELETE("/draft", draftHandler.Reset)
		apply.POST("/fields/validate", draftHandler.ValidateField)

		apply.GET("/documents", documentHandler.Slots)
		apply.POST("/documents/:slot", documentHandler.Upload)
		apply.DELETE("/documents/:slot", documentHandler.Remove)

		apply.POST("/payment", paymentHandler.Initiate)
		apply.GET("/payment", paymentHandler.Status)
	}

	api.GET("/applications/:id", applicationHandler.Get)

	admin := api.Group("/admin", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer))
	{
		admin.GET("/applications", applicationHandler.List)
		admin.GET("/applications/stats", applicationHandler.Stats)
		admin.GET("/applications/export", applicationHandler.ExportCSV)
		admin.GET("/applications/:id/receipt", applicationHandler.Receipt)
		admin.GET("/applications/:id/documents/:slot", applicationHandler.DocumentURL)
		admin.PATCH("/applications/:id/status", middleware.RequireRoles(models.RoleAdmin), applicationHandler.UpdateStatus)
	}

	authGroup := api.Group("/auth", middleware.JWT(authSvc))
	authGroup.GET("/me", authHandler.Me)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
