package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/soict-hust/gradadmit-api/api/swagger"
	"github.com/soict-hust/gradadmit-api/internal/gateway"
	"github.com/soict-hust/gradadmit-api/internal/handler"
	"github.com/soict-hust/gradadmit-api/internal/middleware"
	"github.com/soict-hust/gradadmit-api/internal/models"
	"github.com/soict-hust/gradadmit-api/internal/repository"
	"github.com/soict-hust/gradadmit-api/internal/service"
	"github.com/soict-hust/gradadmit-api/pkg/cache"
	"github.com/soict-hust/gradadmit-api/pkg/config"
	"github.com/soict-hust/gradadmit-api/pkg/database"
	"github.com/soict-hust/gradadmit-api/pkg/logger"
	corsmiddleware "github.com/soict-hust/gradadmit-api/pkg/middleware/cors"
	reqidmiddleware "github.com/soict-hust/gradadmit-api/pkg/middleware/requestid"
)

// @title Graduate Admissions Portal API
// @version 1.0.0
// @description Backend for the graduate admissions portal: accounts, application forms, document uploads and status reports
// @BasePath /api/v1
// @schemes http https

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
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	metricsSvc := service.NewMetricsService()

	sheetClient := gateway.NewSheetClient(cfg.Sheets, logr, metricsSvc)
	autofillClient := gateway.NewAutofillClient(cfg.Autofill, logr, metricsSvc)

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(redisClient, cfg.OTP, logr)

	validate := validator.New()
	authSvc := service.NewAuthService(userRepo, otpRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "gradadmit-api",
	})
	applicationSvc := service.NewApplicationService(sheetClient, userRepo, logr)
	statusSvc := service.NewStatusService(sheetClient, logr)
	uploadSvc := service.NewUploadService(sheetClient, userRepo, cfg.Uploads, logr)
	autofillSvc := service.NewAutofillService(autofillClient, cfg.Autofill.Enabled, logr)
	exportSvc := service.NewExportService(applicationSvc, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc, exportSvc)
	statusHandler := handler.NewStatusHandler(statusSvc, metricsSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	autofillHandler := handler.NewAutofillHandler(autofillSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)

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
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary",
		middleware.JWT(authSvc),
		middleware.RequireRoles(models.RoleAdmin),
		metricsHandler.Summary,
	)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)

		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	application := api.Group("/application", middleware.JWT(authSvc))
	{
		application.GET("", applicationHandler.Get)
		application.PUT("", applicationHandler.Submit)
		application.GET("/export", applicationHandler.Export)
		application.GET("/status", statusHandler.Report)
		application.POST("/documents", uploadHandler.Upload)
		application.POST("/autofill", autofillHandler.Extract)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
