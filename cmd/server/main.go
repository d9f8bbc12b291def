package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/civicworks/hazard-portal/api/swagger"
	"github.com/civicworks/hazard-portal/internal/auth"
	"github.com/civicworks/hazard-portal/internal/handler"
	"github.com/civicworks/hazard-portal/internal/middleware"
	"github.com/civicworks/hazard-portal/internal/repository"
	"github.com/civicworks/hazard-portal/internal/service"
	"github.com/civicworks/hazard-portal/pkg/cache"
	"github.com/civicworks/hazard-portal/pkg/config"
	"github.com/civicworks/hazard-portal/pkg/database"
	"github.com/civicworks/hazard-portal/pkg/logger"
	corsmiddleware "github.com/civicworks/hazard-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/civicworks/hazard-portal/pkg/middleware/requestid"
	"github.com/civicworks/hazard-portal/pkg/storage"
)

// @title Hazard Portal
// @version 1.0.0
// @description Municipal hazard reporting portal with RFID check-in
// @BasePath /
// @schemes http

const (
	templatesGlob = "web/templates/*.html"
	rfidDir       = "web/static/rfid"
)

// defaultTeacherPins are inserted when the registry is empty.
var defaultTeacherPins = []string{"1234", "5678", "9012", "3456", "7890"}

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

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	ctx := context.Background()
	if err := repository.Migrate(ctx, db); err != nil {
		logr.Sugar().Fatalw("failed to migrate schema", "error", err)
	}

	adminRepo := repository.NewAdminRepository(db)
	reportRepo := repository.NewReportRepository(db)
	pinRepo := repository.NewPinRepository(db)
	scanRepo := repository.NewScanLogRepository(db)

	passwordHash, err := service.HashPassword(cfg.Admin.Password)
	if err != nil {
		logr.Sugar().Fatalw("failed to hash seed credential", "error", err)
	}
	if err := adminRepo.EnsureDefault(ctx, cfg.Admin.Username, passwordHash); err != nil {
		logr.Sugar().Fatalw("failed to seed admin account", "error", err)
	}
	if err := pinRepo.SeedDefaults(ctx, defaultTeacherPins); err != nil {
		logr.Sugar().Fatalw("failed to seed teacher pins", "error", err)
	}

	beforeStore, err := storage.NewImageStore(cfg.Uploads.BeforeDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare before-image store", "error", err)
	}
	afterStore, err := storage.NewImageStore(cfg.Uploads.AfterDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare after-image store", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	sessions := auth.NewSessionManager(cfg.Session.Secret, int(cfg.Session.MaxAge.Seconds()))

	authSvc := service.NewAuthService(adminRepo, validate, logr)
	reportSvc := service.NewReportService(reportRepo, beforeStore, afterStore, validate, logr, cfg.Uploads.AllowedExtensions)

	var rfidSvc *service.RFIDService
	if cfg.Stats.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		rfidSvc = service.NewRFIDService(pinRepo, scanRepo, cacheRepo, cfg.Stats.CacheTTL, metricsSvc, logr)
	} else {
		rfidSvc = service.NewRFIDService(pinRepo, scanRepo, nil, cfg.Stats.CacheTTL, metricsSvc, logr)
	}

	reportHandler := handler.NewReportHandler(reportSvc)
	authHandler := handler.NewAuthHandler(authSvc, sessions, logr)
	rfidHandler := handler.NewRFIDHandler(rfidSvc)
	adminRFIDHandler := handler.NewAdminRFIDHandler(rfidSvc, sessions)
	pagesHandler := handler.NewPagesHandler(reportSvc, rfidSvc, rfidDir, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.BodyLimit(cfg.Uploads.MaxContentLength))

	r.LoadHTMLGlob(templatesGlob)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	// Public pages and front-end assets.
	r.GET("/", pagesHandler.Index)
	r.GET("/rfid", pagesHandler.Index)
	r.GET("/hazard", pagesHandler.Hazard)
	r.GET("/history", pagesHandler.History)
	r.Static("/assets", filepath.Join(rfidDir, "assets"))
	r.Static("/uploads/before", cfg.Uploads.BeforeDir)
	r.Static("/uploads/after", cfg.Uploads.AfterDir)
	r.NoRoute(pagesHandler.ServeRFIDAsset)

	// Citizen and kiosk APIs, unauthenticated.
	r.POST("/api/report", reportHandler.Create)
	r.POST("/api/rfid/verify-pin", rfidHandler.VerifyPin)
	r.POST("/api/rfid/log-scan", rfidHandler.LogScan)

	// Admin session lifecycle.
	r.GET("/admin/login", authHandler.LoginForm)
	r.POST("/admin/login", authHandler.Login)
	r.GET("/admin/logout", authHandler.Logout)

	// Admin pages redirect to the login form without a session.
	adminPages := r.Group("/admin", middleware.RequireAdminPage(sessions))
	adminPages.GET("/dashboard", pagesHandler.AdminDashboard)
	adminPages.GET("/rfid-dashboard", pagesHandler.RFIDDashboard)
	adminPages.GET("/rfid", pagesHandler.RFIDDashboard)

	// Admin JSON APIs return 401 without a session.
	r.POST("/admin/resolve/:id", middleware.RequireAdminAPI(sessions), reportHandler.Resolve)

	adminAPI := r.Group("/api/admin", middleware.RequireAdminAPI(sessions))
	adminAPI.GET("/pins", adminRFIDHandler.ListPins)
	adminAPI.POST("/pins", adminRFIDHandler.AddPin)
	adminAPI.DELETE("/pins/:id", adminRFIDHandler.DeletePin)
	adminAPI.POST("/pins/:id/toggle", adminRFIDHandler.TogglePin)
	adminAPI.GET("/rfid-logs", adminRFIDHandler.Logs)
	adminAPI.GET("/reports/export", reportHandler.Export)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
