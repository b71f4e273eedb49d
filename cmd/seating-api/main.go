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

	_ "github.com/edusuite/exam-seating-api/api/swagger"
	"github.com/edusuite/exam-seating-api/internal/handler"
	"github.com/edusuite/exam-seating-api/internal/middleware"
	"github.com/edusuite/exam-seating-api/internal/repository"
	"github.com/edusuite/exam-seating-api/internal/service"
	"github.com/edusuite/exam-seating-api/pkg/cache"
	"github.com/edusuite/exam-seating-api/pkg/config"
	"github.com/edusuite/exam-seating-api/pkg/database"
	"github.com/edusuite/exam-seating-api/pkg/logger"
	corsmiddleware "github.com/edusuite/exam-seating-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edusuite/exam-seating-api/pkg/middleware/requestid"
	"github.com/edusuite/exam-seating-api/pkg/storage"
)

// @title Exam Seating API
// @version 0.1.0
// @description Exam seating allocation, invigilation and export service
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, roster cache disabled", "error", err)
		redisClient = nil
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	planRepo := repository.NewPlanRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	rosterSvc := service.NewRosterService(rosterRepo, cacheRepo, metricsSvc, logr, service.RosterServiceConfig{
		CacheEnabled: cfg.Roster.CacheEnabled,
		CacheTTL:     cfg.Roster.CacheTTL,
	})

	draftStore := service.NewDraftStore(cfg.Seating.DraftTTL, logr)
	draftStore.StartJanitor(ctx, cfg.Seating.DraftTTL/4)

	seatingSvc := service.NewSeatingService(planRepo, rosterSvc, draftStore, metricsSvc, validate, logr, service.SeatingServiceConfig{
		DefaultStartRoll: cfg.Seating.DefaultStartRoll,
	})

	exportSvc := service.NewExportService(planRepo, fileStorage, signer, metricsSvc, logr, service.ExportServiceConfig{
		APIPrefix:  cfg.APIPrefix,
		ResultTTL:  cfg.Exports.SignedURLTTL,
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
	})
	exportSvc.Start(ctx)
	defer exportSvc.Stop()

	go runExportCleanup(ctx, exportSvc, cfg.Exports.CleanupInterval, logr)

	seatingHandler := handler.NewSeatingHandler(seatingSvc)
	planHandler := handler.NewPlanHandler(seatingSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		seating := api.Group("/seating")

		seating.POST("/plans/generate", seatingHandler.Generate)
		seating.POST("/drafts", seatingHandler.CreateDraft)
		seating.GET("/drafts/:id", seatingHandler.GetDraft)
		seating.GET("/drafts/:id/rooms/:roomNo/availability", seatingHandler.Availability)
		seating.POST("/drafts/:id/assign", seatingHandler.AssignClass)
		seating.PUT("/drafts/:id/rooms/:roomNo/invigilator", seatingHandler.BindInvigilator)
		seating.GET("/drafts/:id/invigilators/:teacherId", seatingHandler.Duties)
		seating.POST("/drafts/:id/commit", seatingHandler.Commit)

		seating.GET("/plans", planHandler.List)
		seating.GET("/plans/:id", planHandler.Get)
		seating.DELETE("/plans/:id", planHandler.Delete)
		seating.POST("/plans/:id/reopen", planHandler.Reopen)
		seating.GET("/plans/:id/seat", planHandler.SeatLookup)

		seating.POST("/plans/:id/exports", exportHandler.Create)
		seating.GET("/export-jobs/:jobId", exportHandler.Status)
		seating.GET("/exports/:token", exportHandler.Download)

		seating.POST("/roster/invalidate", rosterHandler.Invalidate)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func runExportCleanup(ctx context.Context, exportSvc *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := exportSvc.Cleanup()
			if err != nil {
				logr.Sugar().Warnw("export cleanup failed", "error", err)
				continue
			}
			if len(removed) > 0 {
				logr.Sugar().Infow("export cleanup", "removed", len(removed))
			}
		}
	}
}
