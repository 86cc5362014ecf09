package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/schoolconnect/schoolconnect-api/api/swagger"
	"github.com/schoolconnect/schoolconnect-api/internal/ai"
	"github.com/schoolconnect/schoolconnect-api/internal/airtable"
	"github.com/schoolconnect/schoolconnect-api/internal/calendar"
	"github.com/schoolconnect/schoolconnect-api/internal/dates"
	"github.com/schoolconnect/schoolconnect-api/internal/handler"
	"github.com/schoolconnect/schoolconnect-api/internal/middleware"
	"github.com/schoolconnect/schoolconnect-api/internal/repository"
	"github.com/schoolconnect/schoolconnect-api/internal/search"
	"github.com/schoolconnect/schoolconnect-api/internal/service"
	"github.com/schoolconnect/schoolconnect-api/internal/webhook"
	"github.com/schoolconnect/schoolconnect-api/pkg/cache"
	"github.com/schoolconnect/schoolconnect-api/pkg/config"
	"github.com/schoolconnect/schoolconnect-api/pkg/logger"
	corsmiddleware "github.com/schoolconnect/schoolconnect-api/pkg/middleware/cors"
	reqidmiddleware "github.com/schoolconnect/schoolconnect-api/pkg/middleware/requestid"
)

// @title SchoolConnect API
// @version 0.1.0
// @description Search, calendar and document tools over school announcements
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

	// Redis is optional: without it the repository refetches from Airtable
	// on every snapshot request.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, snapshot caching disabled", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	airtableClient := airtable.NewClient(cfg.Airtable, logr)
	webhookClient := webhook.NewClient(cfg.Calendar.WebhookURL, cfg.Calendar.Timeout, logr)
	aiClient := ai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logr)

	metricsSvc := service.NewMetricsService()
	announcementRepo := repository.NewAnnouncementRepository(airtableClient, cacheRepo, cfg.Search.SnapshotTTL, logr).
		WithMetrics(metricsSvc)

	resolver := dates.NewResolver(cfg.Search.WeekStart)
	engine := search.NewEngine(search.DefaultWeights(), resolver)

	validate := validator.New()
	settings := calendar.Settings{
		DefaultStartTime:     cfg.Calendar.DefaultStartTime,
		DefaultDurationHours: cfg.Calendar.DefaultDurationHours,
		ReminderDaysBefore:   cfg.Calendar.ReminderDaysBefore,
	}

	announcementSvc := service.NewAnnouncementService(announcementRepo, engine, resolver, service.AnnouncementServiceConfig{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
	}, validate, logr)
	calendarSvc := service.NewCalendarService(webhookClient, settings, validate, logr)
	documentSvc := service.NewDocumentService(aiClient, cfg.OpenAI.MaxDocumentChars, logr)

	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, func(ctx context.Context) error {
		_, err := announcementRepo.Snapshot(ctx)
		return err
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", metricsHandler.Health)
	api.GET("/ready", metricsHandler.Ready)
	api.GET("/metrics", metricsHandler.Prometheus)

	api.GET("/announcements/search", announcementHandler.Search)
	api.GET("/announcements/recent", announcementHandler.Recent)
	api.GET("/announcements/by-date", announcementHandler.ByDate)

	api.POST("/calendar/events", calendarHandler.CreateEvent)
	api.POST("/calendar/reminders", calendarHandler.CreateReminder)

	api.POST("/documents/analyze", documentHandler.Analyze)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	scheduler := cron.New()
	if cfg.Search.RefreshSchedule != "" {
		_, err := scheduler.AddFunc(cfg.Search.RefreshSchedule, func() {
			if _, err := announcementRepo.Refresh(context.Background()); err != nil {
				logr.Warn("scheduled snapshot refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logr.Warn("invalid refresh schedule, periodic refresh disabled",
				zap.String("schedule", cfg.Search.RefreshSchedule), zap.Error(err))
		} else {
			scheduler.Start()
			defer scheduler.Stop()
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
