package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vrecruit/recruit-backend/internal/cache"
	"github.com/vrecruit/recruit-backend/internal/config"
	"github.com/vrecruit/recruit-backend/internal/domain/fiber/handler"
	"github.com/vrecruit/recruit-backend/internal/middleware"
	"github.com/vrecruit/recruit-backend/internal/repository"
	"github.com/vrecruit/recruit-backend/internal/service"
	"github.com/vrecruit/recruit-backend/internal/usecase"
	"github.com/vrecruit/recruit-backend/internal/util"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zapLogger, err := config.NewLogger(appConfig.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	supabaseConfig := config.LoadSupabaseConfig()
	if err := supabaseConfig.Validate(); err != nil {
		zapLogger.Fatal("invalid supabase configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	supabase := service.NewSupabaseService(supabaseConfig, zapLogger)

	var source usecase.EvaluationSource = supabase
	var db *gorm.DB
	if appConfig.ReportSource == config.SourcePostgres {
		db = ConnectDB(zapLogger)
		source = repository.NewEvaluationRepository(db)
	}
	zapLogger.Info("report source selected", zap.String("source", appConfig.ReportSource))

	reportOpts := []usecase.ReportOption{usecase.WithReportMetrics(metrics)}
	var reportCache *cache.Cache
	if redisConfig := config.LoadRedisConfig(); redisConfig.Enabled() {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		reportCache, err = cache.New(pingCtx,
			cache.WithAddress(redisConfig.Addr),
			cache.WithPassword(redisConfig.Password),
			cache.WithDB(redisConfig.DB),
		)
		cancel()
		if err != nil {
			zapLogger.Warn("redis unavailable, report caching disabled", zap.Error(err))
		} else {
			reportOpts = append(reportOpts, usecase.WithReportCache(reportCache, redisConfig.ReportCacheTTL))
			zapLogger.Info("report cache enabled", zap.Duration("ttl", redisConfig.ReportCacheTTL))
		}
	}

	var summarizer service.GeminiServiceInterface
	if gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), zapLogger); err != nil {
		zapLogger.Warn("gemini unavailable, summaries use the fallback text", zap.Error(err))
	} else {
		summarizer = gemini
	}

	reportUC := usecase.NewReportUsecase(source, zapLogger, reportOpts...)
	candidateUC := usecase.NewCandidateUsecase(supabase, metrics, zapLogger)
	summaryUC := usecase.NewSummaryUsecase(summarizer, metrics, zapLogger)

	app := newApp(appConfig, metrics)
	api := app.Group("/api")
	handler.NewCandidateHandler(candidateUC).RegisterRoutes(api)
	handler.NewReportHandler(reportUC).RegisterRoutes(api)
	handler.NewSummaryHandler(summaryUC).RegisterRoutes(api)

	go func() {
		<-ctx.Done()
		zapLogger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("server running", zap.String("addr", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zapLogger.Error("server stopped", zap.Error(err))
	}

	if reportCache != nil {
		if err := reportCache.Close(); err != nil {
			zapLogger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func newApp(appConfig *config.AppConfig, metrics *middleware.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.AllowOrigins,
		AllowCredentials: appConfig.AllowOrigins != "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(metrics.Handler())
	app.Use(middleware.RateLimiter(50, time.Minute))

	app.Get("/metrics", metrics.Exposition())
	return app
}

func ConnectDB(zapLogger *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	logLevel := gormlogger.Warn
	if appConfig.IsProduction() {
		logLevel = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		zapLogger.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("could not get database instance", zap.Error(err))
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(100)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db
}
