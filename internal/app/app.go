package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxcache/internal/adapters/httpclient"
	"fxcache/internal/adapters/redis"
	"fxcache/internal/api"
	"fxcache/internal/config"
	httpserver "fxcache/internal/platform/http"
	redisplatform "fxcache/internal/platform/redis"
	"fxcache/internal/queue"
	"fxcache/internal/rate"
	"fxcache/internal/rate/handler"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the job queue and HTTP server.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Shared Redis client. An unreachable store at boot is logged, not fatal:
	// the client re-dials lazily, reads fail per request and the refresh job
	// goes through the queue's retry path.
	redisClient := redisplatform.NewClient(appCfg.Redis)
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			logrus.Errorf("Redis close error: %v", closeErr)
		}
	}()
	if pingErr := redisplatform.Ping(startupCtx, redisClient); pingErr != nil {
		logrus.WithError(pingErr).Error("Redis unreachable at startup, continuing degraded")
	} else {
		logrus.Info("✅ Redis connection successful")
	}

	// Upstream client. A missing EXCHANGE_API_URL is not fatal to the process,
	// only to fetch attempts.
	if appCfg.ExchangeRateAPI.URL == "" {
		logrus.Warn("EXCHANGE_API_URL is not set, fetch jobs will fail until configured")
	}
	rateClient := httpclient.NewExchangeRateClient(&http.Client{Timeout: 30 * time.Second}, appCfg.ExchangeRateAPI.URL)

	// Repository and read service
	snapshotRepo := redis.NewSnapshotRepository(redisClient)
	rateService := rate.NewService(snapshotRepo)

	// Job queue: every dequeued job, scheduled or manual, runs fetch-then-store.
	jobQueue := queue.New(rate.QueueName, func(jobCtx context.Context, job queue.Job) error {
		execID := uuid.NewString()
		return rate.RefreshRates(jobCtx, execID, rateClient, snapshotRepo)
	},
		queue.WithMaxAttempts(appCfg.Queue.MaxAttempts),
		queue.WithBackoffBase(time.Duration(appCfg.Queue.BackoffBaseMs)*time.Millisecond),
	)
	defer func() {
		if shutDownErr := jobQueue.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Queue shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := jobQueue.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start job queue")
		return startErr
	}
	if schedErr := jobQueue.UpsertSchedule(rate.ScheduleID, rate.DailyCronPattern, rate.ScheduledJobName); schedErr != nil {
		logrus.WithError(schedErr).Error("Failed to register daily currency fetch schedule")
		return schedErr
	}
	cleanupGrace := time.Duration(appCfg.Queue.CleanupGraceHr) * time.Hour
	if cleanupErr := jobQueue.ScheduleCleanup(rate.DailyCronPattern, cleanupGrace); cleanupErr != nil {
		logrus.WithError(cleanupErr).Error("Failed to register queue cleanup schedule")
		return cleanupErr
	}
	logrus.Info("✅ Daily currency fetch schedule registered")

	// Handlers and router
	currencyHandler := handler.NewCurrencyHandler(rateService, jobQueue, func(hcCtx context.Context) error {
		return redisplatform.Ping(hcCtx, redisClient)
	})
	router := api.NewRouter(currencyHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
