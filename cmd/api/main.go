package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	httpmiddleware "taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/paramstore"
	"taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/internal/core/filterstate"
	"taskboard/internal/logging"
	"taskboard/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := dbadapter.ConnectDB(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Warn("failed to close mongo connection", zap.Error(err))
		}
	}()

	redisClient, err := paramstore.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	newStore := paramstore.NewMemoryFactory()
	if redisClient != nil {
		newStore = paramstore.NewRedisFactory(redisClient, cfg.ViewSessionTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis connection", zap.Error(err))
			}
		}()
	} else {
		logger.Info("REDIS_URL not set, keeping view params in memory")
	}

	m := metrics.New()

	taskRepository := dbadapter.NewTaskRepository(dbadapter.TaskCollection(mongoClient, cfg))
	taskService := service.NewTaskService(taskRepository)
	viewService := service.NewViewService(taskService, newStore,
		filterstate.WithDebounce(cfg.FilterDebounce),
		filterstate.WithLogger(logger.Named("filterstate")),
		filterstate.WithReconcileHook(m.ObserveReconcile),
	)
	defer viewService.CloseAll(context.Background())
	go evictIdleViews(ctx, viewService, cfg.ViewSessionTTL)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger), httpmiddleware.GinMetricsMiddleware(m))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	httpadapter.RegisterRoutes(r,
		handlers.NewHealthHandler(mongoClient, redisClient),
		handlers.NewTaskHandler(taskService),
		handlers.NewViewHandler(viewService),
		m.Handler(),
	)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

type idleEvictor interface {
	EvictIdle(ctx context.Context, idle time.Duration) int
}

func evictIdleViews(ctx context.Context, views idleEvictor, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := views.EvictIdle(ctx, ttl); n > 0 {
				zap.L().Info("evicted idle views", zap.Int("count", n))
			}
		}
	}
}
