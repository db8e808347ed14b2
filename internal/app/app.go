package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"winugly/internal/cache"
	"winugly/internal/config"
	"winugly/internal/prompt"
	"winugly/internal/render"
	"winugly/internal/repository"
	"winugly/internal/service"
	"winugly/internal/transport/rest"
	"winugly/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const pingTimeout = 5 * time.Second

// withTimeout runs one startup step under its own deadline
func withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}

// App is the wired coaching server
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	mongo *mongo.Client
	redis *redis.Client

	Coach    *service.CoachService
	Sessions *service.SessionService
	Hub      *ws.Hub
	Server   *http.Server
}

// New connects the stores and builds every service. The caller must Close it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Storage.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	a.mongo = mongoClient

	if err := withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return mongoClient.Ping(ctx, nil)
	}); err != nil {
		a.Close(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.Storage.MongoDatabase))

	a.redis = redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
	if err := withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return a.redis.Ping(ctx).Err()
	}); err != nil {
		a.Close(context.Background())
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.Storage.RedisAddr))

	history := repository.NewSubmissionRepo(mongoClient.Database(cfg.Storage.MongoDatabase))
	if err := withTimeout(ctx, pingTimeout, history.EnsureIndexes); err != nil {
		logger.Warn("failed to create indexes", zap.Error(err))
	}
	reports := cache.NewReportCache(a.redis, cfg.Storage.ReportTTL)

	generator, err := service.NewGeminiGenerator(ctx, cfg.AI, logger)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}

	style := render.StyleFor(cfg.AI.Locale)
	renderer, err := render.New(style)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}

	a.Hub = ws.NewHub(logger)
	a.Sessions = service.NewSessionService(cfg.Session)
	a.Coach = service.NewCoachService(
		generator,
		prompt.NewBuilder(prompt.ParseLocale(cfg.AI.Locale)),
		reports,
		history,
		cfg.UI.MaxInputChars,
		logger,
	)
	a.Coach.SetBroadcaster(a.Hub)

	router := rest.NewRouter(&rest.Container{
		CoachService:   a.Coach,
		SessionService: a.Sessions,
		Renderer:       renderer,
		WSHub:          a.Hub,
		CORS:           cfg.Server.CORS,
		CookieName:     cfg.Session.CookieName,
		Export:         cfg.UI.Export,
		Logger:         logger,
	})

	a.Server = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("AI config",
		zap.String("model", generator.Model()),
		zap.Duration("timeout", cfg.AI.Timeout),
		zap.String("style", style.Name))
	return a, nil
}

// Run serves HTTP and the websocket hub until ctx ends, then shuts down
// gracefully
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		a.logger.Info("server starting", zap.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close releases the store connections
func (a *App) Close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close Redis", zap.Error(err))
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.logger.Warn("failed to disconnect MongoDB", zap.Error(err))
		}
	}
}
