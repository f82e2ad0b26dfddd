// Command server runs the Health Whisperer web application and JSON API.
//
// @title        Health Whisperer API
// @version      1.0
// @description  Wellness check-ins with AI-generated suggestions.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthwhisperer/wellness/internal/api"
	"github.com/healthwhisperer/wellness/internal/api/handler"
	"github.com/healthwhisperer/wellness/internal/core/ports"
	"github.com/healthwhisperer/wellness/internal/core/service"
	"github.com/healthwhisperer/wellness/internal/infrastructure/ai"
	"github.com/healthwhisperer/wellness/internal/infrastructure/db/mongo"
	"github.com/healthwhisperer/wellness/internal/infrastructure/db/redis"
	"github.com/healthwhisperer/wellness/internal/infrastructure/db/sqlstore"
	"github.com/healthwhisperer/wellness/internal/pkg/config"
	"github.com/healthwhisperer/wellness/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// storage is the persistence backend chosen from DATABASE_URL.
type storage struct {
	users        ports.UserRepository
	interactions ports.InteractionRepository
	ping         handler.PingFunc
	close        func(context.Context) error
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "health-whisperer",
		Env:     cfg.Env,
	})

	if cfg.UsingDevSecret() {
		log.Warn().Msg("SESSION_SECRET is not set, using the built-in development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, logger.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	checks := map[string]handler.PingFunc{"database": store.ping}
	authOpts := []service.AuthOption{service.WithLogger(logger.Component("auth"))}

	redisCfg := redis.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if redisCfg.Enabled() {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		throttle := redis.NewLoginThrottle(rdb, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		authOpts = append(authOpts, service.WithThrottle(throttle))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().
			Int("max_attempts", cfg.Redis.LoginMaxAttempts).
			Dur("window", cfg.Redis.LoginWindow).
			Msg("login throttling enabled")
	}

	var generator ports.SuggestionGenerator
	gemini := ai.NewGeminiClient(ai.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.Timeout,
	})
	if gemini.Configured() {
		generator = gemini
		log.Info().Str("model", cfg.AI.Model).Msg("ai suggestions enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY is not set, using curated suggestions only")
	}

	e, err := api.NewRouter(api.Deps{
		Auth:          service.NewAuthService(store.users, cfg.JWTSecret, tokenTTL, authOpts...),
		Checkins:      service.NewCheckinService(store.interactions, generator, logger.Component("checkin")),
		Log:           logger.Component("http"),
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.IsProduction(),
		JWTSecret:     cfg.JWTSecret,
		RateLimit:     cfg.RateLimit,
		Checks:        checks,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStorage connects to MongoDB for mongodb:// URLs and to the SQL store
// otherwise, and brings the schema up to date.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if strings.HasPrefix(cfg.DatabaseURL, "mongodb://") || strings.HasPrefix(cfg.DatabaseURL, "mongodb+srv://") {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.DatabaseURL, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb storage")
		return &storage{
			users:        mongo.NewUserRepository(db),
			interactions: mongo.NewInteractionRepository(db),
			ping:         func(ctx context.Context) error { return mongo.Ping(ctx, db) },
			close:        client.Disconnect,
		}, nil
	}

	store, err := sqlstore.Open(ctx, sqlstore.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Info().Str("dialect", string(store.Dialect())).Msg("using sql storage")
	return &storage{
		users:        store.Users(),
		interactions: store.Interactions(),
		ping:         store.Ping,
		close:        func(context.Context) error { return store.Close() },
	}, nil
}
