package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/profilespot-backend/api/routes"
	"github.com/angelmondragon/profilespot-backend/internal/logins"
	"github.com/angelmondragon/profilespot-backend/internal/profiles"
	"github.com/angelmondragon/profilespot-backend/pkg/config"
	"github.com/angelmondragon/profilespot-backend/pkg/db"
	"github.com/angelmondragon/profilespot-backend/pkg/instance"
	"github.com/angelmondragon/profilespot-backend/pkg/logger"
	"github.com/angelmondragon/profilespot-backend/pkg/metrics"
	"github.com/angelmondragon/profilespot-backend/pkg/migrate"
	"github.com/angelmondragon/profilespot-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := openDatabase(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	} else {
		logg.Warn(ctx, "redis not configured, login rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	profileService, err := profiles.NewService(profiles.ServiceParams{
		Repo:     profiles.NewRepository(dbClient.DB()),
		Observer: metrics.NewProfileMetrics(registry),
	})
	if err != nil {
		return err
	}
	loginService, err := logins.NewService(logins.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"driver":   dbClient.Driver(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			metrics.NewHTTPMetrics(registry),
			registry,
			profileService,
			loginService,
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openDatabase(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*db.Client, error) {
	if cfg.FeatureFlags.UseSQLite {
		client, err := db.NewSQLite(ctx, cfg.DB.SQLitePath, logg)
		if err != nil {
			return nil, err
		}
		// The goose files target Postgres, so SQLite always builds its schema from the models.
		if err := client.AutoMigrate(ctx); err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		return client, nil
	}
	return db.New(ctx, cfg.DB, logg)
}
