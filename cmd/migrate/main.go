package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/profilespot-backend/pkg/config"
	"github.com/angelmondragon/profilespot-backend/pkg/db"
	"github.com/angelmondragon/profilespot-backend/pkg/logger"
	"github.com/angelmondragon/profilespot-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", "", "migrations directory on disk; empty uses the migrations compiled into the binary")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	source := *dir
	if source == "" {
		source = "embedded"
	}
	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"source": source,
	})

	switch *cmd {
	case "create":
		if *name == "" {
			exitf("missing -name for create\n")
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			exitf("failed to create migration: %v\n", err)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		if *dir == "" {
			err = migrate.ValidateEmbedded()
		} else {
			err = migrate.ValidateDir(*dir)
		}
		if err != nil {
			exitf("migration validation failed: %v\n", err)
		}
		fmt.Println("migration validation passed")
		return
	}

	if cfg.FeatureFlags.UseSQLite {
		exitf("goose migrations target postgres; sqlite schemas are built from the models at startup\n")
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := run(ctx, sqlDB, *dir, *cmd); err != nil {
			exitf("goose %s failed: %v\n", *cmd, err)
		}

	case "version":
		target, err := migrate.ParseVersion(*version)
		if err != nil {
			exitf("%v\n", err)
		}
		if *dir == "" {
			err = migrate.EmbeddedToVersion(ctx, sqlDB, target)
		} else {
			err = migrate.MigrateToVersion(ctx, sqlDB, *dir, target)
		}
		if err != nil {
			exitf("goose version migrate failed: %v\n", err)
		}

	default:
		exitf("unknown -cmd value: %s\n", *cmd)
	}
}

func run(ctx context.Context, sqlDB *sql.DB, dir, command string) error {
	if dir == "" {
		return migrate.RunEmbedded(ctx, sqlDB, command)
	}
	return migrate.Run(ctx, sqlDB, dir, command)
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
