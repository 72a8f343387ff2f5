package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/profilespot-backend/pkg/config"
	"github.com/angelmondragon/profilespot-backend/pkg/db"
	"github.com/angelmondragon/profilespot-backend/pkg/logger"
)

// MaybeRunDev brings the schema up to date in dev when the auto-migrate flag is
// set. SQLite databases are migrated from the models since the SQL files
// target Postgres.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": client.Driver()})

	if client.Driver() == "sqlite" {
		logg.Info(ctx, "auto-migrating sqlite schema (dev auto-run)")
		return client.AutoMigrate(ctx)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running Goose migrations (dev auto-run)")
	if err := RunEmbedded(ctx, sqlDB, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
