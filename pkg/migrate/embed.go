package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migrations holds the SQL files compiled into the binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const embeddedDir = "migrations"

// RunEmbedded applies a goose command using the compiled-in migrations, so
// binaries do not depend on the working directory.
func RunEmbedded(ctx context.Context, db *sql.DB, command string, args ...string) error {
	return withEmbedded(func() error {
		return Run(ctx, db, embeddedDir, command, args...)
	})
}

// EmbeddedToVersion is MigrateToVersion over the compiled-in migrations.
func EmbeddedToVersion(ctx context.Context, db *sql.DB, target int64) error {
	return withEmbedded(func() error {
		return MigrateToVersion(ctx, db, embeddedDir, target)
	})
}

// ValidateEmbedded checks the compiled-in migrations with the same rules as
// ValidateDir.
func ValidateEmbedded() error {
	return ValidateFS(Migrations, embeddedDir)
}

func withEmbedded(fn func() error) error {
	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)

	if err := fn(); err != nil {
		return fmt.Errorf("embedded migrations: %w", err)
	}
	return nil
}
