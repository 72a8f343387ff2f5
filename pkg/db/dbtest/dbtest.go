// Package dbtest opens throwaway SQLite databases carrying the production
// schema for repository and service tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/angelmondragon/profilespot-backend/pkg/db"
	"gorm.io/gorm"
)

// Open returns a private in-memory database with every model migrated. The
// connection is closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	client, err := db.NewSQLite(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.AutoMigrate(ctx); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return client.DB()
}
