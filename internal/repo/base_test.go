package repo

import (
	"context"
	"testing"

	"github.com/angelmondragon/profilespot-backend/pkg/db/dbtest"
	"github.com/angelmondragon/profilespot-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
)

func TestNewBaseStoresConnection(t *testing.T) {
	db := dbtest.Open(t)
	base := NewBase(db)

	require.Same(t, db, base.db)
}

type ctxKey struct{}

func TestBaseDB_BindsContext(t *testing.T) {
	db := dbtest.Open(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	withCtx := base.DB(ctx)
	require.NotNil(t, withCtx)
	require.NotNil(t, withCtx.Statement)
	require.Equal(t, ctx, withCtx.Statement.Context)

	//nolint:staticcheck // nil context falls back to the raw connection
	require.Same(t, db, base.DB(nil))
}

func TestBaseExists(t *testing.T) {
	db := dbtest.Open(t)
	base := NewBase(db)
	ctx := context.Background()

	found, err := base.Exists(ctx, &models.UserProfile{}, "email = ?", "nobody@x.io")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, db.Create(&models.UserProfile{FirstName: "A", LastName: "B", Email: "a@x.io", Timer: []byte{1}}).Error)

	found, err = base.Exists(ctx, &models.UserProfile{}, "email = ?", "a@x.io")
	require.NoError(t, err)
	require.True(t, found)
}
