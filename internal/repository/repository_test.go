package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/db"
	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)
	return database
}

func seedUser(t *testing.T, database *sqlx.DB, id, email string) *model.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	u := &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash",
		Name:         "Owner " + id,
		Role:         model.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := NewUserRepository(database).Create(context.Background(), u)
	require.NoError(t, err)
	return u
}
